package main

import (
	"fmt"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/BTheCoderr/momentum-ai-sub002/internal/db"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/handlers"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/logger"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/repos"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/server"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/services"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Redis is optional: the persona cache degrades to in-process memory
	// when no address is configured or the ping fails.
	var rdb *goredis.Client
	if addr := utils.GetEnv("REDIS_ADDR", "", log); addr != "" {
		rdb = goredis.NewClient(&goredis.Options{
			Addr:        addr,
			DialTimeout: 5 * time.Second,
		})
	}

	// Repos
	log.Info("Setting up repos...")
	checkInRepo := repos.NewCheckInRepo(thePG, log)
	goalRepo := repos.NewGoalRepo(thePG, log)
	messageRepo := repos.NewMessageRepo(thePG, log)
	coachPrefRepo := repos.NewCoachPreferenceRepo(thePG, log)
	challengeRepo := repos.NewChallengeRepo(thePG, log)
	challengeProgressRepo := repos.NewChallengeProgressRepo(thePG, log)
	podRepo := repos.NewPodRepo(thePG, log)
	podMemberRepo := repos.NewPodMemberRepo(thePG, log)
	podInviteRepo := repos.NewPodInviteRepo(thePG, log)
	podXPRepo := repos.NewPodXPRepo(thePG, log)
	podVoteRepo := repos.NewPodVoteRepo(thePG, log)

	// Services. The AI client is constructed once and shared by every
	// component that talks to the language model.
	log.Info("Setting up services...")
	aiClient := services.NewAIClient(log)
	contextService := services.NewContextService(log, goalRepo, checkInRepo, messageRepo)
	patternService := services.NewPatternService(log)
	insightService := services.NewInsightService(log, contextService, patternService, aiClient)
	prioritizerService := services.NewPrioritizerService(log)
	personalityService := services.NewPersonalityService(log, coachPrefRepo, aiClient, rdb)
	engagementService := services.NewEngagementService(log)
	gamificationService := services.NewGamificationService(
		log,
		challengeRepo,
		challengeProgressRepo,
		podRepo,
		podMemberRepo,
		podInviteRepo,
		podXPRepo,
		podVoteRepo,
	)

	// Handlers
	log.Info("Setting up handlers...")
	insightHandler := handlers.NewInsightHandler(insightService, prioritizerService)
	coachHandler := handlers.NewCoachHandler(personalityService)
	engagementHandler := handlers.NewEngagementHandler(engagementService)
	gamificationHandler := handlers.NewGamificationHandler(gamificationService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		InsightHandler:      insightHandler,
		CoachHandler:        coachHandler,
		EngagementHandler:   engagementHandler,
		GamificationHandler: gamificationHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
