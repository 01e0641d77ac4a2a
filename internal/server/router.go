package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/BTheCoderr/momentum-ai-sub002/internal/handlers"
)

type RouterConfig struct {
	InsightHandler      *handlers.InsightHandler
	CoachHandler        *handlers.CoachHandler
	EngagementHandler   *handlers.EngagementHandler
	GamificationHandler *handlers.GamificationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Insights & coaching
		api.GET("/users/:id/insights", cfg.InsightHandler.GetInsights)
		api.GET("/users/:id/suggestions", cfg.InsightHandler.GetSuggestions)
		api.GET("/users/:id/coaching-message", cfg.InsightHandler.GetCoachingMessage)
		api.POST("/suggestions/rank", cfg.InsightHandler.RankSuggestions)

		// Coach personality
		api.POST("/coach/respond", cfg.CoachHandler.Respond)
		api.POST("/coach/preview", cfg.CoachHandler.Preview)
		api.GET("/users/:id/personality", cfg.CoachHandler.GetPersonality)
		api.PUT("/users/:id/personality", cfg.CoachHandler.SetPersonality)

		// Engagement
		api.POST("/engagement/score", cfg.EngagementHandler.Score)
		api.GET("/engagement/recent", cfg.EngagementHandler.Recent)

		// Gamification
		api.POST("/challenges/:id/days", cfg.GamificationHandler.MarkDayComplete)
		api.GET("/challenges/:id/progress", cfg.GamificationHandler.GetProgress)
		api.POST("/votes/:id/cast", cfg.GamificationHandler.CastVote)
		api.POST("/invites/:code/join", cfg.GamificationHandler.JoinViaInvite)
		api.POST("/pods/:id/checkin-xp", cfg.GamificationHandler.AwardCheckInXP)
		api.POST("/pods/:id/support", cfg.GamificationHandler.SendSupport)
		api.GET("/pods/:id/xp", cfg.GamificationHandler.PodTotalXP)
		api.GET("/pods/:id/leaderboard", cfg.GamificationHandler.Leaderboard)
	}

	return router
}
