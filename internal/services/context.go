package services

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/BTheCoderr/momentum-ai-sub002/internal/logger"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/repos"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/types"
)

const (
	contextGoalLimit    = 5
	contextCheckInLimit = 30
	contextMessageLimit = 20
)

// UserContext is everything the insight and coaching paths know about a user.
// Each slice is most-recent-first and capped.
type UserContext struct {
	Goals    []*types.Goal    `json:"goals"`
	CheckIns []*types.CheckIn `json:"checkins"`
	Messages []*types.Message `json:"messages"`
}

type ContextService interface {
	// BuildUserContext never fails: a store error on any leg degrades that
	// leg to an empty slice.
	BuildUserContext(ctx context.Context, userID uuid.UUID) *UserContext
}

type contextService struct {
	log      *logger.Logger
	goals    repos.GoalRepo
	checkins repos.CheckInRepo
	messages repos.MessageRepo
}

func NewContextService(log *logger.Logger, goals repos.GoalRepo, checkins repos.CheckInRepo, messages repos.MessageRepo) ContextService {
	serviceLog := log.With("service", "ContextService")
	return &contextService{
		log:      serviceLog,
		goals:    goals,
		checkins: checkins,
		messages: messages,
	}
}

func (s *contextService) BuildUserContext(ctx context.Context, userID uuid.UUID) *UserContext {
	out := &UserContext{
		Goals:    []*types.Goal{},
		CheckIns: []*types.CheckIn{},
		Messages: []*types.Message{},
	}

	// The legs are independent reads; each swallows its own failure so the
	// group error is always nil.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		goals, err := s.goals.ListRecent(gctx, nil, userID, contextGoalLimit)
		if err != nil {
			s.log.Warn("context goals fetch failed, returning empty", "user_id", userID, "error", err)
			return nil
		}
		out.Goals = goals
		return nil
	})
	g.Go(func() error {
		checkins, err := s.checkins.ListRecent(gctx, nil, userID, contextCheckInLimit)
		if err != nil {
			s.log.Warn("context checkins fetch failed, returning empty", "user_id", userID, "error", err)
			return nil
		}
		out.CheckIns = checkins
		return nil
	})
	g.Go(func() error {
		messages, err := s.messages.ListRecent(gctx, nil, userID, contextMessageLimit)
		if err != nil {
			s.log.Warn("context messages fetch failed, returning empty", "user_id", userID, "error", err)
			return nil
		}
		out.Messages = messages
		return nil
	})
	_ = g.Wait()

	if out.Goals == nil {
		out.Goals = []*types.Goal{}
	}
	if out.CheckIns == nil {
		out.CheckIns = []*types.CheckIn{}
	}
	if out.Messages == nil {
		out.Messages = []*types.Message{}
	}
	return out
}
