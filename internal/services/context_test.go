package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BTheCoderr/momentum-ai-sub002/internal/repos"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/types"
)

type failingCheckInRepo struct{}

func (failingCheckInRepo) Create(ctx context.Context, tx *gorm.DB, checkins []*types.CheckIn) ([]*types.CheckIn, error) {
	return nil, errors.New("store down")
}
func (failingCheckInRepo) ListRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.CheckIn, error) {
	return nil, errors.New("store down")
}

type failingGoalRepo struct{}

func (failingGoalRepo) Create(ctx context.Context, tx *gorm.DB, goals []*types.Goal) ([]*types.Goal, error) {
	return nil, errors.New("store down")
}
func (failingGoalRepo) ListRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Goal, error) {
	return nil, errors.New("store down")
}

type failingMessageRepo struct{}

func (failingMessageRepo) Create(ctx context.Context, tx *gorm.DB, messages []*types.Message) ([]*types.Message, error) {
	return nil, errors.New("store down")
}
func (failingMessageRepo) ListRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Message, error) {
	return nil, errors.New("store down")
}

func TestBuildUserContextStoreFailureReturnsEmpty(t *testing.T) {
	log := testLogger(t)
	svc := NewContextService(log, failingGoalRepo{}, failingCheckInRepo{}, failingMessageRepo{})

	out := svc.BuildUserContext(context.Background(), uuid.New())
	require.NotNil(t, out)
	require.Empty(t, out.Goals)
	require.Empty(t, out.CheckIns)
	require.Empty(t, out.Messages)
}

func TestBuildUserContextCapsAndOrder(t *testing.T) {
	log := testLogger(t)
	gdb := testDB(t)

	user := &types.User{Email: "context@test.local"}
	require.NoError(t, gdb.Create(user).Error)

	base := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 40; i++ {
		require.NoError(t, gdb.Create(&types.CheckIn{
			UserID:    user.ID,
			Mood:      3,
			Energy:    3,
			Stress:    3,
			Date:      base.AddDate(0, 0, i),
			CreatedAt: base.AddDate(0, 0, i),
		}).Error)
	}
	for i := 0; i < 8; i++ {
		require.NoError(t, gdb.Create(&types.Goal{
			UserID:    user.ID,
			Title:     "goal",
			CreatedAt: base.AddDate(0, 0, i),
		}).Error)
	}
	for i := 0; i < 25; i++ {
		require.NoError(t, gdb.Create(&types.Message{
			UserID:    user.ID,
			Content:   "hello",
			Sender:    "user",
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		}).Error)
	}

	svc := NewContextService(log,
		repos.NewGoalRepo(gdb, log),
		repos.NewCheckInRepo(gdb, log),
		repos.NewMessageRepo(gdb, log),
	)
	out := svc.BuildUserContext(context.Background(), user.ID)

	require.Len(t, out.CheckIns, 30)
	require.Len(t, out.Goals, 5)
	require.Len(t, out.Messages, 20)

	// Most-recent-first on every leg.
	for i := 1; i < len(out.CheckIns); i++ {
		if out.CheckIns[i-1].CreatedAt.Before(out.CheckIns[i].CreatedAt) {
			t.Fatal("check-ins not most-recent-first")
		}
	}
	for i := 1; i < len(out.Messages); i++ {
		if out.Messages[i-1].Timestamp.Before(out.Messages[i].Timestamp) {
			t.Fatal("messages not most-recent-first")
		}
	}
}

func TestBuildUserContextUnknownUser(t *testing.T) {
	log := testLogger(t)
	gdb := testDB(t)
	svc := NewContextService(log,
		repos.NewGoalRepo(gdb, log),
		repos.NewCheckInRepo(gdb, log),
		repos.NewMessageRepo(gdb, log),
	)
	out := svc.BuildUserContext(context.Background(), uuid.New())
	require.Empty(t, out.CheckIns)
	require.Empty(t, out.Goals)
	require.Empty(t, out.Messages)
}
