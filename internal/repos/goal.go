package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BTheCoderr/momentum-ai-sub002/internal/logger"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/types"
)

type GoalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, goals []*types.Goal) ([]*types.Goal, error)
	ListRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Goal, error)
}

type goalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGoalRepo(db *gorm.DB, baseLog *logger.Logger) GoalRepo {
	repoLog := baseLog.With("repo", "GoalRepo")
	return &goalRepo{db: db, log: repoLog}
}

func (r *goalRepo) Create(ctx context.Context, tx *gorm.DB, goals []*types.Goal) ([]*types.Goal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(goals) == 0 {
		return []*types.Goal{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *goalRepo) ListRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Goal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Goal
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
