package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BTheCoderr/momentum-ai-sub002/internal/logger"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/types"
)

type CheckInRepo interface {
	Create(ctx context.Context, tx *gorm.DB, checkins []*types.CheckIn) ([]*types.CheckIn, error)
	ListRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.CheckIn, error)
}

type checkInRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCheckInRepo(db *gorm.DB, baseLog *logger.Logger) CheckInRepo {
	repoLog := baseLog.With("repo", "CheckInRepo")
	return &checkInRepo{db: db, log: repoLog}
}

func (r *checkInRepo) Create(ctx context.Context, tx *gorm.DB, checkins []*types.CheckIn) ([]*types.CheckIn, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(checkins) == 0 {
		return []*types.CheckIn{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&checkins).Error; err != nil {
		return nil, err
	}
	return checkins, nil
}

// ListRecent returns up to limit check-ins for the user, most recent first.
func (r *checkInRepo) ListRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.CheckIn, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.CheckIn
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
