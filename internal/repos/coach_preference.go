package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BTheCoderr/momentum-ai-sub002/internal/logger"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/types"
)

type CoachPreferenceRepo interface {
	// GetByUserID returns (nil, nil) when the user has no saved preference.
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CoachPreference, error)
	Upsert(ctx context.Context, tx *gorm.DB, pref *types.CoachPreference) (*types.CoachPreference, error)
}

type coachPreferenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCoachPreferenceRepo(db *gorm.DB, baseLog *logger.Logger) CoachPreferenceRepo {
	repoLog := baseLog.With("repo", "CoachPreferenceRepo")
	return &coachPreferenceRepo{db: db, log: repoLog}
}

func (r *coachPreferenceRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CoachPreference, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var pref types.CoachPreference
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *coachPreferenceRepo) Upsert(ctx context.Context, tx *gorm.DB, pref *types.CoachPreference) (*types.CoachPreference, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	existing, err := r.GetByUserID(ctx, transaction, pref.UserID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		if err := transaction.WithContext(ctx).Create(pref).Error; err != nil {
			return nil, err
		}
		return pref, nil
	}
	existing.Style = pref.Style
	existing.Formality = pref.Formality
	existing.Directness = pref.Directness
	existing.Enthusiasm = pref.Enthusiasm
	existing.Supportiveness = pref.Supportiveness
	if err := transaction.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}
