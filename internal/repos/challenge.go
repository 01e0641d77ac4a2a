package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BTheCoderr/momentum-ai-sub002/internal/logger"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/types"
)

type ChallengeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, challenges []*types.Challenge) ([]*types.Challenge, error)
	GetByID(ctx context.Context, tx *gorm.DB, challengeID uuid.UUID) (*types.Challenge, error)
}

type challengeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChallengeRepo(db *gorm.DB, baseLog *logger.Logger) ChallengeRepo {
	repoLog := baseLog.With("repo", "ChallengeRepo")
	return &challengeRepo{db: db, log: repoLog}
}

func (r *challengeRepo) Create(ctx context.Context, tx *gorm.DB, challenges []*types.Challenge) ([]*types.Challenge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(challenges) == 0 {
		return []*types.Challenge{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

func (r *challengeRepo) GetByID(ctx context.Context, tx *gorm.DB, challengeID uuid.UUID) (*types.Challenge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var challenge types.Challenge
	if err := transaction.WithContext(ctx).
		Where("id = ?", challengeID).
		First(&challenge).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

type ChallengeProgressRepo interface {
	// Get returns (nil, nil) when no progress row exists yet.
	Get(ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID) (*types.ChallengeProgress, error)
	Save(ctx context.Context, tx *gorm.DB, progress *types.ChallengeProgress) (*types.ChallengeProgress, error)
}

type challengeProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChallengeProgressRepo(db *gorm.DB, baseLog *logger.Logger) ChallengeProgressRepo {
	repoLog := baseLog.With("repo", "ChallengeProgressRepo")
	return &challengeProgressRepo{db: db, log: repoLog}
}

func (r *challengeProgressRepo) Get(ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID) (*types.ChallengeProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var progress types.ChallengeProgress
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *challengeProgressRepo) Save(ctx context.Context, tx *gorm.DB, progress *types.ChallengeProgress) (*types.ChallengeProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Save(progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}
