package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BTheCoderr/momentum-ai-sub002/internal/logger"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/types"
)

type PodVoteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, vote *types.PodVote) (*types.PodVote, error)
	GetByID(ctx context.Context, tx *gorm.DB, voteID uuid.UUID) (*types.PodVote, error)
	Save(ctx context.Context, tx *gorm.DB, vote *types.PodVote) (*types.PodVote, error)
}

type podVoteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPodVoteRepo(db *gorm.DB, baseLog *logger.Logger) PodVoteRepo {
	repoLog := baseLog.With("repo", "PodVoteRepo")
	return &podVoteRepo{db: db, log: repoLog}
}

func (r *podVoteRepo) Create(ctx context.Context, tx *gorm.DB, vote *types.PodVote) (*types.PodVote, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(vote).Error; err != nil {
		return nil, err
	}
	return vote, nil
}

func (r *podVoteRepo) GetByID(ctx context.Context, tx *gorm.DB, voteID uuid.UUID) (*types.PodVote, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var vote types.PodVote
	if err := transaction.WithContext(ctx).
		Where("id = ?", voteID).
		First(&vote).Error; err != nil {
		return nil, err
	}
	return &vote, nil
}

func (r *podVoteRepo) Save(ctx context.Context, tx *gorm.DB, vote *types.PodVote) (*types.PodVote, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Save(vote).Error; err != nil {
		return nil, err
	}
	return vote, nil
}
