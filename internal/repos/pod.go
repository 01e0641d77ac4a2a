package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BTheCoderr/momentum-ai-sub002/internal/logger"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/types"
)

type PodRepo interface {
	Create(ctx context.Context, tx *gorm.DB, pods []*types.Pod) ([]*types.Pod, error)
	GetByID(ctx context.Context, tx *gorm.DB, podID uuid.UUID) (*types.Pod, error)
}

type podRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPodRepo(db *gorm.DB, baseLog *logger.Logger) PodRepo {
	repoLog := baseLog.With("repo", "PodRepo")
	return &podRepo{db: db, log: repoLog}
}

func (r *podRepo) Create(ctx context.Context, tx *gorm.DB, pods []*types.Pod) ([]*types.Pod, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(pods) == 0 {
		return []*types.Pod{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&pods).Error; err != nil {
		return nil, err
	}
	return pods, nil
}

func (r *podRepo) GetByID(ctx context.Context, tx *gorm.DB, podID uuid.UUID) (*types.Pod, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var pod types.Pod
	if err := transaction.WithContext(ctx).
		Where("id = ?", podID).
		First(&pod).Error; err != nil {
		return nil, err
	}
	return &pod, nil
}

type PodMemberRepo interface {
	Create(ctx context.Context, tx *gorm.DB, member *types.PodMember) (*types.PodMember, error)
	Exists(ctx context.Context, tx *gorm.DB, podID, userID uuid.UUID) (bool, error)
}

type podMemberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPodMemberRepo(db *gorm.DB, baseLog *logger.Logger) PodMemberRepo {
	repoLog := baseLog.With("repo", "PodMemberRepo")
	return &podMemberRepo{db: db, log: repoLog}
}

func (r *podMemberRepo) Create(ctx context.Context, tx *gorm.DB, member *types.PodMember) (*types.PodMember, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

func (r *podMemberRepo) Exists(ctx context.Context, tx *gorm.DB, podID, userID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.PodMember{}).
		Where("pod_id = ? AND user_id = ?", podID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

type PodInviteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, invite *types.PodInvite) (*types.PodInvite, error)
	// GetByCode returns (nil, nil) when the code does not resolve.
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.PodInvite, error)
}

type podInviteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPodInviteRepo(db *gorm.DB, baseLog *logger.Logger) PodInviteRepo {
	repoLog := baseLog.With("repo", "PodInviteRepo")
	return &podInviteRepo{db: db, log: repoLog}
}

func (r *podInviteRepo) Create(ctx context.Context, tx *gorm.DB, invite *types.PodInvite) (*types.PodInvite, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(invite).Error; err != nil {
		return nil, err
	}
	return invite, nil
}

func (r *podInviteRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.PodInvite, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var invite types.PodInvite
	err := transaction.WithContext(ctx).
		Where("code = ?", code).
		First(&invite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invite, nil
}
