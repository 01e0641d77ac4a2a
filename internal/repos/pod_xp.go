package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BTheCoderr/momentum-ai-sub002/internal/logger"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/types"
)

// LeaderboardRow is one aggregated leaderboard line for a pod.
type LeaderboardRow struct {
	UserID uuid.UUID `json:"user_id"`
	Points int       `json:"points"`
}

// PodXPRepo is append-only: the ledger has no update or delete path.
type PodXPRepo interface {
	Append(ctx context.Context, tx *gorm.DB, entry *types.PodXPEntry) (*types.PodXPEntry, error)
	TotalForPod(ctx context.Context, tx *gorm.DB, podID uuid.UUID) (int, error)
	TotalsByUser(ctx context.Context, tx *gorm.DB, podID uuid.UUID) ([]LeaderboardRow, error)
	CountForSource(ctx context.Context, tx *gorm.DB, podID, userID uuid.UUID, source types.XPSource) (int64, error)
}

type podXPRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPodXPRepo(db *gorm.DB, baseLog *logger.Logger) PodXPRepo {
	repoLog := baseLog.With("repo", "PodXPRepo")
	return &podXPRepo{db: db, log: repoLog}
}

func (r *podXPRepo) Append(ctx context.Context, tx *gorm.DB, entry *types.PodXPEntry) (*types.PodXPEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *podXPRepo) TotalForPod(ctx context.Context, tx *gorm.DB, podID uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var total *int
	if err := transaction.WithContext(ctx).
		Model(&types.PodXPEntry{}).
		Select("SUM(points)").
		Where("pod_id = ?", podID).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (r *podXPRepo) TotalsByUser(ctx context.Context, tx *gorm.DB, podID uuid.UUID) ([]LeaderboardRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []LeaderboardRow
	if err := transaction.WithContext(ctx).
		Model(&types.PodXPEntry{}).
		Select("user_id, SUM(points) AS points").
		Where("pod_id = ?", podID).
		Group("user_id").
		Order("points DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *podXPRepo) CountForSource(ctx context.Context, tx *gorm.DB, podID, userID uuid.UUID, source types.XPSource) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.PodXPEntry{}).
		Where("pod_id = ? AND user_id = ? AND source = ?", podID, userID, source).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
