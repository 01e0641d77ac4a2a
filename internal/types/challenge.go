package types

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ChallengeStatus string

const (
	ChallengeNotStarted ChallengeStatus = "not_started"
	ChallengeInProgress ChallengeStatus = "in_progress"
	ChallengeCompleted  ChallengeStatus = "completed"
)

type Challenge struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PodID       *uuid.UUID `gorm:"type:uuid;index" json:"pod_id,omitempty"`
	Pod         *Pod       `gorm:"constraint:OnDelete:SET NULL;foreignKey:PodID;references:ID" json:"pod,omitempty"`
	Title       string     `gorm:"column:title;not null" json:"title"`
	Description string     `gorm:"column:description" json:"description"`
	TotalDays   int        `gorm:"column:total_days;not null" json:"total_days"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
}

func (Challenge) TableName() string { return "challenge" }

func (c *Challenge) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// PodLinked reports whether completing days on this challenge earns pod XP.
func (c *Challenge) PodLinked() bool { return c.PodID != nil }

// ChallengeProgress tracks the day-set for one (user, challenge) pair.
// CompletedDays is stored as a JSON array that is always deduplicated,
// ascending, and never shrinks.
type ChallengeProgress struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_challenge,unique" json:"user_id"`
	ChallengeID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_challenge,unique" json:"challenge_id"`
	Challenge     *Challenge     `gorm:"constraint:OnDelete:CASCADE;foreignKey:ChallengeID;references:ID" json:"challenge,omitempty"`
	CompletedDays datatypes.JSON `gorm:"column:completed_days" json:"completed_days"`
	LastUpdated   time.Time      `gorm:"column:last_updated;not null" json:"last_updated"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
}

func (ChallengeProgress) TableName() string { return "challenge_progress" }

func (p *ChallengeProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Days decodes the stored day-set. A missing or malformed payload decodes to
// an empty set rather than an error; the set is re-sorted defensively on read.
func (p *ChallengeProgress) Days() []int {
	if len(p.CompletedDays) == 0 {
		return []int{}
	}
	var days []int
	if err := json.Unmarshal(p.CompletedDays, &days); err != nil {
		return []int{}
	}
	sort.Ints(days)
	return days
}

// SetDays encodes a deduplicated ascending copy of days.
func (p *ChallengeProgress) SetDays(days []int) error {
	seen := make(map[int]bool, len(days))
	out := make([]int, 0, len(days))
	for _, d := range days {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	raw, err := json.Marshal(out)
	if err != nil {
		return err
	}
	p.CompletedDays = datatypes.JSON(raw)
	return nil
}

// Status derives the per-user challenge state from the day-set size.
func (p *ChallengeProgress) Status(totalDays int) ChallengeStatus {
	n := len(p.Days())
	switch {
	case n == 0:
		return ChallengeNotStarted
	case totalDays > 0 && n >= totalDays:
		return ChallengeCompleted
	default:
		return ChallengeInProgress
	}
}
