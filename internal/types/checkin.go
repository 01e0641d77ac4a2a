package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckIn is a user-submitted daily record. Immutable once created; this
// subsystem only ever reads them. Mood/energy/stress arrive on a 1-5 scale
// from the check-in form, while live snapshots fed to the prioritizer use
// 1-10. Both scales are kept as-is rather than normalized.
type CheckIn struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Mood       int       `gorm:"column:mood;not null" json:"mood"`
	Energy     int       `gorm:"column:energy;not null" json:"energy"`
	Stress     int       `gorm:"column:stress;not null" json:"stress"`
	Wins       string    `gorm:"column:wins" json:"wins"`
	Challenges string    `gorm:"column:challenges" json:"challenges"`
	Reflection string    `gorm:"column:reflection" json:"reflection"`
	Date       time.Time `gorm:"column:date;not null;index" json:"date"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (CheckIn) TableName() string { return "checkin" }

func (c *CheckIn) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
