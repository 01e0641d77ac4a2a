package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is one turn of the user/coach chat history, consumed here only as
// context for prompt construction.
type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Content   string    `gorm:"column:content;not null" json:"content"`
	Sender    string    `gorm:"column:sender;not null" json:"sender"`
	Timestamp time.Time `gorm:"column:timestamp;not null" json:"timestamp"`
}

func (Message) TableName() string { return "message" }

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
