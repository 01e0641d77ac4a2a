package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CoachStyle is a closed enum. Template dispatch switches over it
// exhaustively, so adding a style is a compile-visible change rather than a
// silently-missing map key.
type CoachStyle string

const (
	StyleMotivational CoachStyle = "motivational"
	StyleAnalytical   CoachStyle = "analytical"
	StyleSupportive   CoachStyle = "supportive"
	StyleEncouraging  CoachStyle = "encouraging"
	StyleStrict       CoachStyle = "strict"
	StyleWise         CoachStyle = "wise"
	StyleFriendly     CoachStyle = "friendly"
)

func ParseCoachStyle(s string) (CoachStyle, error) {
	switch CoachStyle(s) {
	case StyleMotivational, StyleAnalytical, StyleSupportive, StyleEncouraging, StyleStrict, StyleWise, StyleFriendly:
		return CoachStyle(s), nil
	default:
		return "", fmt.Errorf("unknown coach style %q", s)
	}
}

// ToneParams are 0-100 dials layered on top of the base style.
type ToneParams struct {
	Formality      int `json:"formality"`
	Directness     int `json:"directness"`
	Enthusiasm     int `json:"enthusiasm"`
	Supportiveness int `json:"supportiveness"`
}

func DefaultToneParams() ToneParams {
	return ToneParams{Formality: 40, Directness: 50, Enthusiasm: 70, Supportiveness: 80}
}

// CoachPersonality is the resolved persona for a user.
type CoachPersonality struct {
	Style CoachStyle `json:"style"`
	Tone  ToneParams `json:"tone"`
}

func DefaultCoachPersonality() CoachPersonality {
	return CoachPersonality{Style: StyleEncouraging, Tone: DefaultToneParams()}
}

// CoachPreference is the persisted persona selection backing the
// read-through cache.
type CoachPreference struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Style          CoachStyle `gorm:"column:style;not null" json:"style"`
	Formality      int        `gorm:"column:formality;not null;default:40" json:"formality"`
	Directness     int        `gorm:"column:directness;not null;default:50" json:"directness"`
	Enthusiasm     int        `gorm:"column:enthusiasm;not null;default:70" json:"enthusiasm"`
	Supportiveness int        `gorm:"column:supportiveness;not null;default:80" json:"supportiveness"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null" json:"updated_at"`
}

func (CoachPreference) TableName() string { return "coach_preference" }

func (p *CoachPreference) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *CoachPreference) Personality() CoachPersonality {
	return CoachPersonality{
		Style: p.Style,
		Tone: ToneParams{
			Formality:      p.Formality,
			Directness:     p.Directness,
			Enthusiasm:     p.Enthusiasm,
			Supportiveness: p.Supportiveness,
		},
	}
}
