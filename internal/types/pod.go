package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Pod struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Pod) TableName() string { return "pod" }

func (p *Pod) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type PodMember struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PodID    uuid.UUID `gorm:"type:uuid;not null;index:idx_pod_user,unique" json:"pod_id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_pod_user,unique" json:"user_id"`
	JoinedAt time.Time `gorm:"column:joined_at;not null" json:"joined_at"`
}

func (PodMember) TableName() string { return "pod_member" }

func (m *PodMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type PodInvite struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PodID     uuid.UUID `gorm:"type:uuid;not null;index" json:"pod_id"`
	Code      string    `gorm:"column:code;uniqueIndex;not null" json:"code"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (PodInvite) TableName() string { return "pod_invite" }

func (i *PodInvite) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// XPSource enumerates the actions that earn pod XP.
type XPSource string

const (
	XPSourceCheckIn   XPSource = "checkin"
	XPSourceChallenge XPSource = "challenge"
	XPSourceSupport   XPSource = "support"
	XPSourceInvite    XPSource = "invite"
	XPSourceVote      XPSource = "vote"
)

// PodXPEntry is one row of the append-only XP ledger. Rows are never updated
// or deleted; a pod's total XP is the sum of its rows.
type PodXPEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PodID     uuid.UUID `gorm:"type:uuid;not null;index" json:"pod_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Source    XPSource  `gorm:"column:source;not null" json:"source"`
	Points    int       `gorm:"column:points;not null" json:"points"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (PodXPEntry) TableName() string { return "pod_xp_log" }

func (e *PodXPEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// PodVote is a group ballot. Votes maps user id -> chosen option; one entry
// per user, last write wins, no history kept.
type PodVote struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PodID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"pod_id"`
	Title     string         `gorm:"column:title;not null" json:"title"`
	Options   datatypes.JSON `gorm:"column:options" json:"options"`
	Votes     datatypes.JSON `gorm:"column:votes" json:"votes"`
	ExpiresAt *time.Time     `gorm:"column:expires_at" json:"expires_at,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

func (PodVote) TableName() string { return "pod_vote" }

func (v *PodVote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

func (v *PodVote) OptionList() []string {
	if len(v.Options) == 0 {
		return []string{}
	}
	var opts []string
	if err := json.Unmarshal(v.Options, &opts); err != nil {
		return []string{}
	}
	return opts
}

func (v *PodVote) SetOptionList(opts []string) error {
	raw, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	v.Options = datatypes.JSON(raw)
	return nil
}

func (v *PodVote) Ballots() map[string]string {
	out := map[string]string{}
	if len(v.Votes) == 0 {
		return out
	}
	if err := json.Unmarshal(v.Votes, &out); err != nil {
		return map[string]string{}
	}
	return out
}

func (v *PodVote) SetBallots(ballots map[string]string) error {
	raw, err := json.Marshal(ballots)
	if err != nil {
		return err
	}
	v.Votes = datatypes.JSON(raw)
	return nil
}
