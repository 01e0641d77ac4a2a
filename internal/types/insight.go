package types

import "github.com/google/uuid"

type InsightType string

const (
	InsightPattern       InsightType = "pattern"
	InsightEncouragement InsightType = "encouragement"
	InsightSuggestion    InsightType = "suggestion"
	InsightReflection    InsightType = "reflection"
)

// Insight is built per request and returned to the caller; it is never
// persisted. Confidence marks provenance: ~0.8 for model-derived content,
// ~0.6 for the static fallback catalog.
type Insight struct {
	ID         uuid.UUID   `json:"id"`
	Type       InsightType `json:"type"`
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	Confidence float64     `json:"confidence"`
	Actionable bool        `json:"actionable"`
}

type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

func (u Urgency) Weight() int {
	switch u {
	case UrgencyHigh:
		return 3
	case UrgencyMedium:
		return 2
	case UrgencyLow:
		return 1
	default:
		return 0
	}
}

// Suggestion is ephemeral: ranked and truncated per request, never stored.
type Suggestion struct {
	ID          uuid.UUID `json:"id"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Urgency     Urgency   `json:"urgency"`
	Duration    string    `json:"duration"`
	ActionText  string    `json:"action_text"`
}
