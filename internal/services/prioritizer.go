package services

import (
	"sort"

	"github.com/google/uuid"

	"github.com/BTheCoderr/momentum-ai-sub002/internal/logger"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/types"
)

const maxRankedSuggestions = 3

// CheckInSnapshot carries live check-in values on the 1-10 scale plus the
// time of day ("morning", "afternoon", "evening").
type CheckInSnapshot struct {
	Mood         int    `json:"mood"`
	Energy       int    `json:"energy"`
	Stress       int    `json:"stress"`
	Productivity int    `json:"productivity"`
	TimeOfDay    string `json:"time_of_day"`
}

// PrioritizerService ranks rule-generated suggestions from a live check-in.
// Fully deterministic: no model call, no store access.
type PrioritizerService interface {
	RankSuggestions(snapshot CheckInSnapshot) []types.Suggestion
}

type prioritizerService struct {
	log *logger.Logger
}

func NewPrioritizerService(log *logger.Logger) PrioritizerService {
	return &prioritizerService{log: log.With("service", "PrioritizerService")}
}

func (s *prioritizerService) RankSuggestions(snapshot CheckInSnapshot) []types.Suggestion {
	candidates := generateCandidates(snapshot)

	// Stable sort preserves generation order among equal urgencies.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Urgency.Weight() > candidates[j].Urgency.Weight()
	})

	if len(candidates) > maxRankedSuggestions {
		candidates = candidates[:maxRankedSuggestions]
	}
	return candidates
}

// generateCandidates evaluates every rule independently; one snapshot can
// trigger several.
func generateCandidates(snap CheckInSnapshot) []types.Suggestion {
	var out []types.Suggestion
	add := func(category, description string, urgency types.Urgency, duration, action string) {
		out = append(out, types.Suggestion{
			ID:          uuid.New(),
			Category:    category,
			Description: description,
			Urgency:     urgency,
			Duration:    duration,
			ActionText:  action,
		})
	}

	// Stress
	switch {
	case snap.Stress >= 8:
		add("Immediate Stress Relief", "Your stress is very high. Pause for a 4-7-8 breathing cycle before anything else.", types.UrgencyHigh, "3 min", "Start breathing exercise")
	case snap.Stress >= 6:
		add("Stress Management", "Stress is creeping up. A short walk or stretch break will help you reset.", types.UrgencyMedium, "10 min", "Take a break")
	}

	// Energy
	if snap.Energy <= 3 {
		switch snap.TimeOfDay {
		case "morning":
			add("Morning Energy Boost", "Low energy this morning. Get sunlight and a glass of water before coffee.", types.UrgencyMedium, "5 min", "Step outside")
		case "afternoon":
			add("Afternoon Recharge", "The afternoon dip is real. Try a 10-minute walk instead of another coffee.", types.UrgencyMedium, "10 min", "Walk it off")
		default:
			add("Evening Wind-Down", "Energy is low this evening. Protect tomorrow by starting your wind-down early.", types.UrgencyMedium, "15 min", "Begin wind-down")
		}
	} else if snap.Energy >= 8 {
		add("Harness Your Energy", "Your energy is peaking. Point it at your hardest goal right now.", types.UrgencyHigh, "45 min", "Start deep work")
	}

	// Mood
	if snap.Mood <= 4 {
		add("Quick Mood Lifter", "Mood is low. Message a friend or step outside for a few minutes.", types.UrgencyMedium, "5 min", "Reach out")
	} else if snap.Mood >= 8 {
		add("Maintain This Momentum", "You're feeling great. Note what's working today so you can repeat it.", types.UrgencyMedium, "2 min", "Jot it down")
	}

	// Productivity, branching on available energy
	if snap.Productivity <= 4 {
		if snap.Energy >= 6 {
			add("Productivity Reset", "You have energy but output is low. Clear your space and pick one task.", types.UrgencyMedium, "10 min", "Pick one task")
		} else {
			add("Energy Before Productivity", "Low output usually follows low energy. Recharge first, then work.", types.UrgencyMedium, "15 min", "Recharge first")
		}
	}

	// Time-of-day bonuses
	if snap.TimeOfDay == "morning" && snap.Mood >= 6 && snap.Energy >= 6 {
		add("Morning Power Hour", "Strong start. Claim the next hour for your most important goal.", types.UrgencyHigh, "60 min", "Block the hour")
	}
	if snap.TimeOfDay == "evening" {
		add("Evening Reflection", "Close the day with a two-line reflection on what went well.", types.UrgencyLow, "5 min", "Reflect")
	}

	// Balanced state
	if snap.Mood >= 6 && snap.Energy >= 6 && snap.Stress <= 5 && snap.Productivity >= 6 {
		add("Flow State", "Everything is aligned. Extend your current session while it lasts.", types.UrgencyMedium, "30 min", "Keep going")
	}

	// Catch-all
	add("Stay Hydrated", "A glass of water now keeps energy and focus steadier later.", types.UrgencyLow, "1 min", "Drink water")

	return out
}
