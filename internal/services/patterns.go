package services

import (
	"fmt"

	"github.com/BTheCoderr/momentum-ai-sub002/internal/logger"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/types"
)

const (
	// Averages run over the most recent N check-ins.
	patternWindow = 30

	// Morning share needed to call a user "most active in morning".
	morningDominance = 0.6
)

type CheckInField string

const (
	FieldMood   CheckInField = "mood"
	FieldEnergy CheckInField = "energy"
	FieldStress CheckInField = "stress"
)

// MoodStability labels use the 1-5 check-in form scale. The prioritizer's
// thresholds use the 1-10 snapshot scale; the two are intentionally not
// normalized against each other.
const (
	MoodPositive = "positive"
	MoodSteady   = "steady"
	MoodLower    = "lower periods"
)

// PatternSummary is the structured-fact output of the analyzer. It feeds
// prompt construction and doubles as a deterministic insight source when the
// generative path is unavailable.
type PatternSummary struct {
	Count            int     `json:"count"`
	AvgMood          float64 `json:"avg_mood"`
	AvgEnergy        float64 `json:"avg_energy"`
	AvgStress        float64 `json:"avg_stress"`
	MostActiveWindow string  `json:"most_active_window"`
	MoodStability    string  `json:"mood_stability"`
	HasData          bool    `json:"has_data"`
}

type PatternService interface {
	Analyze(checkins []*types.CheckIn) PatternSummary
	Average(checkins []*types.CheckIn, field CheckInField, n int) (float64, bool)
	DeterministicInsights(summary PatternSummary) []string
}

type patternService struct {
	log *logger.Logger
}

func NewPatternService(log *logger.Logger) PatternService {
	return &patternService{log: log.With("service", "PatternService")}
}

// Average computes the mean of field over the most recent n check-ins
// (checkins are most-recent-first). ok is false when there is no history:
// the insufficient-data sentinel.
func (s *patternService) Average(checkins []*types.CheckIn, field CheckInField, n int) (float64, bool) {
	if len(checkins) == 0 {
		return 0, false
	}
	if n <= 0 {
		n = patternWindow
	}
	if n > len(checkins) {
		n = len(checkins)
	}
	sum := 0
	for _, c := range checkins[:n] {
		switch field {
		case FieldMood:
			sum += c.Mood
		case FieldEnergy:
			sum += c.Energy
		case FieldStress:
			sum += c.Stress
		}
	}
	return float64(sum) / float64(n), true
}

func (s *patternService) Analyze(checkins []*types.CheckIn) PatternSummary {
	summary := PatternSummary{Count: len(checkins), MostActiveWindow: "varied"}
	if len(checkins) == 0 {
		return summary
	}
	summary.HasData = true
	summary.AvgMood, _ = s.Average(checkins, FieldMood, patternWindow)
	summary.AvgEnergy, _ = s.Average(checkins, FieldEnergy, patternWindow)
	summary.AvgStress, _ = s.Average(checkins, FieldStress, patternWindow)

	morning := 0
	for _, c := range checkins {
		if c.CreatedAt.Hour() < 12 {
			morning++
		}
	}
	if float64(morning) >= morningDominance*float64(len(checkins)) {
		summary.MostActiveWindow = "morning"
	}

	switch {
	case summary.AvgMood >= 4:
		summary.MoodStability = MoodPositive
	case summary.AvgMood >= 3:
		summary.MoodStability = MoodSteady
	default:
		summary.MoodStability = MoodLower
	}
	return summary
}

// DeterministicInsights renders the summary facts as plain-language lines,
// no model involved.
func (s *patternService) DeterministicInsights(summary PatternSummary) []string {
	if !summary.HasData {
		return []string{}
	}
	out := []string{
		fmt.Sprintf("You've logged %d check-ins recently - consistency is the foundation of progress.", summary.Count),
	}
	if summary.MostActiveWindow == "morning" {
		out = append(out, "You're most active in the morning - your check-ins cluster before noon.")
	}
	switch summary.MoodStability {
	case MoodPositive:
		out = append(out, fmt.Sprintf("Your mood has been consistently positive, averaging %.1f out of 5.", summary.AvgMood))
	case MoodSteady:
		out = append(out, fmt.Sprintf("Your mood has been steady, averaging %.1f out of 5.", summary.AvgMood))
	case MoodLower:
		out = append(out, fmt.Sprintf("You've had some lower periods lately, with mood averaging %.1f out of 5.", summary.AvgMood))
	}
	return out
}
