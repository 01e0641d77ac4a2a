package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/BTheCoderr/momentum-ai-sub002/internal/logger"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/types"
)

// ErrNoUsableContent means the model responded but the validator found zero
// bullet lines in it. Behaviorally identical to a transport failure: the
// caller falls back to the static catalog.
var ErrNoUsableContent = errors.New("insights: model output had no usable bullet lines")

const (
	promptCheckInWindow = 10
	promptTextLimit     = 100

	confidenceModel    = 0.8
	confidenceFallback = 0.6
)

// Fixed response sets. These strings are load-bearing contract: the zero
// history starter sets are returned verbatim, and the fallback catalogs are
// deliberately static content rather than anything derived from user data.
var (
	starterInsights = []string{
		"Welcome! Start by logging your first check-in to unlock personalized insights.",
		"Your journey begins with a single step - complete your first daily check-in.",
		"Once you have a few check-ins logged, patterns in your mood and energy will appear here.",
	}

	starterSuggestions = []string{
		"Complete your first check-in to get personalized suggestions.",
		"Set up your first goal to give your coach something to work with.",
		"Try a quick 2-minute reflection on what you want to accomplish today.",
	}

	fallbackPatternCatalog = []string{
		"You tend to have more energy in the mornings - consider scheduling important tasks early.",
		"Your mood improves on days when you make progress on your goals.",
		"Consistent check-ins are building your self-awareness muscle.",
	}

	fallbackSuggestionCatalog = []string{
		"Take a 10-minute walk to reset your energy.",
		"Write down three things you're grateful for.",
		"Break your biggest goal into one small step you can do today.",
		"Drink a glass of water and stretch for two minutes.",
	}

	fallbackGeneric = []string{
		"Keep up the great work with your daily check-ins!",
	}

	coachingFallbackWithHistory = "You're building real momentum - keep showing up for yourself, one day at a time."
	coachingFallbackNoHistory   = "Every journey starts somewhere. Log your first check-in and let's get moving!"
)

type InsightService interface {
	GenerateInsights(ctx context.Context, userID uuid.UUID) []string
	GenerateSuggestions(ctx context.Context, userID uuid.UUID) []string
	// GenerateInsightRecords wraps GenerateInsights lines with provenance
	// confidence (0.8 model-derived, 0.6 fallback).
	GenerateInsightRecords(ctx context.Context, userID uuid.UUID) []types.Insight
	GetCoachingMessage(ctx context.Context, userID uuid.UUID) string
}

type insightService struct {
	log      *logger.Logger
	context  ContextService
	patterns PatternService
	ai       AIClient
}

func NewInsightService(log *logger.Logger, contextSvc ContextService, patterns PatternService, ai AIClient) InsightService {
	serviceLog := log.With("service", "InsightService")
	return &insightService{
		log:      serviceLog,
		context:  contextSvc,
		patterns: patterns,
		ai:       ai,
	}
}

func (s *insightService) GenerateInsights(ctx context.Context, userID uuid.UUID) []string {
	lines, _ := s.generate(ctx, userID, insightsPromptFor, starterInsights)
	return lines
}

func (s *insightService) GenerateSuggestions(ctx context.Context, userID uuid.UUID) []string {
	lines, _ := s.generate(ctx, userID, suggestionsPromptFor, starterSuggestions)
	return lines
}

func (s *insightService) GenerateInsightRecords(ctx context.Context, userID uuid.UUID) []types.Insight {
	lines, fromModel := s.generate(ctx, userID, insightsPromptFor, starterInsights)
	confidence := confidenceFallback
	if fromModel {
		confidence = confidenceModel
	}
	out := make([]types.Insight, 0, len(lines))
	for _, line := range lines {
		out = append(out, types.Insight{
			ID:         uuid.New(),
			Type:       types.InsightPattern,
			Title:      "Behavioral pattern",
			Content:    line,
			Confidence: confidence,
			Actionable: true,
		})
	}
	return out
}

// generate runs the shared shape: empty history -> starter set, otherwise
// prompt -> single model call -> bullet parse -> keyword-matched static
// fallback on any failure. The bool reports whether the lines came from the
// model.
func (s *insightService) generate(ctx context.Context, userID uuid.UUID, promptFor func(PatternSummary, []*types.CheckIn) string, starter []string) ([]string, bool) {
	userCtx := s.context.BuildUserContext(ctx, userID)
	if len(userCtx.CheckIns) == 0 {
		return starter, false
	}

	summary := s.patterns.Analyze(userCtx.CheckIns)
	prompt := promptFor(summary, userCtx.CheckIns)

	text, err := s.ai.Complete(ctx, prompt)
	if err != nil {
		if errors.Is(err, ErrCredentialMissing) {
			s.log.Debug("ai credentials missing, using fallback catalog", "user_id", userID)
		} else {
			s.log.Warn("ai completion failed, using fallback catalog", "user_id", userID, "error", err)
		}
		return fallbackFor(prompt), false
	}

	lines, err := parseBulletLines(text)
	if err != nil {
		s.log.Warn("ai output unusable, using fallback catalog", "user_id", userID, "error", err)
		return fallbackFor(prompt), false
	}
	return lines, true
}

func (s *insightService) GetCoachingMessage(ctx context.Context, userID uuid.UUID) string {
	userCtx := s.context.BuildUserContext(ctx, userID)
	hasHistory := len(userCtx.CheckIns) > 0

	prompt := coachingPromptFor(userCtx)
	text, err := s.ai.Complete(ctx, prompt)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil && !errors.Is(err, ErrCredentialMissing) {
			s.log.Warn("coaching message completion failed, using fixed fallback", "user_id", userID, "error", err)
		}
		if hasHistory {
			return coachingFallbackWithHistory
		}
		return coachingFallbackNoHistory
	}
	return strings.TrimSpace(text)
}

// serializeCheckIns renders the most recent check-ins for prompt use, with
// free text clipped so one verbose entry cannot dominate the prompt.
func serializeCheckIns(checkins []*types.CheckIn) string {
	n := promptCheckInWindow
	if n > len(checkins) {
		n = len(checkins)
	}
	var b strings.Builder
	for _, c := range checkins[:n] {
		fmt.Fprintf(&b, "- %s: mood %d, energy %d, stress %d", c.Date.Format("2006-01-02"), c.Mood, c.Energy, c.Stress)
		if wins := clip(c.Wins, promptTextLimit); wins != "" {
			fmt.Fprintf(&b, "; wins: %s", wins)
		}
		if challenges := clip(c.Challenges, promptTextLimit); challenges != "" {
			fmt.Fprintf(&b, "; challenges: %s", challenges)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func clip(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func insightsPromptFor(summary PatternSummary, checkins []*types.CheckIn) string {
	var b strings.Builder
	b.WriteString("You are a behavioral coach. Analyze these recent daily check-ins and identify patterns and insights.\n\n")
	b.WriteString("Recent check-ins (most recent first):\n")
	b.WriteString(serializeCheckIns(checkins))
	fmt.Fprintf(&b, "\nSummary: %d check-ins, mood averaging %.1f, most active window: %s.\n", summary.Count, summary.AvgMood, summary.MostActiveWindow)
	b.WriteString("\nRespond with 3-5 bullet-point insights, one per line, each starting with \"- \".\n")
	return b.String()
}

func suggestionsPromptFor(summary PatternSummary, checkins []*types.CheckIn) string {
	var b strings.Builder
	b.WriteString("You are a behavioral coach. Based on these recent daily check-ins, give actionable suggestions and recommendations.\n\n")
	b.WriteString("Recent check-ins (most recent first):\n")
	b.WriteString(serializeCheckIns(checkins))
	fmt.Fprintf(&b, "\nSummary: %d check-ins, energy averaging %.1f, stress averaging %.1f.\n", summary.Count, summary.AvgEnergy, summary.AvgStress)
	b.WriteString("\nRespond with 4-6 bullet-point suggestions, one per line, each starting with \"- \".\n")
	return b.String()
}

func coachingPromptFor(userCtx *UserContext) string {
	var b strings.Builder
	b.WriteString("You are an accountability coach. Write a single short encouraging paragraph for this user.\n\n")
	if len(userCtx.CheckIns) > 0 {
		b.WriteString("Recent check-ins:\n")
		b.WriteString(serializeCheckIns(userCtx.CheckIns))
	} else {
		b.WriteString("The user has not logged any check-ins yet.\n")
	}
	if len(userCtx.Goals) > 0 {
		b.WriteString("\nActive goals:\n")
		for _, g := range userCtx.Goals {
			fmt.Fprintf(&b, "- %s\n", g.Title)
		}
	}
	b.WriteString("\nRespond with one paragraph of plain text, no bullet points.\n")
	return b.String()
}

// parseBulletLines is the defined validator in front of free-form model
// output: only lines carrying an explicit bullet marker survive, and zero
// survivors is an explicit error rather than a silently-empty success.
func parseBulletLines(text string) ([]string, error) {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		var content string
		switch {
		case strings.HasPrefix(line, "•"):
			content = strings.TrimPrefix(line, "•")
		case strings.HasPrefix(line, "-"):
			content = strings.TrimPrefix(line, "-")
		case strings.HasPrefix(line, "*"):
			content = strings.TrimPrefix(line, "*")
		default:
			continue
		}
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}
		out = append(out, content)
	}
	if len(out) == 0 {
		return nil, ErrNoUsableContent
	}
	return out, nil
}

// fallbackFor picks the static catalog by keyword match on the prompt text.
// The catalog content is fixed by design, not derived from user data.
func fallbackFor(prompt string) []string {
	lower := strings.ToLower(prompt)
	switch {
	case strings.Contains(lower, "patterns") || strings.Contains(lower, "insights"):
		return fallbackPatternCatalog
	case strings.Contains(lower, "suggestions") || strings.Contains(lower, "recommendations"):
		return fallbackSuggestionCatalog
	default:
		return fallbackGeneric
	}
}
