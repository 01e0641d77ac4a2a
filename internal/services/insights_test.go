package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BTheCoderr/momentum-ai-sub002/internal/repos"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/types"
)

func newInsightFixture(t *testing.T, ai AIClient) (InsightService, *gorm.DB, uuid.UUID) {
	t.Helper()
	log := testLogger(t)
	gdb := testDB(t)

	contextSvc := NewContextService(log,
		repos.NewGoalRepo(gdb, log),
		repos.NewCheckInRepo(gdb, log),
		repos.NewMessageRepo(gdb, log),
	)
	svc := NewInsightService(log, contextSvc, NewPatternService(log), ai)

	user := &types.User{Email: "insight@test.local"}
	require.NoError(t, gdb.Create(user).Error)
	return svc, gdb, user.ID
}

func seedCheckIns(t *testing.T, gdb *gorm.DB, userID uuid.UUID, n int) {
	t.Helper()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		checkin := &types.CheckIn{
			UserID:     userID,
			Mood:       4,
			Energy:     3,
			Stress:     2,
			Wins:       "finished the morning routine",
			Challenges: "afternoon slump",
			Date:       base.AddDate(0, 0, i),
			CreatedAt:  base.AddDate(0, 0, i),
		}
		require.NoError(t, gdb.Create(checkin).Error)
	}
}

func TestGenerateInsightsEmptyHistory(t *testing.T) {
	ai := &fakeAI{text: "- should never be called"}
	svc, _, userID := newInsightFixture(t, ai)

	got := svc.GenerateInsights(context.Background(), userID)
	require.Equal(t, starterInsights, got)
	assert.Equal(t, 0, ai.calls, "no model call for empty history")
}

func TestGenerateSuggestionsEmptyHistory(t *testing.T) {
	ai := &fakeAI{text: "- should never be called"}
	svc, _, userID := newInsightFixture(t, ai)

	got := svc.GenerateSuggestions(context.Background(), userID)
	require.Equal(t, starterSuggestions, got)
	assert.Equal(t, 0, ai.calls)
}

func TestGenerateInsightsParsesBullets(t *testing.T) {
	ai := &fakeAI{text: "Here are your insights:\n• Morning check-ins correlate with better mood\n- Energy dips midweek\n* Stress is trending down\n\nKeep it up!"}
	svc, gdb, userID := newInsightFixture(t, ai)
	seedCheckIns(t, gdb, userID, 5)

	got := svc.GenerateInsights(context.Background(), userID)
	require.Equal(t, []string{
		"Morning check-ins correlate with better mood",
		"Energy dips midweek",
		"Stress is trending down",
	}, got)
	assert.Equal(t, 1, ai.calls)
}

func TestGenerateInsightsTransportFailureFallsBack(t *testing.T) {
	ai := &fakeAI{err: errors.New("dial tcp: connection refused")}
	svc, gdb, userID := newInsightFixture(t, ai)
	seedCheckIns(t, gdb, userID, 3)

	got := svc.GenerateInsights(context.Background(), userID)
	require.Equal(t, fallbackPatternCatalog, got)
}

func TestGenerateSuggestionsTransportFailureFallsBack(t *testing.T) {
	ai := &fakeAI{err: errors.New("dial tcp: connection refused")}
	svc, gdb, userID := newInsightFixture(t, ai)
	seedCheckIns(t, gdb, userID, 3)

	got := svc.GenerateSuggestions(context.Background(), userID)
	require.Equal(t, fallbackSuggestionCatalog, got)
}

func TestGenerateInsightsCredentialMissingShortCircuits(t *testing.T) {
	ai := &fakeAI{err: ErrCredentialMissing}
	svc, gdb, userID := newInsightFixture(t, ai)
	seedCheckIns(t, gdb, userID, 3)

	got := svc.GenerateInsights(context.Background(), userID)
	require.Equal(t, fallbackPatternCatalog, got)
}

func TestGenerateInsightsUnusableOutputFallsBack(t *testing.T) {
	ai := &fakeAI{text: "I could not find any patterns worth reporting today."}
	svc, gdb, userID := newInsightFixture(t, ai)
	seedCheckIns(t, gdb, userID, 3)

	got := svc.GenerateInsights(context.Background(), userID)
	require.Equal(t, fallbackPatternCatalog, got)
}

func TestGenerateInsightRecordsConfidence(t *testing.T) {
	ai := &fakeAI{text: "- Mood climbs after completed goals"}
	svc, gdb, userID := newInsightFixture(t, ai)
	seedCheckIns(t, gdb, userID, 3)

	records := svc.GenerateInsightRecords(context.Background(), userID)
	require.Len(t, records, 1)
	assert.Equal(t, confidenceModel, records[0].Confidence)

	failing := &fakeAI{err: errors.New("boom")}
	svc2, gdb2, userID2 := newInsightFixture(t, failing)
	seedCheckIns(t, gdb2, userID2, 3)
	records2 := svc2.GenerateInsightRecords(context.Background(), userID2)
	require.NotEmpty(t, records2)
	for _, rec := range records2 {
		assert.Equal(t, confidenceFallback, rec.Confidence)
	}
}

func TestGetCoachingMessageFallbacks(t *testing.T) {
	failing := &fakeAI{err: errors.New("upstream timeout")}

	svc, gdb, userID := newInsightFixture(t, failing)
	require.Equal(t, coachingFallbackNoHistory, svc.GetCoachingMessage(context.Background(), userID))

	seedCheckIns(t, gdb, userID, 2)
	require.Equal(t, coachingFallbackWithHistory, svc.GetCoachingMessage(context.Background(), userID))
}

func TestGetCoachingMessageSuccess(t *testing.T) {
	ai := &fakeAI{text: "  You had a strong week - keep the streak alive.  "}
	svc, gdb, userID := newInsightFixture(t, ai)
	seedCheckIns(t, gdb, userID, 2)

	require.Equal(t, "You had a strong week - keep the streak alive.", svc.GetCoachingMessage(context.Background(), userID))
}

func TestParseBulletLines(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    []string
		wantErr bool
	}{
		{
			name: "mixed_markers",
			in:   "• one\n- two\n* three",
			want: []string{"one", "two", "three"},
		},
		{
			name: "skips_prose_and_blank_lines",
			in:   "Here you go:\n\n- only line\n\nThanks!",
			want: []string{"only line"},
		},
		{
			name:    "no_bullets",
			in:      "nothing structured here",
			wantErr: true,
		},
		{
			name:    "empty_markers_only",
			in:      "-\n•   \n*",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseBulletLines(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrNoUsableContent) {
					t.Fatalf("err=%v, want ErrNoUsableContent", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			require.Equal(t, tc.want, got)
		})
	}
}

func TestFallbackCatalogSelection(t *testing.T) {
	cases := []struct {
		name   string
		prompt string
		want   []string
	}{
		{name: "patterns_keyword", prompt: "identify patterns in this data", want: fallbackPatternCatalog},
		{name: "insights_keyword", prompt: "give me insights", want: fallbackPatternCatalog},
		{name: "suggestions_keyword", prompt: "give actionable suggestions", want: fallbackSuggestionCatalog},
		{name: "recommendations_keyword", prompt: "any recommendations?", want: fallbackSuggestionCatalog},
		{name: "no_keyword", prompt: "hello there", want: fallbackGeneric},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, fallbackFor(tc.prompt))
		})
	}
}
