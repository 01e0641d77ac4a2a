package services

import (
	"math"
	"sync"
	"time"

	"github.com/BTheCoderr/momentum-ai-sub002/internal/logger"
)

// EngagementSnapshot is the derived, non-persisted input to the score.
type EngagementSnapshot struct {
	Sessions             int `json:"sessions"`
	CheckIns             int `json:"checkins"`
	Goals                int `json:"goals"`
	Streak               int `json:"streak"`
	AvgSessionDurationMs int `json:"avg_session_duration_ms"`
}

// EngagementScore is a pure function: five weighted, individually capped
// inputs summed and rounded. Maximum possible score is 250. Monotonic
// non-decreasing in every input; no I/O, no randomness.
func EngagementScore(s EngagementSnapshot) int {
	sessionScore := math.Min(float64(s.Sessions)*2, 50)
	checkInScore := math.Min(float64(s.CheckIns)*3, 60)
	goalScore := math.Min(float64(s.Goals)*5, 40)
	streakScore := math.Min(float64(s.Streak)*4, 80)
	durationScore := math.Min(float64(s.AvgSessionDurationMs)/60000*2, 20)
	return int(math.Round(sessionScore + checkInScore + goalScore + streakScore + durationScore))
}

// ScoredSnapshot pairs a snapshot with its computed score for the recent
// activity view.
type ScoredSnapshot struct {
	Snapshot EngagementSnapshot `json:"snapshot"`
	Score    int                `json:"score"`
	ScoredAt time.Time          `json:"scored_at"`
}

type EngagementService interface {
	Score(snapshot EngagementSnapshot) int
	Recent() []ScoredSnapshot
}

type engagementService struct {
	log    *logger.Logger
	recent *snapshotRing
}

func NewEngagementService(log *logger.Logger) EngagementService {
	return &engagementService{
		log:    log.With("service", "EngagementService"),
		recent: newSnapshotRing(50),
	}
}

func (s *engagementService) Score(snapshot EngagementSnapshot) int {
	score := EngagementScore(snapshot)
	s.recent.push(ScoredSnapshot{Snapshot: snapshot, Score: score, ScoredAt: time.Now().UTC()})
	return score
}

func (s *engagementService) Recent() []ScoredSnapshot {
	return s.recent.items()
}

// snapshotRing is a fixed-capacity ring buffer keeping the most recent K
// entries; the oldest entry is evicted on overflow.
type snapshotRing struct {
	mu   sync.Mutex
	buf  []ScoredSnapshot
	next int
	size int
}

func newSnapshotRing(capacity int) *snapshotRing {
	if capacity <= 0 {
		capacity = 1
	}
	return &snapshotRing{buf: make([]ScoredSnapshot, capacity)}
}

func (r *snapshotRing) push(item ScoredSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf[r.next] = item
	r.next = (r.next + 1) % len(r.buf)
	if r.size < len(r.buf) {
		r.size++
	}
}

// items returns a most-recent-first copy.
func (r *snapshotRing) items() []ScoredSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ScoredSnapshot, 0, r.size)
	for i := 1; i <= r.size; i++ {
		idx := (r.next - i + len(r.buf)) % len(r.buf)
		out = append(out, r.buf[idx])
	}
	return out
}
