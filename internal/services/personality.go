package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/BTheCoderr/momentum-ai-sub002/internal/logger"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/repos"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/types"
)

const (
	personaCacheTTL    = 15 * time.Minute
	personaCachePrefix = "coach:persona:"

	personaApology = "I'm having trouble connecting right now - let's pick this up in a moment."
)

// PersonalityService renders persona-styled coach replies. Recognized intents
// get canned style-specific templates; open-ended previews are delegated to
// the language model with a persona prefix.
type PersonalityService interface {
	GetPersonality(ctx context.Context, userID uuid.UUID) types.CoachPersonality
	SetPersonality(ctx context.Context, userID uuid.UUID, personality types.CoachPersonality) bool
	Respond(style types.CoachStyle, userMessage string) string
	Preview(ctx context.Context, style types.CoachStyle, prompt string) string
}

type personalityService struct {
	log   *logger.Logger
	prefs repos.CoachPreferenceRepo
	ai    AIClient
	rdb   *goredis.Client

	// Process-local read-through layer; also the only cache when redis is
	// not configured.
	mu    sync.RWMutex
	local map[uuid.UUID]types.CoachPersonality
}

// NewPersonalityService accepts a nil redis client; the cache then degrades
// to the in-process map.
func NewPersonalityService(log *logger.Logger, prefs repos.CoachPreferenceRepo, ai AIClient, rdb *goredis.Client) PersonalityService {
	serviceLog := log.With("service", "PersonalityService")
	return &personalityService{
		log:   serviceLog,
		prefs: prefs,
		ai:    ai,
		rdb:   rdb,
		local: make(map[uuid.UUID]types.CoachPersonality),
	}
}

func (s *personalityService) GetPersonality(ctx context.Context, userID uuid.UUID) types.CoachPersonality {
	s.mu.RLock()
	cached, ok := s.local[userID]
	s.mu.RUnlock()
	if ok {
		return cached
	}

	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, personaCachePrefix+userID.String()).Bytes()
		if err == nil {
			var p types.CoachPersonality
			if jsonErr := json.Unmarshal(raw, &p); jsonErr == nil {
				s.remember(userID, p)
				return p
			}
		}
	}

	pref, err := s.prefs.GetByUserID(ctx, nil, userID)
	if err != nil {
		s.log.Warn("coach preference read failed, using default persona", "user_id", userID, "error", err)
		return types.DefaultCoachPersonality()
	}
	personality := types.DefaultCoachPersonality()
	if pref != nil {
		personality = pref.Personality()
	}
	s.remember(userID, personality)
	s.cacheRemote(ctx, userID, personality)
	return personality
}

func (s *personalityService) SetPersonality(ctx context.Context, userID uuid.UUID, personality types.CoachPersonality) bool {
	_, err := s.prefs.Upsert(ctx, nil, &types.CoachPreference{
		UserID:         userID,
		Style:          personality.Style,
		Formality:      personality.Tone.Formality,
		Directness:     personality.Tone.Directness,
		Enthusiasm:     personality.Tone.Enthusiasm,
		Supportiveness: personality.Tone.Supportiveness,
	})
	if err != nil {
		s.log.Warn("coach preference write failed", "user_id", userID, "error", err)
		return false
	}
	s.remember(userID, personality)
	s.cacheRemote(ctx, userID, personality)
	return true
}

func (s *personalityService) remember(userID uuid.UUID, p types.CoachPersonality) {
	s.mu.Lock()
	s.local[userID] = p
	s.mu.Unlock()
}

func (s *personalityService) cacheRemote(ctx context.Context, userID uuid.UUID, p types.CoachPersonality) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, personaCachePrefix+userID.String(), raw, personaCacheTTL).Err(); err != nil {
		s.log.Debug("persona cache write failed", "user_id", userID, "error", err)
	}
}

// Respond handles the template path. Intent detection is a keyword match;
// unrecognized input gets the style's default template.
func (s *personalityService) Respond(style types.CoachStyle, userMessage string) string {
	lower := strings.ToLower(userMessage)
	switch {
	case strings.Contains(lower, "motivated") || strings.Contains(lower, "motivation"):
		return motivationTemplate(style)
	case strings.Contains(lower, "stuck") || strings.Contains(lower, "overwhelmed"):
		return stuckTemplate(style)
	default:
		return defaultTemplate(style)
	}
}

// Preview is the delegated path: one model attempt with a persona prefix,
// fixed apology on any failure, no retry.
func (s *personalityService) Preview(ctx context.Context, style types.CoachStyle, prompt string) string {
	full := personaInstruction(style) + "\n\n" + prompt
	text, err := s.ai.Complete(ctx, full)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			s.log.Warn("persona preview completion failed", "style", string(style), "error", err)
		}
		return personaApology
	}
	return strings.TrimSpace(text)
}

func personaInstruction(style types.CoachStyle) string {
	switch style {
	case types.StyleMotivational:
		return "Respond as a high-energy motivational coach. Be punchy and direct, push for action."
	case types.StyleAnalytical:
		return "Respond as an analytical coach. Be precise, reference the data, suggest measurable steps."
	case types.StyleSupportive:
		return "Respond as a supportive coach. Be warm and validating before suggesting anything."
	case types.StyleEncouraging:
		return "Respond as an encouraging coach. Celebrate effort and frame setbacks as progress."
	case types.StyleStrict:
		return "Respond as a strict coach. Be blunt about excuses and hold the user to their commitments."
	case types.StyleWise:
		return "Respond as a wise mentor. Be calm and reflective, favor questions over directives."
	case types.StyleFriendly:
		return "Respond as a friendly peer. Be casual and conversational."
	default:
		return "Respond as an encouraging coach. Celebrate effort and frame setbacks as progress."
	}
}

func motivationTemplate(style types.CoachStyle) string {
	switch style {
	case types.StyleMotivational:
		return "Motivation follows action, not the other way around. Pick the smallest piece of your goal and start it in the next five minutes."
	case types.StyleAnalytical:
		return "Motivation dips are normal and measurable. Look at your last week of check-ins: your best days followed completed tasks, not the reverse. Start small."
	case types.StyleSupportive:
		return "It's okay to not feel motivated - that's human. Be kind to yourself, then try one tiny step. I'm in your corner."
	case types.StyleEncouraging:
		return "You've shown up before and you can show up today. One small win will get the wheels turning - you've got this!"
	case types.StyleStrict:
		return "Waiting for motivation is a stall tactic. You committed to this goal. Do the next task now; feelings can catch up later."
	case types.StyleWise:
		return "Motivation is weather; commitment is climate. What is the one thing that would matter even if you never felt like doing it?"
	case types.StyleFriendly:
		return "Ugh, low-motivation days are the worst! Let's just knock out one easy thing together and see how it feels after."
	default:
		return "You've shown up before and you can show up today. One small win will get the wheels turning - you've got this!"
	}
}

func stuckTemplate(style types.CoachStyle) string {
	switch style {
	case types.StyleMotivational:
		return "Stuck means you're at the edge of a breakthrough. Shrink the problem: what's one 10-minute move you can make right now?"
	case types.StyleAnalytical:
		return "Feeling overwhelmed usually means the task is under-specified. Write down every open item, pick the single highest-leverage one, and ignore the rest for an hour."
	case types.StyleSupportive:
		return "Feeling stuck is heavy, and it doesn't mean you're failing. Take a breath. What's the gentlest next step we could take together?"
	case types.StyleEncouraging:
		return "Everyone hits walls - the fact that you're naming it means you're ready to move. Let's pick one tiny piece and make progress you can see."
	case types.StyleStrict:
		return "Overwhelm is a planning failure, not a character one. List your tasks, cut half, and execute the top item. No negotiating."
	case types.StyleWise:
		return "A river blocked by stones finds a narrower channel. Where is the narrow channel in what you're facing today?"
	case types.StyleFriendly:
		return "Been there! When everything feels like too much, I just pick the dumbest easiest task and do that first. Want to try it?"
	default:
		return "Everyone hits walls - the fact that you're naming it means you're ready to move. Let's pick one tiny piece and make progress you can see."
	}
}

func defaultTemplate(style types.CoachStyle) string {
	switch style {
	case types.StyleMotivational:
		return "Every day is a new rep. What are we attacking today?"
	case types.StyleAnalytical:
		return "Let's look at the data together. What would you like to review - your check-ins, goals, or recent trends?"
	case types.StyleSupportive:
		return "I'm here for whatever you need today. How are you really doing?"
	case types.StyleEncouraging:
		return "Great to see you! Every check-in is a step forward. What's on your mind?"
	case types.StyleStrict:
		return "You're here - good. Status report: where are you on this week's commitments?"
	case types.StyleWise:
		return "Welcome back. Before we plan anything, what did today teach you?"
	case types.StyleFriendly:
		return "Hey! Good to see you. What's going on today?"
	default:
		return "Great to see you! Every check-in is a step forward. What's on your mind?"
	}
}
