package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BTheCoderr/momentum-ai-sub002/internal/logger"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/repos"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/types"
)

// XP awards per ledger source.
const (
	XPPointsCheckIn   = 10
	XPPointsChallenge = 15
	XPPointsSupport   = 5
	XPPointsInvite    = 20
	XPPointsVote      = 5
)

// GamificationService owns all mutation of challenge day-sets, the pod XP
// ledger, and vote ballots. Store faults during awards are logged and
// surfaced as a false return, never as an error to the UI layer; the single
// failed operation is not retried.
type GamificationService interface {
	// MarkDayComplete records a completed day. Idempotent: a day already in
	// the set is a no-op and earns no XP. Returns true only when the day was
	// newly recorded.
	MarkDayComplete(ctx context.Context, userID, challengeID uuid.UUID, day int) bool
	ChallengeStatus(ctx context.Context, userID, challengeID uuid.UUID) (types.ChallengeStatus, []int)
	// AwardXP appends one ledger row; existing rows are never touched.
	AwardXP(ctx context.Context, podID, userID uuid.UUID, source types.XPSource, points int) bool
	// CastVote overwrites the user's ballot entry (last write wins) and then
	// awards vote XP. A repeat cast on the same ballot changes the choice and
	// awards XP again; see DESIGN.md for why that is kept as-is.
	CastVote(ctx context.Context, voteID, userID uuid.UUID, option string) bool
	JoinViaInvite(ctx context.Context, userID uuid.UUID, inviteCode string) (*types.Pod, bool)
	AwardCheckInXP(ctx context.Context, podID, userID uuid.UUID) bool
	SendSupport(ctx context.Context, podID, userID uuid.UUID) bool
	PodTotalXP(ctx context.Context, podID uuid.UUID) int
	Leaderboard(ctx context.Context, podID uuid.UUID) []repos.LeaderboardRow
}

type gamificationService struct {
	log        *logger.Logger
	challenges repos.ChallengeRepo
	progress   repos.ChallengeProgressRepo
	pods       repos.PodRepo
	members    repos.PodMemberRepo
	invites    repos.PodInviteRepo
	xp         repos.PodXPRepo
	votes      repos.PodVoteRepo
}

func NewGamificationService(
	log *logger.Logger,
	challenges repos.ChallengeRepo,
	progress repos.ChallengeProgressRepo,
	pods repos.PodRepo,
	members repos.PodMemberRepo,
	invites repos.PodInviteRepo,
	xp repos.PodXPRepo,
	votes repos.PodVoteRepo,
) GamificationService {
	serviceLog := log.With("service", "GamificationService")
	return &gamificationService{
		log:        serviceLog,
		challenges: challenges,
		progress:   progress,
		pods:       pods,
		members:    members,
		invites:    invites,
		xp:         xp,
		votes:      votes,
	}
}

func (s *gamificationService) MarkDayComplete(ctx context.Context, userID, challengeID uuid.UUID, day int) bool {
	challenge, err := s.challenges.GetByID(ctx, nil, challengeID)
	if err != nil {
		s.log.Warn("mark day: challenge lookup failed", "challenge_id", challengeID, "error", err)
		return false
	}

	progress, err := s.progress.Get(ctx, nil, userID, challengeID)
	if err != nil {
		s.log.Warn("mark day: progress read failed", "user_id", userID, "challenge_id", challengeID, "error", err)
		return false
	}
	if progress == nil {
		progress = &types.ChallengeProgress{
			UserID:      userID,
			ChallengeID: challengeID,
		}
	}

	days := progress.Days()
	for _, d := range days {
		if d == day {
			// Already recorded: no write, no XP.
			return false
		}
	}
	days = append(days, day)
	if err := progress.SetDays(days); err != nil {
		s.log.Warn("mark day: day-set encode failed", "user_id", userID, "challenge_id", challengeID, "error", err)
		return false
	}
	progress.LastUpdated = time.Now().UTC()

	if _, err := s.progress.Save(ctx, nil, progress); err != nil {
		s.log.Warn("mark day: progress write failed", "user_id", userID, "challenge_id", challengeID, "error", err)
		return false
	}

	if challenge.PodLinked() {
		s.AwardXP(ctx, *challenge.PodID, userID, types.XPSourceChallenge, XPPointsChallenge)
	}
	return true
}

func (s *gamificationService) ChallengeStatus(ctx context.Context, userID, challengeID uuid.UUID) (types.ChallengeStatus, []int) {
	challenge, err := s.challenges.GetByID(ctx, nil, challengeID)
	if err != nil {
		s.log.Warn("challenge status: challenge lookup failed", "challenge_id", challengeID, "error", err)
		return types.ChallengeNotStarted, []int{}
	}
	progress, err := s.progress.Get(ctx, nil, userID, challengeID)
	if err != nil {
		s.log.Warn("challenge status: progress read failed", "user_id", userID, "challenge_id", challengeID, "error", err)
		return types.ChallengeNotStarted, []int{}
	}
	if progress == nil {
		return types.ChallengeNotStarted, []int{}
	}
	return progress.Status(challenge.TotalDays), progress.Days()
}

func (s *gamificationService) AwardXP(ctx context.Context, podID, userID uuid.UUID, source types.XPSource, points int) bool {
	entry := &types.PodXPEntry{
		PodID:  podID,
		UserID: userID,
		Source: source,
		Points: points,
	}
	if _, err := s.xp.Append(ctx, nil, entry); err != nil {
		s.log.Warn("xp award failed", "pod_id", podID, "user_id", userID, "source", string(source), "error", err)
		return false
	}
	return true
}

func (s *gamificationService) CastVote(ctx context.Context, voteID, userID uuid.UUID, option string) bool {
	vote, err := s.votes.GetByID(ctx, nil, voteID)
	if err != nil {
		s.log.Warn("cast vote: ballot lookup failed", "vote_id", voteID, "error", err)
		return false
	}
	if vote.ExpiresAt != nil && time.Now().After(*vote.ExpiresAt) {
		s.log.Debug("cast vote: ballot expired", "vote_id", voteID)
		return false
	}

	valid := false
	for _, opt := range vote.OptionList() {
		if opt == option {
			valid = true
			break
		}
	}
	if !valid {
		s.log.Debug("cast vote: unknown option", "vote_id", voteID, "option", option)
		return false
	}

	ballots := vote.Ballots()
	ballots[userID.String()] = option
	if err := vote.SetBallots(ballots); err != nil {
		s.log.Warn("cast vote: ballot encode failed", "vote_id", voteID, "error", err)
		return false
	}
	if _, err := s.votes.Save(ctx, nil, vote); err != nil {
		s.log.Warn("cast vote: ballot write failed", "vote_id", voteID, "error", err)
		return false
	}

	s.AwardXP(ctx, vote.PodID, userID, types.XPSourceVote, XPPointsVote)
	return true
}

func (s *gamificationService) JoinViaInvite(ctx context.Context, userID uuid.UUID, inviteCode string) (*types.Pod, bool) {
	invite, err := s.invites.GetByCode(ctx, nil, inviteCode)
	if err != nil {
		s.log.Warn("join via invite: code lookup failed", "error", err)
		return nil, false
	}
	if invite == nil {
		return nil, false
	}

	pod, err := s.pods.GetByID(ctx, nil, invite.PodID)
	if err != nil {
		s.log.Warn("join via invite: pod lookup failed", "pod_id", invite.PodID, "error", err)
		return nil, false
	}

	exists, err := s.members.Exists(ctx, nil, pod.ID, userID)
	if err != nil {
		s.log.Warn("join via invite: membership check failed", "pod_id", pod.ID, "user_id", userID, "error", err)
		return nil, false
	}
	if exists {
		// Already a member: no duplicate row, no second invite award.
		return pod, false
	}

	member := &types.PodMember{PodID: pod.ID, UserID: userID, JoinedAt: time.Now().UTC()}
	if _, err := s.members.Create(ctx, nil, member); err != nil {
		s.log.Warn("join via invite: membership insert failed", "pod_id", pod.ID, "user_id", userID, "error", err)
		return nil, false
	}

	// Membership committed; a failed award here leaves the join in place and
	// is not retried.
	s.AwardXP(ctx, pod.ID, userID, types.XPSourceInvite, XPPointsInvite)
	return pod, true
}

func (s *gamificationService) AwardCheckInXP(ctx context.Context, podID, userID uuid.UUID) bool {
	return s.AwardXP(ctx, podID, userID, types.XPSourceCheckIn, XPPointsCheckIn)
}

func (s *gamificationService) SendSupport(ctx context.Context, podID, userID uuid.UUID) bool {
	return s.AwardXP(ctx, podID, userID, types.XPSourceSupport, XPPointsSupport)
}

func (s *gamificationService) PodTotalXP(ctx context.Context, podID uuid.UUID) int {
	total, err := s.xp.TotalForPod(ctx, nil, podID)
	if err != nil {
		s.log.Warn("pod total read failed", "pod_id", podID, "error", err)
		return 0
	}
	return total
}

func (s *gamificationService) Leaderboard(ctx context.Context, podID uuid.UUID) []repos.LeaderboardRow {
	rows, err := s.xp.TotalsByUser(ctx, nil, podID)
	if err != nil {
		s.log.Warn("leaderboard read failed", "pod_id", podID, "error", err)
		return []repos.LeaderboardRow{}
	}
	if rows == nil {
		rows = []repos.LeaderboardRow{}
	}
	return rows
}
