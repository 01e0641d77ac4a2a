package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BTheCoderr/momentum-ai-sub002/internal/services"
)

type GamificationHandler struct {
	gamification services.GamificationService
}

func NewGamificationHandler(gamification services.GamificationService) *GamificationHandler {
	return &GamificationHandler{gamification: gamification}
}

type markDayRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Day    int    `json:"day" binding:"required"`
}

// POST /api/challenges/:id/days
func (h *GamificationHandler) MarkDayComplete(c *gin.Context) {
	challengeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_challenge_id", errors.New("invalid challenge id"))
		return
	}
	var req markDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", errors.New("invalid user id"))
		return
	}
	recorded := h.gamification.MarkDayComplete(c.Request.Context(), userID, challengeID, req.Day)
	status, days := h.gamification.ChallengeStatus(c.Request.Context(), userID, challengeID)
	RespondOK(c, gin.H{"recorded": recorded, "status": status, "completed_days": days})
}

// GET /api/challenges/:id/progress?user_id=...
func (h *GamificationHandler) GetProgress(c *gin.Context) {
	challengeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_challenge_id", errors.New("invalid challenge id"))
		return
	}
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", errors.New("invalid user id"))
		return
	}
	status, days := h.gamification.ChallengeStatus(c.Request.Context(), userID, challengeID)
	RespondOK(c, gin.H{"status": status, "completed_days": days})
}

type castVoteRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Option string `json:"option" binding:"required"`
}

// POST /api/votes/:id/cast
func (h *GamificationHandler) CastVote(c *gin.Context) {
	voteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_vote_id", errors.New("invalid vote id"))
		return
	}
	var req castVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", errors.New("invalid user id"))
		return
	}
	ok := h.gamification.CastVote(c.Request.Context(), voteID, userID, req.Option)
	RespondOK(c, gin.H{"cast": ok})
}

type joinInviteRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// POST /api/invites/:code/join
func (h *GamificationHandler) JoinViaInvite(c *gin.Context) {
	code := c.Param("code")
	var req joinInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", errors.New("invalid user id"))
		return
	}
	pod, joined := h.gamification.JoinViaInvite(c.Request.Context(), userID, code)
	if pod == nil {
		RespondError(c, http.StatusNotFound, "invite_not_found", errors.New("invite code did not resolve"))
		return
	}
	RespondOK(c, gin.H{"joined": joined, "pod": pod})
}

type awardRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// POST /api/pods/:id/checkin-xp
func (h *GamificationHandler) AwardCheckInXP(c *gin.Context) {
	podID, userID, ok := h.parsePodAward(c)
	if !ok {
		return
	}
	awarded := h.gamification.AwardCheckInXP(c.Request.Context(), podID, userID)
	RespondOK(c, gin.H{"awarded": awarded})
}

// POST /api/pods/:id/support
func (h *GamificationHandler) SendSupport(c *gin.Context) {
	podID, userID, ok := h.parsePodAward(c)
	if !ok {
		return
	}
	awarded := h.gamification.SendSupport(c.Request.Context(), podID, userID)
	RespondOK(c, gin.H{"awarded": awarded})
}

func (h *GamificationHandler) parsePodAward(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	podID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_pod_id", errors.New("invalid pod id"))
		return uuid.Nil, uuid.Nil, false
	}
	var req awardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return uuid.Nil, uuid.Nil, false
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", errors.New("invalid user id"))
		return uuid.Nil, uuid.Nil, false
	}
	return podID, userID, true
}

// GET /api/pods/:id/xp
func (h *GamificationHandler) PodTotalXP(c *gin.Context) {
	podID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_pod_id", errors.New("invalid pod id"))
		return
	}
	total := h.gamification.PodTotalXP(c.Request.Context(), podID)
	RespondOK(c, gin.H{"total_xp": total})
}

// GET /api/pods/:id/leaderboard
func (h *GamificationHandler) Leaderboard(c *gin.Context) {
	podID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_pod_id", errors.New("invalid pod id"))
		return
	}
	rows := h.gamification.Leaderboard(c.Request.Context(), podID)
	RespondOK(c, gin.H{"leaderboard": rows})
}
