package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BTheCoderr/momentum-ai-sub002/internal/services"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/types"
)

type CoachHandler struct {
	personality services.PersonalityService
}

func NewCoachHandler(personality services.PersonalityService) *CoachHandler {
	return &CoachHandler{personality: personality}
}

type coachRespondRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// POST /api/coach/respond
func (h *CoachHandler) Respond(c *gin.Context) {
	var req coachRespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", errors.New("invalid user id"))
		return
	}
	personality := h.personality.GetPersonality(c.Request.Context(), userID)
	reply := h.personality.Respond(personality.Style, req.Message)
	RespondOK(c, gin.H{"reply": reply, "style": personality.Style})
}

type coachPreviewRequest struct {
	Style  string `json:"style" binding:"required"`
	Prompt string `json:"prompt" binding:"required"`
}

// POST /api/coach/preview
func (h *CoachHandler) Preview(c *gin.Context) {
	var req coachPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	style, err := types.ParseCoachStyle(req.Style)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_style", err)
		return
	}
	reply := h.personality.Preview(c.Request.Context(), style, req.Prompt)
	RespondOK(c, gin.H{"reply": reply, "style": style})
}

// GET /api/users/:id/personality
func (h *CoachHandler) GetPersonality(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", errors.New("invalid user id"))
		return
	}
	personality := h.personality.GetPersonality(c.Request.Context(), userID)
	RespondOK(c, gin.H{"personality": personality})
}

type setPersonalityRequest struct {
	Style          string `json:"style" binding:"required"`
	Formality      *int   `json:"formality"`
	Directness     *int   `json:"directness"`
	Enthusiasm     *int   `json:"enthusiasm"`
	Supportiveness *int   `json:"supportiveness"`
}

// PUT /api/users/:id/personality
func (h *CoachHandler) SetPersonality(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", errors.New("invalid user id"))
		return
	}
	var req setPersonalityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	style, err := types.ParseCoachStyle(req.Style)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_style", err)
		return
	}
	tone := types.DefaultToneParams()
	if req.Formality != nil {
		tone.Formality = *req.Formality
	}
	if req.Directness != nil {
		tone.Directness = *req.Directness
	}
	if req.Enthusiasm != nil {
		tone.Enthusiasm = *req.Enthusiasm
	}
	if req.Supportiveness != nil {
		tone.Supportiveness = *req.Supportiveness
	}
	ok := h.personality.SetPersonality(c.Request.Context(), userID, types.CoachPersonality{Style: style, Tone: tone})
	RespondOK(c, gin.H{"saved": ok})
}
