package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BTheCoderr/momentum-ai-sub002/internal/services"
)

type InsightHandler struct {
	insights    services.InsightService
	prioritizer services.PrioritizerService
}

func NewInsightHandler(insights services.InsightService, prioritizer services.PrioritizerService) *InsightHandler {
	return &InsightHandler{insights: insights, prioritizer: prioritizer}
}

// GET /api/users/:id/insights
func (h *InsightHandler) GetInsights(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", errors.New("invalid user id"))
		return
	}
	records := h.insights.GenerateInsightRecords(c.Request.Context(), userID)
	RespondOK(c, gin.H{"insights": records})
}

// GET /api/users/:id/suggestions
func (h *InsightHandler) GetSuggestions(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", errors.New("invalid user id"))
		return
	}
	suggestions := h.insights.GenerateSuggestions(c.Request.Context(), userID)
	RespondOK(c, gin.H{"suggestions": suggestions})
}

// GET /api/users/:id/coaching-message
func (h *InsightHandler) GetCoachingMessage(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", errors.New("invalid user id"))
		return
	}
	message := h.insights.GetCoachingMessage(c.Request.Context(), userID)
	RespondOK(c, gin.H{"message": message})
}

// POST /api/suggestions/rank
func (h *InsightHandler) RankSuggestions(c *gin.Context) {
	var snapshot services.CheckInSnapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_snapshot", err)
		return
	}
	ranked := h.prioritizer.RankSuggestions(snapshot)
	RespondOK(c, gin.H{"suggestions": ranked})
}
