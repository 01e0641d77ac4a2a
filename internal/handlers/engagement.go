package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BTheCoderr/momentum-ai-sub002/internal/services"
)

type EngagementHandler struct {
	engagement services.EngagementService
}

func NewEngagementHandler(engagement services.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagement: engagement}
}

// POST /api/engagement/score
func (h *EngagementHandler) Score(c *gin.Context) {
	var snapshot services.EngagementSnapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_snapshot", err)
		return
	}
	score := h.engagement.Score(snapshot)
	RespondOK(c, gin.H{"score": score})
}

// GET /api/engagement/recent
func (h *EngagementHandler) Recent(c *gin.Context) {
	RespondOK(c, gin.H{"recent": h.engagement.Recent()})
}
