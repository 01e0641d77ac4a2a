package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BTheCoderr/momentum-ai-sub002/internal/logger"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/services"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	require.NoError(t, err)

	insightHandler := NewInsightHandler(nil, services.NewPrioritizerService(log))
	engagementHandler := NewEngagementHandler(services.NewEngagementService(log))

	router := gin.New()
	router.POST("/api/suggestions/rank", insightHandler.RankSuggestions)
	router.POST("/api/engagement/score", engagementHandler.Score)
	router.GET("/healthcheck", HealthCheck)
	return router
}

func TestRankSuggestionsEndpoint(t *testing.T) {
	router := testRouter(t)

	body, _ := json.Marshal(services.CheckInSnapshot{
		Mood: 3, Energy: 2, Stress: 9, Productivity: 2, TimeOfDay: "morning",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/suggestions/rank", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Suggestions []struct {
			Category string `json:"category"`
			Urgency  string `json:"urgency"`
		} `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Suggestions)
	assert.LessOrEqual(t, len(resp.Suggestions), 3)
	assert.Equal(t, "high", resp.Suggestions[0].Urgency)
}

func TestEngagementScoreEndpoint(t *testing.T) {
	router := testRouter(t)

	body, _ := json.Marshal(services.EngagementSnapshot{
		Sessions: 30, CheckIns: 25, Goals: 10, Streak: 25, AvgSessionDurationMs: 600000,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/engagement/score", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Score int `json:"score"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 250, resp.Score)
}

func TestHealthCheckEndpoint(t *testing.T) {
	router := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRankSuggestionsEndpointBadBody(t *testing.T) {
	router := testRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/suggestions/rank", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
