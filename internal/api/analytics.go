package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumina-ai/backend/internal/middleware"
	"github.com/lumina-ai/backend/internal/service"
)

// AnalyticsHandler serves usage analytics and feature recommendations.
type AnalyticsHandler struct {
	analytics      *service.AnalyticsService
	recommendation *service.RecommendationService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analytics *service.AnalyticsService, recommendation *service.RecommendationService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, recommendation: recommendation}
}

// RegisterRoutes registers the analytics routes
func (h *AnalyticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/analytics", h.Analytics)
	router.GET("/recommendations", h.Recommendations)
}

// Analytics returns per-feature usage for the caller's session, plus the
// global breakdown when ?global=true.
func (h *AnalyticsHandler) Analytics(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	userSummary := h.analytics.UsageSummary(c.Request.Context(), sessionID)

	resp := gin.H{
		"success":        true,
		"user_analytics": userSummary,
	}
	if c.Query("global") == "true" {
		resp["global_analytics"] = h.analytics.UsageSummary(c.Request.Context(), "")
	}

	c.JSON(http.StatusOK, resp)
}

// Recommendations suggests next features from the session's recent usage.
func (h *AnalyticsHandler) Recommendations(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	rec := h.recommendation.Recommend(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"recommendations": rec,
	})
}
