package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lumina-ai/backend/internal/middleware"
	"github.com/lumina-ai/backend/internal/models"
	"github.com/lumina-ai/backend/internal/service"
)

// TrackingHandler serves interaction tracking and history endpoints.
type TrackingHandler struct {
	tracking *service.TrackingService
}

// NewTrackingHandler creates a new TrackingHandler
func NewTrackingHandler(tracking *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{tracking: tracking}
}

// RegisterRoutes registers the tracking routes
func (h *TrackingHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/track", h.Track)
	router.GET("/history", h.History)
}

type trackRequest struct {
	FeatureType models.FeatureType `json:"feature_type" binding:"required"`
	Action      string             `json:"action" binding:"required"`
	Data        models.JSONPayload `json:"data"`
}

// Track records a single feature-usage event for the caller's session.
func (h *TrackingHandler) Track(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "feature_type and action are required"})
		return
	}

	sessionID := middleware.SessionID(c)
	ok := h.tracking.Record(c.Request.Context(), sessionID, req.FeatureType, req.Action, req.Data)

	c.JSON(http.StatusOK, gin.H{
		"success":    ok,
		"session_id": sessionID,
	})
}

// History returns the session's interaction history, newest first.
func (h *TrackingHandler) History(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	sessionID := middleware.SessionID(c)
	history, err := h.tracking.History(c.Request.Context(), sessionID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"history": history,
		"count":   len(history),
	})
}
