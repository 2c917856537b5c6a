package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lumina-ai/backend/internal/middleware"
	"github.com/lumina-ai/backend/internal/models"
	"github.com/lumina-ai/backend/internal/service"
)

// FavoritesHandler serves the favorites CRUD endpoints.
type FavoritesHandler struct {
	favorites *service.FavoriteService
	tracking  *service.TrackingService
}

// NewFavoritesHandler creates a new FavoritesHandler
func NewFavoritesHandler(favorites *service.FavoriteService, tracking *service.TrackingService) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites, tracking: tracking}
}

// RegisterRoutes registers the favorites routes. Delete is served both
// as a body-carrying DELETE on the collection and as a path parameter.
func (h *FavoritesHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/favorites", h.List)
	router.POST("/favorites", h.Add)
	router.DELETE("/favorites", h.RemoveByBody)
	router.DELETE("/favorites/:id", h.Remove)
}

type addFavoriteRequest struct {
	ItemType string             `json:"item_type" binding:"required"`
	ItemData models.JSONPayload `json:"item_data"`
}

type removeFavoriteRequest struct {
	FavoriteID uint `json:"favorite_id" binding:"required"`
}

// List returns the session's favorites, newest first.
func (h *FavoritesHandler) List(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	favorites := h.favorites.List(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"favorites": favorites,
		"count":     len(favorites),
	})
}

// Add saves a new favorite for the session.
func (h *FavoritesHandler) Add(c *gin.Context) {
	var req addFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_type is required"})
		return
	}

	sessionID := middleware.SessionID(c)
	ok := h.favorites.Add(c.Request.Context(), sessionID, req.ItemType, req.ItemData)

	c.JSON(http.StatusOK, gin.H{"success": ok})
}

// RemoveByBody deletes a favorite identified by a favorite_id JSON
// field, scoped to the caller's session.
func (h *FavoritesHandler) RemoveByBody(c *gin.Context) {
	var req removeFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "favorite_id is required"})
		return
	}

	sessionID := middleware.SessionID(c)
	ok := h.favorites.Remove(c.Request.Context(), sessionID, req.FavoriteID)

	c.JSON(http.StatusOK, gin.H{"success": ok})
}

// Remove deletes a favorite by id, scoped to the caller's session.
func (h *FavoritesHandler) Remove(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid favorite id"})
		return
	}

	sessionID := middleware.SessionID(c)
	ok := h.favorites.Remove(c.Request.Context(), sessionID, uint(id))

	c.JSON(http.StatusOK, gin.H{"success": ok})
}
