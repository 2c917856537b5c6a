package service

import (
	"context"
	"log"

	"gorm.io/gorm"

	"github.com/lumina-ai/backend/internal/models"
)

// FavoriteService manages user-curated favorites scoped by session.
type FavoriteService struct {
	db *gorm.DB
}

// NewFavoriteService creates a new FavoriteService
func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// Add inserts a new favorite. Duplicates are allowed by design.
func (s *FavoriteService) Add(ctx context.Context, sessionID, itemType string, itemData models.JSONPayload) bool {
	fav := models.Favorite{
		SessionID: sessionID,
		ItemType:  itemType,
		ItemData:  itemData,
	}
	if err := s.db.WithContext(ctx).Create(&fav).Error; err != nil {
		log.Printf("Error adding favorite: %v", err)
		return false
	}
	return true
}

// List returns the session's favorites, newest first.
func (s *FavoriteService) List(ctx context.Context, sessionID string) []models.Favorite {
	var favorites []models.Favorite
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC, id DESC").
		Find(&favorites).Error
	if err != nil {
		log.Printf("Error listing favorites: %v", err)
		return []models.Favorite{}
	}
	return favorites
}

// Remove deletes at most one favorite matching both id and session.
// A non-matching pair is a no-op reported as success, so a session can
// never probe another session's favorites by id.
func (s *FavoriteService) Remove(ctx context.Context, sessionID string, favoriteID uint) bool {
	err := s.db.WithContext(ctx).
		Where("id = ? AND session_id = ?", favoriteID, sessionID).
		Delete(&models.Favorite{}).Error
	if err != nil {
		log.Printf("Error removing favorite: %v", err)
		return false
	}
	return true
}
