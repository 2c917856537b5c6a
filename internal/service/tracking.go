package service

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lumina-ai/backend/internal/models"
)

// HistoryEntry is one row of a session's interaction history with the
// payload restored to its structural form.
type HistoryEntry struct {
	FeatureType models.FeatureType `json:"feature_type"`
	Action      string             `json:"action"`
	Data        models.JSONPayload `json:"data"`
	CreatedAt   time.Time          `json:"created_at"`
}

// TrackingService records feature usage events and serves session history.
type TrackingService struct {
	db *gorm.DB
}

// NewTrackingService creates a new TrackingService
func NewTrackingService(db *gorm.DB) *TrackingService {
	return &TrackingService{db: db}
}

// Record appends one interaction event for the session. The session row
// is created if absent and its last_active is bumped; all three writes
// share one transaction. Tracking is best-effort: any failure is logged
// and reported as false, never propagated.
func (s *TrackingService) Record(ctx context.Context, sessionID string, feature models.FeatureType, action string, data models.JSONPayload) bool {
	now := time.Now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session := models.Session{
			SessionID:  sessionID,
			CreatedAt:  now,
			LastActive: now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoNothing: true,
		}).Create(&session).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Session{}).
			Where("session_id = ?", sessionID).
			Update("last_active", now).Error; err != nil {
			return err
		}

		event := models.Interaction{
			SessionID:   sessionID,
			FeatureType: feature,
			Action:      action,
			Data:        data,
			CreatedAt:   now,
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		log.Printf("Error tracking interaction: %v", err)
		return false
	}
	return true
}

// History returns up to limit events for the session, newest first.
func (s *TrackingService) History(ctx context.Context, sessionID string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	var events []models.Interaction
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	history := make([]HistoryEntry, 0, len(events))
	for _, e := range events {
		history = append(history, HistoryEntry{
			FeatureType: e.FeatureType,
			Action:      e.Action,
			Data:        e.Data,
			CreatedAt:   e.CreatedAt,
		})
	}
	return history, nil
}
