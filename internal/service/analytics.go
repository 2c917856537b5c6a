package service

import (
	"bytes"
	"context"
	"encoding/json"
	"log"

	"gorm.io/gorm"

	"github.com/lumina-ai/backend/internal/models"
)

// FeatureCount is a single feature's usage count.
type FeatureCount struct {
	FeatureType models.FeatureType `json:"feature_type"`
	Count       int64              `json:"count"`
}

// FeatureUsage is an ordered list of feature counts, descending by count
// with ties broken by feature name. It marshals as a JSON object so the
// wire shape stays a mapping while the key order stays deterministic.
type FeatureUsage []FeatureCount

// MarshalJSON emits the counts as an object in list order.
func (u FeatureUsage) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fc := range u {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(fc.FeatureType))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		count, err := json.Marshal(fc.Count)
		if err != nil {
			return nil, err
		}
		buf.Write(count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Count returns the recorded count for a feature, zero when absent.
func (u FeatureUsage) Count(f models.FeatureType) int64 {
	for _, fc := range u {
		if fc.FeatureType == f {
			return fc.Count
		}
	}
	return 0
}

// UsageSummary aggregates usage over the interaction log. Session totals
// are always global regardless of the feature-usage filter.
type UsageSummary struct {
	FeatureUsage      FeatureUsage `json:"feature_usage"`
	TotalSessions     int64        `json:"total_sessions"`
	TotalInteractions int64        `json:"total_interactions"`
}

// AnalyticsService computes usage summaries live from the interaction
// log. No derived counters exist, so nothing can drift out of sync.
type AnalyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// UsageSummary returns per-feature counts for the session, or global
// counts when sessionID is empty. Failures degrade to an empty summary.
func (s *AnalyticsService) UsageSummary(ctx context.Context, sessionID string) UsageSummary {
	summary := UsageSummary{FeatureUsage: FeatureUsage{}}

	query := s.db.WithContext(ctx).
		Model(&models.Interaction{}).
		Select("feature_type, COUNT(*) as count").
		Group("feature_type").
		Order("count DESC, feature_type ASC")
	if sessionID != "" {
		query = query.Where("session_id = ?", sessionID)
	}

	var counts []FeatureCount
	if err := query.Scan(&counts).Error; err != nil {
		log.Printf("Error getting analytics: %v", err)
		return summary
	}
	summary.FeatureUsage = FeatureUsage(counts)

	if err := s.db.WithContext(ctx).Model(&models.Session{}).
		Count(&summary.TotalSessions).Error; err != nil {
		log.Printf("Error counting sessions: %v", err)
	}
	if err := s.db.WithContext(ctx).Model(&models.Interaction{}).
		Count(&summary.TotalInteractions).Error; err != nil {
		log.Printf("Error counting interactions: %v", err)
	}

	return summary
}
