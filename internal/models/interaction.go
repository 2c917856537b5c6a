package models

import "time"

// Interaction is one append-only feature-usage event. Events are never
// updated or deleted; analytics and recommendations derive everything
// from this log.
type Interaction struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	SessionID   string      `gorm:"index;not null" json:"session_id"`
	FeatureType FeatureType `gorm:"not null" json:"feature_type"`
	Action      string      `gorm:"not null" json:"action"`
	Data        JSONPayload `gorm:"type:text" json:"data"`
	CreatedAt   time.Time   `json:"created_at"`
}

// TableName specifies the table name for the Interaction model
func (Interaction) TableName() string {
	return "user_interactions"
}
