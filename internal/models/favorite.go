package models

import "time"

// Favorite is a user-curated item saved by a session. Deletion requires
// both the row id and the owning session id, so sessions cannot touch
// each other's favorites.
type Favorite struct {
	ID        uint        `gorm:"primarykey" json:"id"`
	SessionID string      `gorm:"index;not null" json:"-"`
	ItemType  string      `gorm:"not null" json:"item_type"`
	ItemData  JSONPayload `gorm:"type:text" json:"item_data"`
	CreatedAt time.Time   `json:"created_at"`
}

// TableName specifies the table name for the Favorite model
func (Favorite) TableName() string {
	return "favorites"
}
