package models

import "time"

// Session is one anonymous client session identified by the cookie
// token. Rows are created lazily on the first tracked interaction and
// never expire.
type Session struct {
	ID         uint      `gorm:"primarykey" json:"-"`
	SessionID  string    `gorm:"uniqueIndex;not null" json:"session_id"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
}

// TableName specifies the table name for the Session model
func (Session) TableName() string {
	return "user_sessions"
}
