package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/lumina-ai/backend/internal/models"
)

// Migrate applies the tracking schema. Called once at startup; schema
// setup is an explicit step, never an import-time side effect.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Session{},
		&models.Interaction{},
		&models.Favorite{},
	); err != nil {
		return fmt.Errorf("failed to migrate tracking schema: %w", err)
	}
	return nil
}
