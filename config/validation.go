package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is internally consistent
// for the selected database driver and server settings.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		errors = append(errors, fmt.Sprintf("SERVER_PORT must be numeric, got %q", cfg.ServerPort))
	}

	switch cfg.DBDriver {
	case "sqlite":
		if cfg.DBPath == "" {
			errors = append(errors, "DB_PATH is required when DB_DRIVER is sqlite")
		}
	case "postgres":
		if cfg.DBHost == "" {
			errors = append(errors, "DB_HOST is required when DB_DRIVER is postgres")
		}
		if cfg.DBUser == "" {
			errors = append(errors, "DB_USER is required when DB_DRIVER is postgres")
		}
		if cfg.DBName == "" {
			errors = append(errors, "DB_NAME is required when DB_DRIVER is postgres")
		}
	default:
		errors = append(errors, fmt.Sprintf("unknown DB_DRIVER %q (expected sqlite or postgres)", cfg.DBDriver))
	}

	if cfg.MaxUploadBytes <= 0 {
		errors = append(errors, "upload size limit must be positive")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
