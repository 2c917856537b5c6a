package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration. Driver is "sqlite" (default, embedded) or
	// "postgres" for deployments that outgrow a single node.
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration (optional; enables rate limiting)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Upload handling
	UploadDir      string
	MaxUploadBytes int64
}

// LoadConfig creates a new Config instance with values from environment
// variables, overlaid with Docker secrets in production.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		DBPath:         getEnv("DB_PATH", "app_data.db"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         getEnv("DB_NAME", "lumina"),
		DBSSLMode:      getEnv("DB_SSL_MODE", "disable"),
		RedisHost:      os.Getenv("REDIS_HOST"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        0,
		RedisURL:       os.Getenv("REDIS_URL"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: 16 << 20,
	}

	if IsProduction() {
		loadProdSecrets(cfg)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadProdSecrets overlays Docker secrets onto the config where present
func loadProdSecrets(cfg *Config) {
	if v := readSecret("db_user"); v != "" {
		cfg.DBUser = v
	}
	if v := readSecret("db_password"); v != "" {
		cfg.DBPassword = v
	}
	if v := readSecret("redis_password"); v != "" {
		cfg.RedisPassword = v
	}
	if v := readSecret("redis_url"); v != "" {
		cfg.RedisURL = v
	}
}

// getEnv reads an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
