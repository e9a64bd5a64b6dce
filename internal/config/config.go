package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Backend     BackendConfig
	Auth        AuthConfig
}

// BackendConfig points at the order backend REST API.
type BackendConfig struct {
	BaseURL string        // e.g. https://api.misouk.example; required
	Timeout time.Duration // per-request timeout, default 30s
}

// AuthConfig carries the staff-session and internal-route credentials.
type AuthConfig struct {
	JWTSecret      string // STAFF_JWT_SECRET: verifies staff session tokens
	ServiceKeyHash string // SERVICE_KEY_HASH: bcrypt hash guarding /internal routes
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", "30")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	timeoutSeconds := viper.GetInt("BACKEND_TIMEOUT_SECONDS")
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Backend: BackendConfig{
			BaseURL: strings.TrimSpace(getEnvOrViper("BACKEND_BASE_URL", "")),
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret:      strings.TrimSpace(getEnvOrViper("STAFF_JWT_SECRET", "")),
			ServiceKeyHash: strings.TrimSpace(getEnvOrViper("SERVICE_KEY_HASH", "")),
		},
	}

	// Validate required fields
	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("STAFF_JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
