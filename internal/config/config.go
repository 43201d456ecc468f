package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all runtime configuration, built once in main and passed to
// constructors. No package-level state.
type Config struct {
	Port     string
	DBPath   string
	LogLevel string

	// JWTSecret signs couple/vendor/admin API tokens.
	JWTSecret string
	// JWTTTL is how long an issued API token stays valid.
	JWTTTL time.Duration

	// StaffSessionTTL is the validity window for wedding-code+PIN sessions.
	StaffSessionTTL time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// It returns an error only for values that cannot be defaulted safely.
func Load() (Config, error) {
	cfg := Config{
		Port:            getEnv("SEATWELL_PORT", "8080"),
		DBPath:          getEnv("SEATWELL_DB_PATH", "seatwell.db"),
		LogLevel:        getEnv("SEATWELL_LOG_LEVEL", "info"),
		JWTSecret:       os.Getenv("SEATWELL_JWT_SECRET"),
		JWTTTL:          24 * time.Hour,
		StaffSessionTTL: 4 * time.Hour,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("SEATWELL_JWT_SECRET is required")
	}

	if v := os.Getenv("SEATWELL_STAFF_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse SEATWELL_STAFF_SESSION_TTL: %w", err)
		}
		cfg.StaffSessionTTL = d
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
