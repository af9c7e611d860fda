// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/keyxmakerx/wificard/internal/contrast"
)

// Config holds all application configuration. Populated from environment
// variables at startup. Passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 8080).
	Port int

	// BaseURL is the public-facing URL used for CORS and links.
	BaseURL string

	// LogLevel overrides the log level ("debug", "info", "warn", "error").
	// Empty means debug in development and info otherwise.
	LogLevel string

	// Redis holds Redis connection settings for the QR cache.
	Redis RedisConfig

	// Card holds card rendering settings.
	Card CardConfig

	// RateLimit bounds image-producing endpoints per client IP.
	RateLimit RateLimitConfig
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	// Empty disables the QR cache.
	URL string

	// QRCacheTTL is how long a rendered QR code stays cached.
	QRCacheTTL time.Duration
}

// Enabled reports whether a Redis URL was configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != ""
}

// CardConfig holds card designer settings.
type CardConfig struct {
	// DefaultBackground is the fallback card color for invalid input.
	DefaultBackground string

	// MaxScale is the largest export scale accepted (1..MaxScale).
	MaxScale int
}

// RateLimitConfig holds per-IP limits for download and QR endpoints.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// Returns an error if a value is present but unusable.
func Load() (*Config, error) {
	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		BaseURL:  getEnv("BASE_URL", "http://localhost:8080"),
		LogLevel: getEnv("LOG_LEVEL", ""),

		Redis: RedisConfig{
			URL:        getEnv("REDIS_URL", ""),
			QRCacheTTL: getEnvDuration("QR_CACHE_TTL", 24*time.Hour),
		},

		Card: CardConfig{
			DefaultBackground: getEnv("CARD_DEFAULT_BACKGROUND", contrast.DefaultBackground),
			MaxScale:          getEnvInt("CARD_MAX_SCALE", 2),
		},

		RateLimit: RateLimitConfig{
			Requests: getEnvInt("RATE_LIMIT_REQUESTS", 60),
			Window:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
	}

	if !contrast.IsValidHex(cfg.Card.DefaultBackground) {
		return nil, fmt.Errorf("CARD_DEFAULT_BACKGROUND must be a #RRGGBB color, got %q", cfg.Card.DefaultBackground)
	}
	cfg.Card.DefaultBackground = strings.ToUpper(cfg.Card.DefaultBackground)

	if cfg.Card.MaxScale < 1 || cfg.Card.MaxScale > 4 {
		return nil, fmt.Errorf("CARD_MAX_SCALE must be between 1 and 4, got %d", cfg.Card.MaxScale)
	}
	if cfg.RateLimit.Requests < 1 {
		return nil, fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", cfg.RateLimit.Requests)
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g., "24h") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
