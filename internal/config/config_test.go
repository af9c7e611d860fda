package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Unparseable values fall back to the defaults.
	t.Setenv("ENV", "test")
	t.Setenv("REDIS_URL", "")
	t.Setenv("PORT", "not-a-number")
	t.Setenv("QR_CACHE_TTL", "bogus")
	t.Setenv("CARD_MAX_SCALE", "x")
	t.Setenv("RATE_LIMIT_REQUESTS", "x")
	t.Setenv("RATE_LIMIT_WINDOW", "x")
	t.Setenv("CARD_DEFAULT_BACKGROUND", "#f4f1eb")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.Redis.Enabled() {
		t.Error("expected redis disabled for empty URL")
	}
	if cfg.Redis.QRCacheTTL != 24*time.Hour {
		t.Errorf("expected 24h TTL, got %s", cfg.Redis.QRCacheTTL)
	}
	if cfg.Card.DefaultBackground != "#F4F1EB" {
		t.Errorf("expected normalized background, got %s", cfg.Card.DefaultBackground)
	}
	if cfg.Card.MaxScale != 2 {
		t.Errorf("expected max scale 2, got %d", cfg.Card.MaxScale)
	}
	if cfg.RateLimit.Requests != 60 || cfg.RateLimit.Window != time.Minute {
		t.Errorf("unexpected rate limit %+v", cfg.RateLimit)
	}
}

func TestLoad_InvalidBackground(t *testing.T) {
	t.Setenv("CARD_DEFAULT_BACKGROUND", "beige")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid background")
	}
}

func TestLoad_InvalidScale(t *testing.T) {
	t.Setenv("CARD_DEFAULT_BACKGROUND", "#FFFFFF")
	t.Setenv("CARD_MAX_SCALE", "9")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for out-of-range scale")
	}
}

func TestIsDevelopment(t *testing.T) {
	tests := map[string]bool{"development": true, "dev": true, "DEV": true, "production": false, "": false}
	for env, want := range tests {
		c := &Config{Env: env}
		if got := c.IsDevelopment(); got != want {
			t.Errorf("IsDevelopment(%q) = %v, want %v", env, got, want)
		}
	}
}
