// Package database opens connections to external stores. Redis is the only
// one: it backs the QR code cache.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/keyxmakerx/wificard/internal/config"
)

// NewRedis creates a new Redis client from the given config. It parses the
// URL, connects, and pings to verify connectivity before returning.
// Returns (nil, nil) when no URL is configured.
func NewRedis(cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Verify the connection is alive before returning.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return client, nil
}
