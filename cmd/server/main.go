// Package main is the entry point for the wificard server. It loads
// configuration, connects the optional Redis QR cache, wires the card
// designer, and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/keyxmakerx/wificard/internal/app"
	"github.com/keyxmakerx/wificard/internal/config"
	"github.com/keyxmakerx/wificard/internal/database"
)

func main() {
	// --- Load Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	// Configure structured logging based on environment.
	setupLogging(cfg)

	slog.Info("starting wificard",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
	)

	// --- Connect to Redis (optional) ---
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Error("failed to connect to Redis", slog.Any("error", err))
		os.Exit(1)
	}
	if rdb != nil {
		defer rdb.Close()
		slog.Info("connected to Redis", slog.Duration("qr_cache_ttl", cfg.Redis.QRCacheTTL))
	} else {
		slog.Info("REDIS_URL not set, QR cache disabled")
	}

	// --- Create Application ---
	application := app.New(cfg, rdb)
	application.RegisterRoutes()

	// --- Graceful Shutdown ---
	// Listen for interrupt/term signals to drain connections cleanly.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		slog.Info("shutting down server...")

		// Give in-flight requests 10 seconds to complete.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := application.Echo.Shutdown(ctx); err != nil {
			slog.Error("server forced shutdown", slog.Any("error", err))
		}
	}()

	// --- Start Server ---
	if err := application.Start(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			slog.Info("server stopped")
			return
		}
		slog.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// setupLogging configures the global slog logger based on the environment.
// Development uses text format for readability. Production uses JSON for
// structured log aggregation. LOG_LEVEL overrides the default level.
func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	if cfg.IsDevelopment() {
		level = slog.LevelDebug
	}
	if cfg.LogLevel != "" {
		if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			slog.Warn("ignoring invalid LOG_LEVEL", slog.String("value", cfg.LogLevel))
		}
	}

	var handler slog.Handler
	if cfg.IsDevelopment() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	slog.SetDefault(slog.New(handler))
}
