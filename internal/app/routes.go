package app

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/wificard/internal/middleware"
	"github.com/keyxmakerx/wificard/internal/plugins/cards"
	"github.com/keyxmakerx/wificard/internal/qr"
	"github.com/keyxmakerx/wificard/internal/templates/layouts"
)

// RegisterRoutes sets up all application routes. It registers the health
// check directly and delegates to the cards plugin for everything else.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// Copy CSRF token and path into the Go context for the view templates.
	middleware.LayoutInjector = func(c echo.Context, ctx context.Context) context.Context {
		ctx = layouts.SetCSRFToken(ctx, middleware.GetCSRFToken(c))
		return layouts.SetActivePath(ctx, c.Request().URL.Path)
	}

	// Health check endpoint for container health monitoring.
	e.GET("/healthz", a.healthz)

	// --- Plugin Routes ---

	cache := cards.NewNoopQRCache()
	if a.Redis != nil {
		cache = cards.NewRedisQRCache(a.Redis, a.Config.Redis.QRCacheTTL)
	}
	cardService := cards.NewCardService(
		qr.NewRenderer(),
		cards.NewComposer(),
		cache,
		a.Config.Card.DefaultBackground,
		a.Config.Card.MaxScale,
	)
	limit := middleware.RateLimit(a.Config.RateLimit.Requests, a.Config.RateLimit.Window)
	cards.RegisterRoutes(e, cards.NewHandler(cardService), limit)
}

// healthz reports ok, or 503 when the configured Redis does not answer.
func (a *App) healthz(c echo.Context) error {
	if a.Redis != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "redis unavailable"})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
