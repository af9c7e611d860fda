// Package app is the application bootstrap and dependency injection root.
// It creates and holds the shared infrastructure (Redis client, Echo
// instance) and wires the card designer plugin into it.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/keyxmakerx/wificard/internal/apperror"
	"github.com/keyxmakerx/wificard/internal/config"
	"github.com/keyxmakerx/wificard/internal/middleware"
	"github.com/keyxmakerx/wificard/internal/templates/pages"
)

// App holds all shared dependencies and the Echo HTTP server instance.
// Created once at startup in main.go and used to register all routes.
type App struct {
	// Config holds the loaded application configuration.
	Config *config.Config

	// Redis backs the QR cache. Nil when REDIS_URL is not set.
	Redis *redis.Client

	// Echo is the HTTP server instance.
	Echo *echo.Echo
}

// New creates a new App instance with the given dependencies and configures
// the Echo server with global middleware and error handling.
func New(cfg *config.Config, rdb *redis.Client) *App {
	e := echo.New()

	// Start logs the listen address through slog.
	e.HideBanner = true
	e.HidePort = true

	// Configure trusted reverse proxy IPs so c.RealIP() returns the actual
	// client IP instead of the proxy's IP. The rate limiter keys on it.
	middleware.TrustedProxies(e, []string{
		"127.0.0.0/8",    // Localhost
		"10.0.0.0/8",     // Docker default bridge
		"172.16.0.0/12",  // Docker bridge (alternate range)
		"192.168.0.0/16", // Common LAN
		"fd00::/8",       // IPv6 private
	})

	app := &App{
		Config: cfg,
		Redis:  rdb,
		Echo:   e,
	}

	// Register global middleware in order of execution.
	app.setupMiddleware()

	// Register the custom error handler that maps AppErrors to HTTP responses.
	e.HTTPErrorHandler = app.errorHandler

	return app
}

// setupMiddleware registers global middleware on the Echo instance.
// Order matters: outermost (recovery) runs first, innermost (CSRF) runs last.
func (a *App) setupMiddleware() {
	// Outermost, so a panic anywhere below becomes a 500.
	a.Echo.Use(middleware.Recovery())

	a.Echo.Use(middleware.RequestLogger())

	// CSP allows data: images for the inline QR preview.
	a.Echo.Use(middleware.SecurityHeaders())

	// Browser clients on BaseURL may call the JSON API.
	a.Echo.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: []string{a.Config.BaseURL},
	}))

	// Form posts need the wificard_csrf token; /api/ is exempt.
	a.Echo.Use(middleware.CSRF())
}

// errorResponse is the JSON error body for API requests.
type errorResponse struct {
	Error   string            `json:"error"`
	Type    string            `json:"type,omitempty"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// errorHandler writes every error returned by a handler or middleware. Under
// /api/ the body is JSON; elsewhere it is the HTML error page. Status and
// message come from apperror.SafeCode and apperror.SafeMessage, so only
// AppError messages ever reach the client.
//
// HTMX requests get HX-Retarget/HX-Reswap so the error page takes over the
// body rather than the preview pane.
func (a *App) errorHandler(err error, c echo.Context) {
	// A handler that already streamed its response cannot be rewritten.
	if c.Response().Committed {
		return
	}

	err = normalizeError(err)
	code := apperror.SafeCode(err)
	message := apperror.SafeMessage(err)
	resp := errorResponse{}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		resp.Type = appErr.Type
		resp.Fields = appErr.Fields

		// Validation errors keep their domain cause too; only server-side
		// failures are worth an error log.
		if appErr.Internal != nil && code >= http.StatusInternalServerError {
			slog.Error("internal error",
				slog.String("type", appErr.Type),
				slog.String("message", appErr.Message),
				slog.Any("internal", appErr.Internal),
				slog.String("path", c.Request().URL.Path),
			)
		}
	} else {
		slog.Error("unhandled error",
			slog.Any("error", err),
			slog.String("path", c.Request().URL.Path),
		)
	}

	// API requests always get JSON.
	if isAPIRequest(c) {
		resp.Error = http.StatusText(code)
		resp.Message = message
		c.JSON(code, resp)
		return
	}

	if isHTMXRequest(c) {
		c.Response().Header().Set("HX-Retarget", "body")
		c.Response().Header().Set("HX-Reswap", "innerHTML")
	}

	middleware.Render(c, code, pages.ErrorPage(code, message))
}

// normalizeError converts Echo's router and binder errors into AppErrors.
// Anything else is returned unchanged.
func normalizeError(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	var echoErr *echo.HTTPError
	if !errors.As(err, &echoErr) {
		return err
	}

	message, ok := echoErr.Message.(string)
	if !ok || message == "" {
		message = defaultErrorMessage(echoErr.Code)
	}
	switch echoErr.Code {
	case http.StatusNotFound:
		return apperror.NewNotFound(message)
	case http.StatusBadRequest:
		return apperror.NewBadRequest(message)
	}
	return &apperror.AppError{
		Code:    echoErr.Code,
		Type:    "http_error",
		Message: message,
	}
}

// defaultErrorMessage returns a user-friendly message for common HTTP status codes
// when no specific message was provided by the error.
func defaultErrorMessage(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "The request was invalid or cannot be processed."
	case http.StatusForbidden:
		return "You don't have permission to access this resource."
	case http.StatusNotFound:
		return "The page you're looking for doesn't exist or has been moved."
	case http.StatusMethodNotAllowed:
		return "This action is not allowed."
	case http.StatusUnprocessableEntity:
		return "The submitted data could not be processed."
	case http.StatusTooManyRequests:
		return "You're making too many requests. Please slow down."
	case http.StatusInternalServerError:
		return "Something went wrong on our end. Please try again."
	case http.StatusServiceUnavailable:
		return "The service is temporarily unavailable. Please try again later."
	default:
		return "An unexpected error occurred."
	}
}

// isAPIRequest returns true if the request is targeting the API (JSON response expected).
func isAPIRequest(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/api/")
}

// isHTMXRequest returns true if the request was initiated by HTMX.
func isHTMXRequest(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// Start begins listening for HTTP requests on the configured port.
func (a *App) Start() error {
	addr := fmt.Sprintf(":%d", a.Config.Port)
	slog.Info("starting wificard server",
		slog.String("addr", addr),
		slog.String("env", a.Config.Env),
		slog.Bool("qr_cache", a.Redis != nil),
	)
	return a.Echo.Start(addr)
}
