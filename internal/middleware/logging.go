// Package middleware holds the Echo middleware used by the card designer
// server and the Render helper its handlers share. internal/app decides
// which pieces run globally and which wrap single routes.
package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogger emits one slog record per request once the handler chain
// returns. 5xx responses log at error, 4xx at warn, the rest at info.
// Request bodies are never logged, so passwords posted to the designer stay
// out of the log.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			req, res := c.Request(), c.Response()
			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Int("status", res.Status),
				slog.Duration("latency", time.Since(start)),
				slog.String("remote_ip", c.RealIP()),
			}
			if req.URL.RawQuery != "" {
				attrs = append(attrs, slog.String("query", req.URL.RawQuery))
			}

			slog.LogAttrs(req.Context(), levelForStatus(res.Status), "request", attrs...)
			return err
		}
	}
}

func levelForStatus(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	}
	return slog.LevelInfo
}
