package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORSConfig holds configuration for the CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is the list of origins permitted to call the JSON API.
	// Use ["*"] to allow all.
	AllowedOrigins []string

	// AllowCredentials indicates whether the browser should include cookies
	// in cross-origin requests.
	AllowCredentials bool
}

// CORS returns middleware that handles Cross-Origin Resource Sharing headers
// for /api/v1 (payload, contrast, and QR endpoints used by print kiosks and
// other front ends). The designer pages are same-origin and pass straight
// through.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	allowAll := false
	originSet := make(map[string]bool)
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			allowAll = true
		}
		originSet[o] = true
	}

	// Wildcard origin with credentials would let any site make cookie-bearing
	// requests. Refuse to send credentials in that case.
	if allowAll && cfg.AllowCredentials {
		slog.Warn("CORS misconfiguration: AllowedOrigins=['*'] with AllowCredentials=true; credentials disabled")
		cfg.AllowCredentials = false
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			origin := req.Header.Get("Origin")

			// No Origin header means same-origin request.
			if origin == "" {
				return next(c)
			}

			if !allowAll && !originSet[origin] {
				// The browser blocks the response on the client side.
				return next(c)
			}

			res.Header().Set("Access-Control-Allow-Origin", origin)
			res.Header().Add("Vary", "Origin")

			if cfg.AllowCredentials {
				res.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if req.Method == http.MethodOptions {
				res.Header().Set("Access-Control-Allow-Methods",
					strings.Join([]string{
						http.MethodGet,
						http.MethodPost,
						http.MethodOptions,
					}, ", "))

				res.Header().Set("Access-Control-Allow-Headers",
					strings.Join([]string{
						"Content-Type",
						"X-Requested-With",
						"HX-Request",
						"HX-Current-URL",
						"HX-Target",
						"HX-Trigger",
					}, ", "))

				// Cache preflight response for 1 hour.
				res.Header().Set("Access-Control-Max-Age", "3600")

				return c.NoContent(http.StatusNoContent)
			}

			// Downloads set a file name the calling script may want to read.
			res.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

			return next(c)
		}
	}
}
