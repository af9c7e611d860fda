package middleware

import (
	"github.com/labstack/echo/v4"
)

// htmxSource is the CDN origin the designer page loads htmx from.
const htmxSource = "https://unpkg.com"

// SecurityHeaders returns middleware that sets security-related HTTP headers
// on every response.
//
// TLS is normally terminated by a reverse proxy, so HSTS is only sent when
// the request arrived over HTTPS (directly or via X-Forwarded-Proto).
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			// QR previews are inlined as data: URIs, so img-src allows data:.
			// Inline styles carry the user's background color.
			h.Set("Content-Security-Policy",
				"default-src 'self'; "+
					"script-src 'self' "+htmxSource+"; "+
					"style-src 'self' 'unsafe-inline'; "+
					"img-src 'self' data: blob:; "+
					"connect-src 'self'; "+
					"frame-ancestors 'none'; "+
					"base-uri 'self'; "+
					"form-action 'self'",
			)

			req := c.Request()
			if req.TLS != nil || req.Header.Get("X-Forwarded-Proto") == "https" {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Permissions-Policy",
				"camera=(), microphone=(), geolocation=(), payment=()",
			)

			return next(c)
		}
	}
}
