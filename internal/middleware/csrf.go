package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	// csrfCookieName holds the token between page load and form post.
	csrfCookieName = "wificard_csrf"

	// csrfHeaderName and csrfFormField are where a submitted token is
	// looked for, in that order.
	csrfHeaderName = "X-CSRF-Token"
	csrfFormField  = "csrf_token"

	// csrfContextKey is the echo.Context key GetCSRFToken reads.
	csrfContextKey = "csrf_token"

	// csrfTokenBytes of randomness, hex encoded into the cookie.
	csrfTokenBytes = 32
)

// CSRF guards the designer's form posts (preview and download) with a
// double-submit cookie. Any request without the cookie is issued one. A
// POST/PUT/PATCH/DELETE must echo the cookie value back in the X-CSRF-Token
// header or in the csrf_token form field. The designer form carries the
// field, which htmx includes in its preview posts. Mismatches get a 403.
//
// Paths under /api/ are skipped: the JSON API reads no cookies, so there is
// no ambient credential to forge.
func CSRF() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if strings.HasPrefix(req.URL.Path, "/api/") {
				return next(c)
			}

			token := ""
			if cookie, err := req.Cookie(csrfCookieName); err == nil {
				token = cookie.Value
			}
			if token == "" {
				fresh, err := generateCSRFToken()
				if err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate CSRF token")
				}
				token = fresh
				c.SetCookie(&http.Cookie{
					Name:  csrfCookieName,
					Value: token,
					Path:  "/",
					// Scripts sending the header read it from here.
					HttpOnly: false,
					Secure:   req.TLS != nil || req.Header.Get("X-Forwarded-Proto") == "https",
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(csrfContextKey, token)

			if isSafeMethod(req.Method) {
				return next(c)
			}

			submitted := req.Header.Get(csrfHeaderName)
			if submitted == "" {
				submitted = req.FormValue(csrfFormField)
			}
			if !tokensMatch(submitted, token) {
				return echo.NewHTTPError(http.StatusForbidden, "invalid or missing CSRF token")
			}
			return next(c)
		}
	}
}

// tokensMatch reports whether a non-empty submitted token equals the cookie
// token. The comparison takes the same time wherever the first difference is.
func tokensMatch(submitted, cookie string) bool {
	if submitted == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(cookie)) == 1
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func generateCSRFToken() (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GetCSRFToken returns the token CSRF stored for this request, or "" when
// the middleware did not run (API paths).
func GetCSRFToken(c echo.Context) string {
	token, _ := c.Get(csrfContextKey).(string)
	return token
}
