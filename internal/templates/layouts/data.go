// data.go provides typed context helpers for passing layout data from
// handlers/middleware to view components. Only simple types are stored so
// the layouts package never imports plugin types.
//
// Data flow: Middleware → Echo Context → LayoutInjector → Go Context → view
package layouts

import "context"

// ctxKey is a private type for context keys to prevent collisions.
type ctxKey string

const (
	keyCSRFToken  ctxKey = "layout_csrf_token"
	keyActivePath ctxKey = "layout_active_path"
)

// --- Setters (called by the layout injector in app/routes.go) ---

// SetCSRFToken stores the CSRF token for forms.
func SetCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, keyCSRFToken, token)
}

// SetActivePath stores the current request path for nav highlighting.
func SetActivePath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, keyActivePath, path)
}

// --- Getters (called by view components) ---

// GetCSRFToken returns the CSRF token, or "".
func GetCSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(keyCSRFToken).(string)
	return token
}

// GetActivePath returns the current request path, or "".
func GetActivePath(ctx context.Context) string {
	path, _ := ctx.Value(keyActivePath).(string)
	return path
}
