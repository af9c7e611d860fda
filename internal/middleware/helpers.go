package middleware

import (
	"context"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// LayoutInjector, when set, copies per-request values such as the CSRF token
// and the current path from the echo.Context into the context that views
// render with. internal/app assigns it at startup; keeping it a variable
// means this package never imports the layouts package.
var LayoutInjector func(echo.Context, context.Context) context.Context

// IsHTMX reports whether the request is an htmx swap that wants a fragment.
// Boosted navigations (HX-Boosted) want the full page and return false.
func IsHTMX(c echo.Context) bool {
	h := c.Request().Header
	return h.Get("HX-Request") == "true" && h.Get("HX-Boosted") != "true"
}

// Render writes component as an HTML response with statusCode.
func Render(c echo.Context, statusCode int, component templ.Component) error {
	ctx := c.Request().Context()
	if LayoutInjector != nil {
		ctx = LayoutInjector(c, ctx)
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(statusCode)
	return component.Render(ctx, c.Response().Writer)
}
