package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
)

// Recovery turns a panic in any later middleware or handler into a plain 500
// and an error record carrying the goroutine stack.
func Recovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				slog.Error("panic recovered",
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", c.Request().Method),
					slog.String("path", c.Request().URL.Path),
				)
				err = c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			}()
			return next(c)
		}
	}
}
