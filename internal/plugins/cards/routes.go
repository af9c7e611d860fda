package cards

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up the designer pages and the JSON API. limit guards
// the endpoints that render images.
func RegisterRoutes(e *echo.Echo, h *Handler, limit echo.MiddlewareFunc) {
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/wifi")
	})

	// Designer.
	e.GET("/wifi", h.Designer)
	e.POST("/wifi/preview", h.Preview)
	e.POST("/wifi/download", h.Download, limit)

	// JSON API.
	api := e.Group("/api/v1")
	api.GET("/contrast", h.Contrast)
	api.POST("/payload", h.Payload)
	api.POST("/qr", h.QRCode, limit)
}
