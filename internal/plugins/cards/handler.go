package cards

import (
	"errors"
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/wificard/internal/apperror"
	"github.com/keyxmakerx/wificard/internal/contrast"
	"github.com/keyxmakerx/wificard/internal/middleware"
)

// Handler handles HTTP requests for the card designer and its JSON API.
type Handler struct {
	service CardService
}

// NewHandler creates a new cards handler.
func NewHandler(service CardService) *Handler {
	return &Handler{service: service}
}

// Designer renders the designer with default values (GET /wifi).
func (h *Handler) Designer(c echo.Context) error {
	p, err := h.service.Preview(c.Request().Context(), DefaultForm())
	if err != nil {
		return err
	}
	return middleware.Render(c, http.StatusOK, DesignerPage(p))
}

// Preview re-renders the live card for the submitted form
// (POST /wifi/preview). HTMX requests get the fragment only.
func (h *Handler) Preview(c echo.Context) error {
	var form CardForm
	if err := c.Bind(&form); err != nil {
		return apperror.NewBadRequest("invalid form")
	}

	p, err := h.service.Preview(c.Request().Context(), form)
	if err != nil {
		return err
	}

	if middleware.IsHTMX(c) {
		return middleware.Render(c, http.StatusOK, PreviewFragment(p, c.FormValue("preset") != ""))
	}
	return middleware.Render(c, http.StatusOK, DesignerPage(p))
}

// Download validates the form and sends the card image as an attachment
// (POST /wifi/download). Invalid forms re-render the page with 422.
func (h *Handler) Download(c echo.Context) error {
	ctx := c.Request().Context()

	var form CardForm
	if err := c.Bind(&form); err != nil {
		return apperror.NewBadRequest("invalid form")
	}

	export, err := h.service.Export(ctx, form)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && len(appErr.Fields) > 0 {
			p, perr := h.service.Preview(ctx, form)
			if perr != nil {
				return perr
			}
			return middleware.Render(c, http.StatusUnprocessableEntity, DesignerPage(p))
		}
		return err
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": export.Filename})
	c.Response().Header().Set(echo.HeaderContentDisposition, disposition)
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.Blob(http.StatusOK, export.ContentType, export.Data)
}

// qrRequest is the JSON body for POST /api/v1/qr.
type qrRequest struct {
	SSID     string `json:"ssid"`
	Password string `json:"password"`
	Size     int    `json:"size"`
}

// QRCode returns the raw QR PNG for a network (POST /api/v1/qr).
func (h *Handler) QRCode(c echo.Context) error {
	var req qrRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	img, err := h.service.QR(c.Request().Context(), req.SSID, req.Password, req.Size)
	if err != nil {
		return err
	}

	c.Response().Header().Set("Cache-Control", "no-store")
	return c.Blob(http.StatusOK, "image/png", img.PNG)
}

// contrastResponse is the JSON body of GET /api/v1/contrast.
type contrastResponse struct {
	contrast.State

	// Valid reports whether the requested color was used as given.
	Valid bool `json:"valid"`

	// Ratio is the contrast of Background against the QR reference color.
	Ratio float64 `json:"ratio"`
}

// Contrast evaluates a background color (GET /api/v1/contrast?background=).
func (h *Handler) Contrast(c echo.Context) error {
	background := c.QueryParam("background")
	state, ratio := h.service.Contrast(background)

	return c.JSON(http.StatusOK, contrastResponse{
		State: state,
		Valid: contrast.IsValidHex(background),
		Ratio: ratio,
	})
}

// payloadRequest is the JSON body for POST /api/v1/payload.
type payloadRequest struct {
	SSID     string `json:"ssid"`
	Password string `json:"password"`
}

// Payload returns the escaped WiFi payload (POST /api/v1/payload).
func (h *Handler) Payload(c echo.Context) error {
	var req payloadRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	payload, err := h.service.Payload(req.SSID, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"payload": payload})
}
