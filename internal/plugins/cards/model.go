// Package cards is the WiFi card designer: the form, its live preview, the
// downloadable card image, and the small JSON API around the contrast and
// payload helpers.
package cards

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/keyxmakerx/wificard/internal/apperror"
	"github.com/keyxmakerx/wificard/internal/contrast"
	"github.com/keyxmakerx/wificard/internal/wifi"
)

// Format is the image format of a downloaded card.
type Format string

const (
	FormatPNG Format = "png"
	FormatJPG Format = "jpg"
)

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatJPG {
		return "image/jpeg"
	}
	return "image/png"
}

// Extension returns the file extension without a leading dot.
func (f Format) Extension() string {
	return string(f)
}

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	return f == FormatPNG || f == FormatJPG
}

// Presets are the background colors offered as one-click swatches.
var Presets = []string{"#F4F1EB", "#F6FBFF", "#E8F5E9", "#FFF5F5", "#1F1F1F"}

// Placeholders shown on the card while a field is empty.
const (
	placeholderBrand = "Brand name"
	placeholderSSID  = "MyCafe_WiFi"
)

// CardForm is the designer input.
type CardForm struct {
	BrandName       string `form:"brand_name" json:"brand_name"`
	SSID            string `form:"ssid" json:"ssid"`
	Password        string `form:"password" json:"password"`
	BackgroundColor string `form:"background_color" json:"background_color"`
	Format          Format `form:"format" json:"format"`
	Scale           int    `form:"scale" json:"scale"`
}

// DefaultForm returns the values the designer starts with.
func DefaultForm() CardForm {
	return CardForm{
		BrandName:       placeholderBrand,
		SSID:            placeholderSSID,
		Password:        "password123",
		BackgroundColor: contrast.DefaultBackground,
		Format:          FormatPNG,
		Scale:           2,
	}
}

// DisplayBrand is the brand line as printed on the card.
func (f CardForm) DisplayBrand() string {
	if b := strings.TrimSpace(f.BrandName); b != "" {
		return strings.ToUpper(b)
	}
	return strings.ToUpper(placeholderBrand)
}

// DisplaySSID is the network line as printed on the card.
func (f CardForm) DisplaySSID() string {
	if f.SSID != "" {
		return strings.ToUpper(f.SSID)
	}
	return strings.ToUpper(placeholderSSID)
}

// FieldErrors maps a form field name to a user-facing message.
type FieldErrors map[string]string

// Err converts non-empty field errors into a 422 validation error.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return apperror.NewFieldValidation("Please fix the highlighted fields.", fe)
}

var (
	ssidPattern     = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	passwordPattern = regexp.MustCompile(`^[\x20-\x7E]+$`)
)

// Validate checks the form. maxScale is the largest accepted export scale.
func (f CardForm) Validate(maxScale int) FieldErrors {
	errs := FieldErrors{}

	brand := utf8.RuneCountInString(strings.TrimSpace(f.BrandName))
	switch {
	case brand < 2:
		errs["brand_name"] = "Brand name must be at least 2 characters."
	case brand > 24:
		errs["brand_name"] = "Brand name must be at most 24 characters."
	}

	switch n := utf8.RuneCountInString(f.SSID); {
	case n < 2:
		errs["ssid"] = "SSID must be at least 2 characters."
	case n > 32:
		errs["ssid"] = "SSID must be at most 32 characters."
	case !ssidPattern.MatchString(f.SSID):
		errs["ssid"] = "SSID may only use letters, digits, and _ - . without spaces."
	}

	switch n := utf8.RuneCountInString(f.Password); {
	case n < 8:
		errs["password"] = "Password must be at least 8 characters."
	case n > 32:
		errs["password"] = "Password must be at most 32 characters."
	case !passwordPattern.MatchString(f.Password) || strings.Contains(f.Password, " "):
		errs["password"] = "Password may only use ASCII characters without spaces."
	}

	if !contrast.IsValidHex(f.BackgroundColor) {
		errs["background_color"] = "Use the HEX format (#RRGGBB)."
	}

	if !f.Format.Valid() {
		errs["format"] = "Choose PNG or JPG."
	}

	if f.Scale < 1 || f.Scale > maxScale {
		errs["scale"] = "Choose a supported scale."
	}

	return errs
}

// Preview is the view model of the designer page and its live card.
type Preview struct {
	Form  CardForm
	State contrast.State

	// QRDataURI is the rendered code, empty when QRError is set.
	QRDataURI string
	QRError   string

	Errors   FieldErrors
	Presets  []string
	Scales   []int
	Download wifi.Dimensions
}

// Export is a rendered card ready to be sent as a download.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}
