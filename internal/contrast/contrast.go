// Package contrast evaluates card background colors. It computes sRGB
// relative luminance and WCAG contrast ratios, picks a readable text color
// for a background, and reports whether a dark QR code printed on top of the
// background stays scannable.
//
// Colors are "#RRGGBB" strings. The strict functions (ParseHex, Luminance,
// ContrastRatio and friends) return ErrInvalidColorFormat for anything else.
// EnsureHex and SafeContrastState never fail; they substitute a fallback so
// the UI always has something to render.
package contrast

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// DefaultBackground is the card background used when input is invalid.
	DefaultBackground = "#F4F1EB"

	// TextLight is the text color on dark backgrounds.
	TextLight = "#FFFFFF"

	// TextDark is the near-black text color on light backgrounds.
	TextDark = "#0F172A"

	// QRReference is the foreground a background is checked against when
	// deciding QR safety.
	QRReference = "#000000"

	// MinSafeRatio is the WCAG AA threshold for normal text, reused as the
	// QR scannability threshold.
	MinSafeRatio = 4.5

	// darkThreshold is the luminance below which a background counts as dark.
	darkThreshold = 0.5
)

// ErrInvalidColorFormat is returned when a color is not exactly "#RRGGBB".
var ErrInvalidColorFormat = errors.New("invalid color format, expected #RRGGBB")

var hexPattern = regexp.MustCompile(`^#[A-Fa-f0-9]{6}$`)

// RGB holds color channels scaled to [0,1] (byte value / 255).
type RGB struct {
	R, G, B float64
}

// Color converts the channels back to an opaque 8-bit color.
func (c RGB) Color() color.RGBA {
	return color.RGBA{
		R: uint8(math.Round(c.R * 255)),
		G: uint8(math.Round(c.G * 255)),
		B: uint8(math.Round(c.B * 255)),
		A: 0xFF,
	}
}

// State is the composed contrast evaluation consumed by the card UI.
type State struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	QRSafe     bool   `json:"qrSafe"`
}

// IsValidHex reports whether value is a "#RRGGBB" color.
func IsValidHex(value string) bool {
	return hexPattern.MatchString(value)
}

// ParseHex parses a "#RRGGBB" color into channels in [0,1].
func ParseHex(hex string) (RGB, error) {
	if !IsValidHex(hex) {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, hex)
	}
	c, err := colorful.Hex(strings.ToUpper(hex))
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, hex)
	}
	r, g, b := c.RGB255()
	return RGB{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}, nil
}

// Linearize applies the sRGB-to-linear transfer function to one channel.
func Linearize(channel float64) float64 {
	if channel <= 0.04045 {
		return channel / 12.92
	}
	return math.Pow((channel+0.055)/1.055, 2.4)
}

// Luminance returns the relative luminance of a color, in [0,1].
func Luminance(hex string) (float64, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return 0, err
	}
	return 0.2126*Linearize(c.R) + 0.7152*Linearize(c.G) + 0.0722*Linearize(c.B), nil
}

// ContrastRatio returns (lighter+0.05)/(darker+0.05) for two colors, rounded
// to two decimals. The result does not depend on argument order.
func ContrastRatio(a, b string) (float64, error) {
	lumA, err := Luminance(a)
	if err != nil {
		return 0, err
	}
	lumB, err := Luminance(b)
	if err != nil {
		return 0, err
	}
	lighter := math.Max(lumA, lumB)
	darker := math.Min(lumA, lumB)
	return math.Round((lighter+0.05)/(darker+0.05)*100) / 100, nil
}

// IsContrastSafe reports whether background and foreground reach MinSafeRatio.
func IsContrastSafe(background, foreground string) (bool, error) {
	ratio, err := ContrastRatio(background, foreground)
	if err != nil {
		return false, err
	}
	return ratio >= MinSafeRatio, nil
}

// IsDarkBackground reports whether the color's luminance is below 0.5.
func IsDarkBackground(hex string) (bool, error) {
	lum, err := Luminance(hex)
	if err != nil {
		return false, err
	}
	return lum < darkThreshold, nil
}

// ReadableTextColor returns TextLight for dark backgrounds, TextDark otherwise.
func ReadableTextColor(hex string) (string, error) {
	dark, err := IsDarkBackground(hex)
	if err != nil {
		return "", err
	}
	if dark {
		return TextLight, nil
	}
	return TextDark, nil
}

// EnsureHex returns value uppercased when it is a valid color, else fallback.
func EnsureHex(value, fallback string) string {
	if IsValidHex(value) {
		return strings.ToUpper(value)
	}
	return fallback
}

// SafeContrastState evaluates a background with DefaultBackground as the
// fallback for invalid input.
func SafeContrastState(background string) State {
	return StateWithFallback(background, DefaultBackground)
}

// StateWithFallback is SafeContrastState with a caller-chosen fallback. An
// invalid fallback is replaced by DefaultBackground so the result is always
// computable.
func StateWithFallback(background, fallback string) State {
	bg := EnsureHex(background, EnsureHex(fallback, DefaultBackground))

	// bg is valid here, so the strict calls cannot fail.
	text, _ := ReadableTextColor(bg)
	safe, _ := IsContrastSafe(bg, QRReference)

	return State{
		Background: bg,
		Text:       text,
		QRSafe:     safe,
	}
}
