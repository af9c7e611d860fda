package wifi

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
)

const (
	// DefaultQRSize is the QR edge length in pixels when none is given.
	DefaultQRSize = 320

	// PreviewQRSize is the QR edge length used by the live card preview.
	PreviewQRSize = 240

	// CardBaseWidth is the card width in pixels at scale 1.
	CardBaseWidth = 256
)

var (
	// QRForeground is the module color of rendered codes (#1F1F1F).
	QRForeground = color.RGBA{R: 0x1F, G: 0x1F, B: 0x1F, A: 0xFF}

	// QRBackground is the light module color: fully transparent, so the card
	// background shows through.
	QRBackground = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x00}
)

// RenderOptions control how a payload is rasterized.
type RenderOptions struct {
	// Size is the edge length of the square image in pixels.
	Size int

	// Foreground and Background are the dark and light module colors.
	Foreground color.Color
	Background color.Color

	// QuietZone keeps the standard blank border around the symbol.
	QuietZone bool
}

// QRRenderer turns a text payload into a PNG-encoded QR code.
type QRRenderer interface {
	Render(ctx context.Context, payload string, opts RenderOptions) ([]byte, error)
}

// QRImage is a rendered WiFi QR code.
type QRImage struct {
	// Size is the edge length of the encoded PNG. It can exceed the
	// requested size when the symbol has more modules than requested pixels.
	Size int
	PNG  []byte
}

// DataURI returns the image as an embeddable data: URI.
func (q *QRImage) DataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(q.PNG)
}

// Image decodes the PNG bytes.
func (q *QRImage) Image() (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(q.PNG))
	if err != nil {
		return nil, fmt.Errorf("decoding qr png: %w", err)
	}
	return img, nil
}

// GenerateQRImage builds the payload for the network and renders it as a
// square QR image of the given size, dark modules on a transparent
// background with no quiet zone. A non-positive size means DefaultQRSize.
// Renderer failures (for example a payload too long for any QR version) are
// returned wrapped. The returned Size is read from the PNG header.
func GenerateQRImage(ctx context.Context, r QRRenderer, ssid, password string, size int) (*QRImage, error) {
	payload, err := BuildPayload(ssid, password)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = DefaultQRSize
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := r.Render(ctx, payload, RenderOptions{
		Size:       size,
		Foreground: QRForeground,
		Background: QRBackground,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering qr image: %w", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("reading rendered qr png: %w", err)
	}
	return &QRImage{Size: cfg.Width, PNG: data}, nil
}

// Dimensions is a card size in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CardDimensions returns the 3:4 card size for an export scale: width is
// CardBaseWidth*scale and height is width*4/3 rounded to the nearest pixel.
func CardDimensions(scale int) Dimensions {
	width := CardBaseWidth * scale
	return Dimensions{
		Width:  width,
		Height: int(math.Round(float64(width) * 4 / 3)),
	}
}
