// Package qr renders text payloads as PNG QR codes. Renderer satisfies
// wifi.QRRenderer and is the production implementation injected into the
// card service.
package qr

import (
	"context"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/keyxmakerx/wificard/internal/wifi"
)

// Renderer encodes payloads with a fixed error-correction level.
type Renderer struct {
	level qrcode.RecoveryLevel
}

// NewRenderer creates a renderer using medium (15%) error correction.
func NewRenderer() *Renderer {
	return &Renderer{level: qrcode.Medium}
}

// Render encodes payload and returns the PNG bytes. Encoding fails when the
// payload does not fit in the largest QR version at this recovery level.
func (r *Renderer) Render(ctx context.Context, payload string, opts wifi.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q, err := qrcode.New(payload, r.level)
	if err != nil {
		return nil, fmt.Errorf("encoding qr code: %w", err)
	}

	q.DisableBorder = !opts.QuietZone
	if opts.Foreground != nil {
		q.ForegroundColor = opts.Foreground
	}
	if opts.Background != nil {
		q.BackgroundColor = opts.Background
	}

	size := opts.Size
	if size <= 0 {
		size = wifi.DefaultQRSize
	}

	data, err := q.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("writing qr png: %w", err)
	}
	return data, nil
}
