package qr

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/makiuchi-d/gozxing"
	zxqr "github.com/makiuchi-d/gozxing/qrcode"

	"github.com/keyxmakerx/wificard/internal/wifi"
)

// decode scans a QR code back into its text.
func decode(t *testing.T, data []byte) string {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding png: %v", err)
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		t.Fatalf("creating bitmap: %v", err)
	}
	result, err := zxqr.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		t.Fatalf("scanning qr code: %v", err)
	}
	return result.GetText()
}

func TestRender_ScansBackToPayload(t *testing.T) {
	payload, err := wifi.BuildPayload(`Cafe;Net`, `p"a:s,s\word`)
	if err != nil {
		t.Fatalf("building payload: %v", err)
	}

	data, err := NewRenderer().Render(context.Background(), payload, wifi.RenderOptions{
		Size:       400,
		Foreground: color.Black,
		Background: color.White,
		QuietZone:  true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := decode(t, data)
	if got != payload {
		t.Fatalf("scanned %q, want %q", got, payload)
	}
	creds, err := wifi.ParsePayload(got)
	if err != nil {
		t.Fatalf("parsing scanned payload: %v", err)
	}
	if creds.SSID != "Cafe;Net" || creds.Password != `p"a:s,s\word` {
		t.Errorf("unexpected credentials: %+v", creds)
	}
}

func TestRender_SizeAndTransparency(t *testing.T) {
	data, err := NewRenderer().Render(context.Background(), "WIFI:T:WPA;S:x;P:y;;", wifi.RenderOptions{
		Size:       240,
		Foreground: wifi.QRForeground,
		Background: wifi.QRBackground,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 240 || b.Dy() != 240 {
		t.Errorf("expected 240x240, got %dx%d", b.Dx(), b.Dy())
	}

	// Without a quiet zone the finder pattern starts at the corner, so the
	// top-left pixel is a dark module and some pixel must be transparent.
	if _, _, _, a := img.At(0, 0).RGBA(); a == 0 {
		t.Error("expected dark module at the top-left corner")
	}
	if !hasTransparentPixel(img) {
		t.Error("expected transparent light modules")
	}
}

func hasTransparentPixel(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a == 0 {
				return true
			}
		}
	}
	return false
}

func TestRender_PayloadTooLong(t *testing.T) {
	_, err := NewRenderer().Render(context.Background(), strings.Repeat("x", 4000), wifi.RenderOptions{Size: 200})
	if err == nil {
		t.Fatal("expected error for oversized payload")
	}
}

func TestRender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRenderer().Render(ctx, "WIFI:T:WPA;S:x;P:y;;", wifi.RenderOptions{Size: 200})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRender_ThroughGenerateQRImage(t *testing.T) {
	img, err := wifi.GenerateQRImage(context.Background(), NewRenderer(), "MyCafe_WiFi", "password123", wifi.PreviewQRSize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, err := img.Image()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.Bounds().Dx() != wifi.PreviewQRSize {
		t.Errorf("expected width %d, got %d", wifi.PreviewQRSize, decoded.Bounds().Dx())
	}
}

func TestRender_TinySizeReportsActualWidth(t *testing.T) {
	img, err := wifi.GenerateQRImage(context.Background(), NewRenderer(), "x", "y", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, err := img.Image()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Size != decoded.Bounds().Dx() {
		t.Errorf("Size %d does not match image width %d", img.Size, decoded.Bounds().Dx())
	}
	if img.Size <= 10 {
		t.Errorf("expected the encoder to upscale past 10px, got %d", img.Size)
	}
}
