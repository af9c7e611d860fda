package wifi

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

// --- Mock Renderer ---

// mockRenderer implements QRRenderer for testing.
type mockRenderer struct {
	renderFn func(ctx context.Context, payload string, opts RenderOptions) ([]byte, error)

	calls       int
	lastPayload string
	lastOpts    RenderOptions
}

func (m *mockRenderer) Render(ctx context.Context, payload string, opts RenderOptions) ([]byte, error) {
	m.calls++
	m.lastPayload = payload
	m.lastOpts = opts
	if m.renderFn != nil {
		return m.renderFn(ctx, payload, opts)
	}
	return squarePNG(opts.Size), nil
}

// squarePNG encodes a blank side x side image.
func squarePNG(side int) []byte {
	var buf bytes.Buffer
	_ = png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, side, side)))
	return buf.Bytes()
}

func TestGenerateQRImage_PassesPayloadAndColors(t *testing.T) {
	r := &mockRenderer{}
	img, err := GenerateQRImage(context.Background(), r, "MyWifi", "pass;word", 240)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.lastPayload != `WIFI:T:WPA;S:MyWifi;P:pass\;word;;` {
		t.Errorf("unexpected payload %q", r.lastPayload)
	}
	if r.lastOpts.Size != 240 || img.Size != 240 {
		t.Errorf("expected size 240, got opts=%d img=%d", r.lastOpts.Size, img.Size)
	}
	if r.lastOpts.Foreground != QRForeground {
		t.Errorf("expected foreground %v, got %v", QRForeground, r.lastOpts.Foreground)
	}
	if _, _, _, a := r.lastOpts.Background.RGBA(); a != 0 {
		t.Errorf("expected transparent background, got alpha %d", a)
	}
	if r.lastOpts.QuietZone {
		t.Error("expected no quiet zone")
	}
}

func TestGenerateQRImage_DefaultSize(t *testing.T) {
	r := &mockRenderer{}
	img, err := GenerateQRImage(context.Background(), r, "net", "pw", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Size != DefaultQRSize {
		t.Errorf("expected default size %d, got %d", DefaultQRSize, img.Size)
	}
}

func TestGenerateQRImage_EmptySSIDSkipsRenderer(t *testing.T) {
	r := &mockRenderer{}
	_, err := GenerateQRImage(context.Background(), r, "  ", "pw", 100)
	if !errors.Is(err, ErrEmptySSID) {
		t.Fatalf("expected ErrEmptySSID, got %v", err)
	}
	if r.calls != 0 {
		t.Errorf("renderer should not be called, got %d calls", r.calls)
	}
}

func TestGenerateQRImage_RendererError(t *testing.T) {
	boom := errors.New("content too long")
	r := &mockRenderer{renderFn: func(context.Context, string, RenderOptions) ([]byte, error) {
		return nil, boom
	}}
	_, err := GenerateQRImage(context.Background(), r, "net", "pw", 100)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped renderer error, got %v", err)
	}
}

func TestGenerateQRImage_SizeFromRenderedImage(t *testing.T) {
	// Encoders upscale to one pixel per module when asked for less.
	r := &mockRenderer{renderFn: func(context.Context, string, RenderOptions) ([]byte, error) {
		return squarePNG(25), nil
	}}
	img, err := GenerateQRImage(context.Background(), r, "net", "pw", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.lastOpts.Size != 10 {
		t.Errorf("expected requested size 10, got %d", r.lastOpts.Size)
	}
	if img.Size != 25 {
		t.Errorf("expected size of rendered image 25, got %d", img.Size)
	}
}

func TestGenerateQRImage_RendererReturnsNonPNG(t *testing.T) {
	r := &mockRenderer{renderFn: func(context.Context, string, RenderOptions) ([]byte, error) {
		return []byte("not a png"), nil
	}}
	if _, err := GenerateQRImage(context.Background(), r, "net", "pw", 100); err == nil {
		t.Fatal("expected error for undecodable renderer output")
	}
}

func TestGenerateQRImage_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &mockRenderer{}
	if _, err := GenerateQRImage(ctx, r, "net", "pw", 100); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if r.calls != 0 {
		t.Errorf("renderer should not be called, got %d calls", r.calls)
	}
}

func TestQRImage_DataURIAndImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.Set(1, 1, color.Black)
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("encoding: %v", err)
	}
	q := &QRImage{Size: 4, PNG: buf.Bytes()}

	uri := q.DataURI()
	encoded, ok := strings.CutPrefix(uri, "data:image/png;base64,")
	if !ok {
		t.Fatalf("unexpected data URI prefix: %s", uri[:30])
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || !bytes.Equal(raw, buf.Bytes()) {
		t.Errorf("data URI does not round-trip the PNG bytes")
	}

	img, err := q.Image()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("expected width 4, got %d", img.Bounds().Dx())
	}
}

func TestQRImage_ImageInvalid(t *testing.T) {
	q := &QRImage{PNG: []byte("not a png")}
	if _, err := q.Image(); err == nil {
		t.Error("expected decode error")
	}
}

func TestCardDimensions(t *testing.T) {
	tests := []struct {
		scale int
		want  Dimensions
	}{
		{1, Dimensions{Width: 256, Height: 341}},
		{2, Dimensions{Width: 512, Height: 683}},
		{3, Dimensions{Width: 768, Height: 1024}},
	}
	for _, tt := range tests {
		if got := CardDimensions(tt.scale); got != tt.want {
			t.Errorf("CardDimensions(%d) = %+v, want %+v", tt.scale, got, tt.want)
		}
	}
}
