package cards

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/keyxmakerx/wificard/internal/contrast"
	"github.com/keyxmakerx/wificard/internal/wifi"
)

// CardContent is everything printed on a card.
type CardContent struct {
	Brand string
	SSID  string
	State contrast.State

	// QR is drawn scaled into the code area. Nil leaves the area empty.
	QR image.Image

	Scale int
}

// CardComposer draws a card at CardDimensions(content.Scale).
type CardComposer interface {
	Compose(ctx context.Context, content CardContent) (image.Image, error)
}

// Card geometry at scale 1, in pixels.
const (
	cardPadding    = 16.0
	cardRadius     = 24.0
	qrSide         = 176.0
	qrRadius       = 12.0
	headerSize     = 10.0
	headerTracking = 0.4
	brandSize      = 16.0
	ssidSize       = 12.0
	signatureSize  = 10.0
	headerText     = "WIFI"
	signatureText  = "by ydmaad"
)

var (
	fontsOnce sync.Once
	fontsErr  error
	regular   *opentype.Font
	bold      *opentype.Font
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if regular, fontsErr = opentype.Parse(goregular.TTF); fontsErr != nil {
			return
		}
		bold, fontsErr = opentype.Parse(gobold.TTF)
	})
	return fontsErr
}

// ggComposer draws cards with gg using the Go fonts.
type ggComposer struct{}

// NewComposer creates the default CardComposer.
func NewComposer() CardComposer {
	return ggComposer{}
}

func (ggComposer) Compose(ctx context.Context, content CardContent) (image.Image, error) {
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("loading fonts: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := float64(content.Scale)
	if s < 1 {
		s = 1
	}
	dims := wifi.CardDimensions(int(s))
	w, h := float64(dims.Width), float64(dims.Height)

	bgRGB, err := contrast.ParseHex(content.State.Background)
	if err != nil {
		return nil, err
	}
	fgRGB, err := contrast.ParseHex(content.State.Text)
	if err != nil {
		return nil, err
	}
	bg, fg := bgRGB.Color(), fgRGB.Color()

	canvas := image.NewRGBA(image.Rect(0, 0, dims.Width, dims.Height))
	dc := gg.NewContextForRGBA(canvas)

	dc.SetColor(bg)
	dc.Clear()

	// Card outline.
	dc.SetColor(withAlpha(fg, 0.12))
	dc.SetLineWidth(s)
	dc.DrawRoundedRectangle(s/2, s/2, w-s, h-s, cardRadius*s)
	dc.Stroke()

	pad := cardPadding * s
	faces := newFaceSet()
	defer faces.close()

	// Header, letter-spaced and centered.
	headerFace, err := faces.get(bold, headerSize*s)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(headerFace)
	dc.SetColor(fg)
	headerY := pad + headerSize*s/2
	drawTracked(dc, headerText, w/2, headerY, headerTracking*headerSize*s)

	// Footer lines, measured from the bottom padding up.
	brandY := h - pad - 42*s
	ssidY := h - pad - 22*s
	maxText := w - 2*pad

	brandFace, err := faces.get(bold, brandSize*s)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(brandFace)
	dc.SetColor(fg)
	dc.DrawStringAnchored(truncate(dc, content.Brand, maxText), w/2, brandY, 0.5, 0.5)

	ssidFace, err := faces.get(regular, ssidSize*s)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(ssidFace)
	ssidAlpha := 0.6
	if content.State.QRSafe {
		ssidAlpha = 0.8
	}
	dc.SetColor(withAlpha(fg, ssidAlpha))
	dc.DrawStringAnchored(truncate(dc, content.SSID, maxText), w/2, ssidY, 0.5, 0.5)

	sigFace, err := faces.get(regular, signatureSize*s)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(sigFace)
	dc.SetColor(withAlpha(fg, 0.7))
	dc.DrawStringAnchored(signatureText, w-pad, h-pad, 1, 0)

	// QR centered between the header and the brand line.
	side := qrSide * s
	bandTop := pad + headerSize*s + 12*s
	bandBottom := brandY - brandSize*s
	qx := math.Round(w/2 - side/2)
	qy := math.Round((bandTop+bandBottom)/2 - side/2)

	if content.QR != nil {
		dst := image.Rect(int(qx), int(qy), int(qx+side), int(qy+side))
		draw.NearestNeighbor.Scale(canvas, dst, content.QR, content.QR.Bounds(), draw.Over, nil)
	}

	dc.SetColor(withAlpha(color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, 0.3))
	dc.SetLineWidth(s)
	dc.DrawRoundedRectangle(qx, qy, side, side, qrRadius*s)
	dc.Stroke()

	return canvas, nil
}

// withAlpha returns c with the given opacity.
func withAlpha(c color.RGBA, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(alpha * 255))}
}

// drawTracked draws text centered on (cx, cy) with extra space between
// letters.
func drawTracked(dc *gg.Context, text string, cx, cy, tracking float64) {
	runes := []rune(text)
	widths := make([]float64, len(runes))
	total := 0.0
	for i, r := range runes {
		widths[i], _ = dc.MeasureString(string(r))
		total += widths[i]
	}
	if len(runes) > 1 {
		total += tracking * float64(len(runes)-1)
	}

	x := cx - total/2
	for i, r := range runes {
		dc.DrawStringAnchored(string(r), x, cy, 0, 0.5)
		x += widths[i] + tracking
	}
}

// truncate shortens text with an ellipsis until it fits maxWidth.
func truncate(dc *gg.Context, text string, maxWidth float64) string {
	if w, _ := dc.MeasureString(text); w <= maxWidth {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if w, _ := dc.MeasureString(candidate); w <= maxWidth {
			return candidate
		}
	}
	return ""
}

// faceSet owns the font faces created for one card.
type faceSet struct {
	faces []font.Face
}

func newFaceSet() *faceSet { return &faceSet{} }

func (fs *faceSet) get(f *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating font face (size=%.1f): %w", size, err)
	}
	fs.faces = append(fs.faces, face)
	return face, nil
}

func (fs *faceSet) close() {
	for _, f := range fs.faces {
		f.Close()
	}
}
