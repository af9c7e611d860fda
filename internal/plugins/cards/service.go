package cards

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"log/slog"

	"golang.org/x/image/draw"

	"github.com/keyxmakerx/wificard/internal/apperror"
	"github.com/keyxmakerx/wificard/internal/contrast"
	"github.com/keyxmakerx/wificard/internal/sanitize"
	"github.com/keyxmakerx/wificard/internal/wifi"
)

// QR sizes accepted by CardService.QR.
const (
	MinQRSize = 64
	MaxQRSize = 1024
)

const jpegQuality = 92

// CardService handles the designer's business logic: evaluating the chosen
// background, rendering QR codes, and exporting finished cards.
type CardService interface {
	// Preview evaluates the form for the live preview. QR failures are
	// reported in Preview.QRError rather than as an error.
	Preview(ctx context.Context, form CardForm) (*Preview, error)

	// QR renders the network's QR code at size pixels, clamped to
	// [MinQRSize, MaxQRSize].
	QR(ctx context.Context, ssid, password string, size int) (*wifi.QRImage, error)

	// Export validates the form and renders the downloadable card.
	Export(ctx context.Context, form CardForm) (*Export, error)

	// Contrast returns the display state for a background and its contrast
	// ratio against the QR reference color.
	Contrast(background string) (contrast.State, float64)

	// Payload returns the escaped WiFi payload for the network.
	Payload(ssid, password string) (string, error)

	// MaxScale is the largest accepted export scale.
	MaxScale() int
}

// cardService implements CardService.
type cardService struct {
	renderer          wifi.QRRenderer
	composer          CardComposer
	defaultBackground string
	maxScale          int
}

// NewCardService creates a card service. QR renders go through cache; pass
// NewNoopQRCache() to disable caching.
func NewCardService(renderer wifi.QRRenderer, composer CardComposer, cache QRCache, defaultBackground string, maxScale int) CardService {
	if cache == nil {
		cache = NewNoopQRCache()
	}
	if maxScale < 1 {
		maxScale = 1
	}
	return &cardService{
		renderer:          &cachingRenderer{next: renderer, cache: cache},
		composer:          composer,
		defaultBackground: contrast.EnsureHex(defaultBackground, contrast.DefaultBackground),
		maxScale:          maxScale,
	}
}

func (s *cardService) MaxScale() int { return s.maxScale }

// Preview builds the view model for the designer. Validation errors are
// attached to the result so the page can show them inline.
func (s *cardService) Preview(ctx context.Context, form CardForm) (*Preview, error) {
	p := &Preview{
		Form:     form,
		State:    contrast.StateWithFallback(form.BackgroundColor, s.defaultBackground),
		Errors:   form.Validate(s.maxScale),
		Presets:  Presets,
		Scales:   s.scales(),
		Download: wifi.CardDimensions(clampScale(form.Scale, s.maxScale)),
	}

	img, err := wifi.GenerateQRImage(ctx, s.renderer, form.SSID, form.Password, wifi.PreviewQRSize)
	switch {
	case err == nil:
		p.QRDataURI = img.DataURI()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	case errors.Is(err, wifi.ErrEmptySSID):
		p.QRError = "Enter a network name to generate the QR code."
	default:
		slog.Warn("preview qr render failed", slog.Any("error", err))
		p.QRError = "The QR code could not be generated."
	}

	return p, nil
}

func (s *cardService) QR(ctx context.Context, ssid, password string, size int) (*wifi.QRImage, error) {
	size = min(max(size, MinQRSize), MaxQRSize)

	img, err := wifi.GenerateQRImage(ctx, s.renderer, ssid, password, size)
	if err != nil {
		return nil, s.mapQRError(err)
	}
	return img, nil
}

// Export renders the card at the form's scale and encodes it in the form's
// format.
func (s *cardService) Export(ctx context.Context, form CardForm) (*Export, error) {
	if err := form.Validate(s.maxScale).Err(); err != nil {
		return nil, err
	}

	state := contrast.StateWithFallback(form.BackgroundColor, s.defaultBackground)
	side := int(qrSide) * form.Scale

	qrImg, err := wifi.GenerateQRImage(ctx, s.renderer, form.SSID, form.Password, side)
	if err != nil {
		return nil, s.mapQRError(err)
	}
	decoded, err := qrImg.Image()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	card, err := s.composer.Compose(ctx, CardContent{
		Brand: sanitize.PlainText(form.DisplayBrand()),
		SSID:  form.DisplaySSID(),
		State: state,
		QR:    decoded,
		Scale: form.Scale,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, apperror.NewInternal(fmt.Errorf("composing card: %w", err))
	}

	bg, _ := contrast.ParseHex(state.Background)
	data, err := encodeCard(card, form.Format, bg.Color())
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	slog.Info("card exported",
		slog.String("format", string(form.Format)),
		slog.Int("scale", form.Scale),
		slog.Int("bytes", len(data)),
	)

	return &Export{
		Filename:    sanitize.Filename(form.BrandName, "wifi-card") + "." + form.Format.Extension(),
		ContentType: form.Format.ContentType(),
		Data:        data,
	}, nil
}

func (s *cardService) Contrast(background string) (contrast.State, float64) {
	state := contrast.StateWithFallback(background, s.defaultBackground)
	// state.Background is valid, so the ratio cannot fail.
	ratio, _ := contrast.ContrastRatio(state.Background, contrast.QRReference)
	return state, ratio
}

func (s *cardService) Payload(ssid, password string) (string, error) {
	payload, err := wifi.BuildPayload(ssid, password)
	if err != nil {
		return "", apperror.NewValidationCause("Enter a network name.", err)
	}
	return payload, nil
}

// mapQRError converts QR generation failures to client-facing errors.
func (s *cardService) mapQRError(err error) error {
	switch {
	case errors.Is(err, wifi.ErrEmptySSID):
		return apperror.NewValidationCause("Enter a network name.", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return apperror.NewInternal(err)
	}
}

func (s *cardService) scales() []int {
	out := make([]int, s.maxScale)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func clampScale(scale, maxScale int) int {
	return min(max(scale, 1), maxScale)
}

// encodeCard encodes the card. JPEG has no alpha channel, so the image is
// flattened onto bg first.
func encodeCard(card image.Image, format Format, bg color.Color) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatJPG:
		flat := image.NewRGBA(card.Bounds())
		draw.Draw(flat, flat.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
		draw.Draw(flat, flat.Bounds(), card, card.Bounds().Min, draw.Over)
		if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, fmt.Errorf("encoding jpeg: %w", err)
		}
	default:
		if err := png.Encode(&buf, card); err != nil {
			return nil, fmt.Errorf("encoding png: %w", err)
		}
	}
	return buf.Bytes(), nil
}
