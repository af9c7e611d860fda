package contrast

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

const epsilon = 1e-9

func mustRatio(t *testing.T, a, b string) float64 {
	t.Helper()
	r, err := ContrastRatio(a, b)
	if err != nil {
		t.Fatalf("ContrastRatio(%q, %q): unexpected error: %v", a, b, err)
	}
	return r
}

func TestParseHex_Channels(t *testing.T) {
	c, err := ParseHex("#FF8000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.R != 1 {
		t.Errorf("expected R=1, got %v", c.R)
	}
	if math.Abs(c.G-128.0/255.0) > epsilon {
		t.Errorf("expected G=128/255, got %v", c.G)
	}
	if c.B != 0 {
		t.Errorf("expected B=0, got %v", c.B)
	}
}

func TestParseHex_CaseInsensitive(t *testing.T) {
	lower, err := ParseHex("#abcdef")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	upper, err := ParseHex("#ABCDEF")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lower != upper {
		t.Errorf("expected %+v == %+v", lower, upper)
	}
}

func TestParseHex_Invalid(t *testing.T) {
	for _, input := range []string{"", "#FFF", "FFFFFF", "#GGGGGG", "#FFFFFFF", " #FFFFFF", "#FFFFFF ", "not-a-color"} {
		_, err := ParseHex(input)
		if !errors.Is(err, ErrInvalidColorFormat) {
			t.Errorf("ParseHex(%q): expected ErrInvalidColorFormat, got %v", input, err)
		}
	}
}

func TestRGB_Color(t *testing.T) {
	c, err := ParseHex("#1F2E3D")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := color.RGBA{R: 0x1F, G: 0x2E, B: 0x3D, A: 0xFF}
	if got := c.Color(); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestLinearize(t *testing.T) {
	if got := Linearize(0.04045); math.Abs(got-0.04045/12.92) > epsilon {
		t.Errorf("linear segment: got %v", got)
	}
	if got := Linearize(0); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := Linearize(1); math.Abs(got-1) > epsilon {
		t.Errorf("expected 1, got %v", got)
	}
	want := math.Pow((0.5+0.055)/1.055, 2.4)
	if got := Linearize(0.5); math.Abs(got-want) > epsilon {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestLuminance_Extremes(t *testing.T) {
	white, err := Luminance("#FFFFFF")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(white-1) > epsilon {
		t.Errorf("expected white luminance 1, got %v", white)
	}
	black, err := Luminance("#000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if black != 0 {
		t.Errorf("expected black luminance 0, got %v", black)
	}
}

func TestLuminance_Invalid(t *testing.T) {
	if _, err := Luminance("#12345"); !errors.Is(err, ErrInvalidColorFormat) {
		t.Errorf("expected ErrInvalidColorFormat, got %v", err)
	}
}

func TestContrastRatio_MaxContrast(t *testing.T) {
	if got := mustRatio(t, "#FFFFFF", "#000000"); got != 21 {
		t.Errorf("expected 21, got %v", got)
	}
}

func TestContrastRatio_Identical(t *testing.T) {
	for _, c := range []string{"#000000", "#FFFFFF", "#F4F1EB", "#1F1F1F", "#3366CC"} {
		if got := mustRatio(t, c, c); got != 1 {
			t.Errorf("ContrastRatio(%s, %s): expected 1, got %v", c, c, got)
		}
	}
}

func TestContrastRatio_Symmetric(t *testing.T) {
	colors := []string{"#000000", "#FFFFFF", "#F4F1EB", "#F6FBFF", "#E8F5E9", "#FFF5F5", "#1F1F1F", "#777777", "#abcdef"}
	for _, a := range colors {
		for _, b := range colors {
			if ab, ba := mustRatio(t, a, b), mustRatio(t, b, a); ab != ba {
				t.Errorf("ContrastRatio(%s, %s)=%v but reversed=%v", a, b, ab, ba)
			}
		}
	}
}

func TestContrastRatio_RoundedToTwoDecimals(t *testing.T) {
	got := mustRatio(t, "#777777", "#000000")
	if math.Abs(got*100-math.Round(got*100)) > epsilon {
		t.Errorf("expected two-decimal value, got %v", got)
	}
	if got < 1 {
		t.Errorf("ratio must be >= 1, got %v", got)
	}
}

func TestContrastRatio_InvalidEitherSide(t *testing.T) {
	if _, err := ContrastRatio("#FFFFFF", "black"); !errors.Is(err, ErrInvalidColorFormat) {
		t.Errorf("expected ErrInvalidColorFormat for second arg, got %v", err)
	}
	if _, err := ContrastRatio("white", "#000000"); !errors.Is(err, ErrInvalidColorFormat) {
		t.Errorf("expected ErrInvalidColorFormat for first arg, got %v", err)
	}
}

func TestIsContrastSafe(t *testing.T) {
	tests := []struct {
		background string
		want       bool
	}{
		{"#FFFFFF", true},
		{"#F4F1EB", true},
		{"#777777", true},
		{"#666666", false},
		{"#1F1F1F", false},
		{"#000000", false},
	}
	for _, tt := range tests {
		got, err := IsContrastSafe(tt.background, QRReference)
		if err != nil {
			t.Fatalf("IsContrastSafe(%s): unexpected error: %v", tt.background, err)
		}
		if got != tt.want {
			t.Errorf("IsContrastSafe(%s, black) = %v, want %v", tt.background, got, tt.want)
		}
	}
}

func TestIsDarkBackground(t *testing.T) {
	tests := []struct {
		hex  string
		want bool
	}{
		{"#000000", true},
		{"#1F1F1F", true},
		{"#999999", true},
		{"#CCCCCC", false},
		{"#FFFFFF", false},
	}
	for _, tt := range tests {
		got, err := IsDarkBackground(tt.hex)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Errorf("IsDarkBackground(%s) = %v, want %v", tt.hex, got, tt.want)
		}
	}
}

func TestReadableTextColor(t *testing.T) {
	if got, _ := ReadableTextColor("#000000"); got != TextLight {
		t.Errorf("expected %s on black, got %s", TextLight, got)
	}
	if got, _ := ReadableTextColor("#FFFFFF"); got != TextDark {
		t.Errorf("expected %s on white, got %s", TextDark, got)
	}
	if _, err := ReadableTextColor("#FFF"); !errors.Is(err, ErrInvalidColorFormat) {
		t.Errorf("expected ErrInvalidColorFormat, got %v", err)
	}
}

func TestEnsureHex(t *testing.T) {
	if got := EnsureHex("not-a-color", "#F4F1EB"); got != "#F4F1EB" {
		t.Errorf("expected fallback, got %s", got)
	}
	if got := EnsureHex("#abcdef", "#F4F1EB"); got != "#ABCDEF" {
		t.Errorf("expected #ABCDEF, got %s", got)
	}
	if got := EnsureHex("", "#000000"); got != "#000000" {
		t.Errorf("expected fallback for empty input, got %s", got)
	}
}

func TestSafeContrastState_ConsistentWithPrimitives(t *testing.T) {
	for _, bg := range []string{"#1F1F1F", "#F4F1EB", "#777777", "#666666", "#e8f5e9"} {
		state := SafeContrastState(bg)
		safe, err := IsContrastSafe(bg, "#000000")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state.QRSafe != safe {
			t.Errorf("%s: state.QRSafe=%v, IsContrastSafe=%v", bg, state.QRSafe, safe)
		}
		text, _ := ReadableTextColor(bg)
		if state.Text != text {
			t.Errorf("%s: state.Text=%s, ReadableTextColor=%s", bg, state.Text, text)
		}
	}
}

func TestSafeContrastState_NormalizesAndFallsBack(t *testing.T) {
	state := SafeContrastState("#e8f5e9")
	if state.Background != "#E8F5E9" {
		t.Errorf("expected uppercase background, got %s", state.Background)
	}

	state = SafeContrastState("garbage")
	if state.Background != DefaultBackground {
		t.Errorf("expected default background, got %s", state.Background)
	}
	if state.Text != TextDark {
		t.Errorf("expected dark text on default background, got %s", state.Text)
	}
	if !state.QRSafe {
		t.Error("expected default background to be QR safe")
	}
}

func TestStateWithFallback_InvalidFallback(t *testing.T) {
	state := StateWithFallback("nope", "also-nope")
	if state.Background != DefaultBackground {
		t.Errorf("expected %s, got %s", DefaultBackground, state.Background)
	}

	state = StateWithFallback("nope", "#1f1f1f")
	if state.Background != "#1F1F1F" {
		t.Errorf("expected normalized fallback, got %s", state.Background)
	}
	if state.Text != TextLight {
		t.Errorf("expected light text on dark fallback, got %s", state.Text)
	}
}
