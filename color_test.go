package voronoi

import (
	"image/color"
	"testing"
)

func TestRGBANRGBA(t *testing.T) {
	tests := []struct {
		in   RGBA
		want color.NRGBA
	}{
		{Black, color.NRGBA{A: 255}},
		{White, color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{Transparent, color.NRGBA{}},
		{RGBA{R: 0.5, G: 0.25, B: 0.99, A: 1}, color.NRGBA{R: 128, G: 64, B: 252, A: 255}},
		{RGBA{R: -1, G: 2, B: 0, A: 1}, color.NRGBA{R: 0, G: 255, B: 0, A: 255}},
	}
	for _, tt := range tests {
		if got := tt.in.NRGBA(); got != tt.want {
			t.Errorf("%+v.NRGBA() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestColorOpaque(t *testing.T) {
	if got := RGB(0.1, 0.2, 0.3).Opaque(); got != (RGBA{R: 0.1, G: 0.2, B: 0.3, A: 1}) {
		t.Errorf("Opaque() = %+v", got)
	}
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		in   Color
		want string
	}{
		{RGB(0, 0, 0), "#000000"},
		{RGB(1, 1, 1), "#ffffff"},
		{RGB(1, 0, 0), "#ff0000"},
		{RGB(1.5, -0.2, 0), "#ff0000"},
	}
	for _, tt := range tests {
		if got := tt.in.Hex(); got != tt.want {
			t.Errorf("%+v.Hex() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#ff0000", color.NRGBA{R: 255, A: 255}},
		{"00ff00", color.NRGBA{G: 255, A: 255}},
		{"#00f", color.NRGBA{B: 255, A: 255}},
		{"#808080", color.NRGBA{R: 128, G: 128, B: 128, A: 255}},
	}
	for _, tt := range tests {
		c, err := ParseHex(tt.in)
		if err != nil {
			t.Errorf("ParseHex(%q): %v", tt.in, err)
			continue
		}
		if got := c.NRGBA(); got != tt.want {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "#12", "zzzzzz", "#1234567"} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("ParseHex(%q) succeeded, want error", bad)
		}
	}
}
