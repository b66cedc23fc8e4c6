package voronoi

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA is a resolved pixel color with components in [0, 1].
type RGBA struct {
	R, G, B, A float32
}

// Common colors.
var (
	Black       = RGBA{R: 0, G: 0, B: 0, A: 1}
	White       = RGBA{R: 1, G: 1, B: 1, A: 1}
	Transparent = RGBA{}
)

// NRGBA converts c to 8-bit non-premultiplied color, rounding to nearest.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// Opaque returns the seed color with alpha 1.
func (c Color) Opaque() RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: 1}
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}.Clamped().Hex()
}

// ParseHex parses "#rgb", "#rrggbb" or the same without the leading '#'
// into an opaque color.
func ParseHex(s string) (RGBA, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGBA{}, fmt.Errorf("voronoi: parse color %q: %w", s, err)
	}
	return RGBA{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: 1}, nil
}

func to8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
