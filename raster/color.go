package raster

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGBA color in buffer byte order.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Default palette.
var (
	Background = RGB(44, 44, 44)
	White      = RGB(255, 255, 255)
	Green      = RGB(40, 255, 40)
	Red        = RGB(255, 40, 40)
)

// MarshalText encodes the color as "#rrggbb", dropping alpha.
func (c Color) MarshalText() ([]byte, error) {
	cf := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	return []byte(cf.Hex()), nil
}

// UnmarshalText decodes "#rrggbb" or "#rgb". The result is always opaque.
func (c *Color) UnmarshalText(text []byte) error {
	cf, err := colorful.Hex(string(text))
	if err != nil {
		return fmt.Errorf("raster: parse color %q: %w", text, err)
	}
	r, g, b := cf.RGB255()
	*c = RGB(r, g, b)
	return nil
}

func (c Color) String() string {
	b, _ := c.MarshalText()
	return string(b)
}
