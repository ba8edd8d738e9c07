package linework

import "image/color"

// RGB represents an opaque stroke color with components in [0, 1].
//
// Strokes are always fully opaque; the alpha channel of the rendered output
// is used exclusively for edge antialiasing, never for user transparency.
type RGB struct {
	R, G, B float64
}

// NewRGB creates a color from components in [0, 1].
func NewRGB(r, g, b float64) RGB {
	return RGB{R: r, G: g, B: b}
}

// Color converts RGB to the standard color.Color interface.
func (c RGB) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: 255,
	}
}

// FromColor converts a standard color.Color to RGB, dropping alpha.
func FromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{
		R: float64(r) / 65535,
		G: float64(g) / 65535,
		B: float64(b) / 65535,
	}
}

// Common stroke colors.
var (
	Black = RGB{0, 0, 0}
	White = RGB{1, 1, 1}
	Red   = RGB{1, 0, 0}
	Green = RGB{0, 1, 0}
	Blue  = RGB{0, 0, 1}
)

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
