package gpu

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/linework"
)

// Config holds renderer configuration.
type Config struct {
	// Width and Height are the render target dimensions in pixels.
	Width, Height uint32

	// AABorder is the antialiasing border width in screen pixels. The
	// fragment shader divides it by the view scale so the coverage ramp
	// stays this wide on screen at any zoom.
	// Default: linework.DefaultAABorder
	AABorder float32

	// Format is the render target texture format.
	// Default: RGBA8Unorm
	Format gputypes.TextureFormat
}

// DefaultConfig returns a Config with defaults for the given target size.
func DefaultConfig(width, height uint32) Config {
	return Config{
		Width:    width,
		Height:   height,
		AABorder: linework.DefaultAABorder,
		Format:   gputypes.TextureFormatRGBA8Unorm,
	}
}

// withDefaults fills unset fields.
func (c Config) withDefaults() Config {
	if c.AABorder <= 0 {
		c.AABorder = linework.DefaultAABorder
	}
	if c.Format == gputypes.TextureFormatUndefined {
		c.Format = gputypes.TextureFormatRGBA8Unorm
	}
	return c
}

// View maps world coordinates to target pixels: pixel = world·Scale + Offset.
// The zero value is not a valid view; use IdentityView for a 1:1 mapping.
type View struct {
	Scale   float32
	OffsetX float32
	OffsetY float32
}

// IdentityView returns the 1:1 world-to-pixel view.
func IdentityView() View {
	return View{Scale: 1}
}

// clipTransform returns the column-major 4x4 matrix taking world coordinates
// to clip space for a w×h pixel target: pixels map to [-1, 1] with y flipped
// so world y grows downward like image rows.
func (v View) clipTransform(w, h uint32) [16]float32 {
	sx := 2 * v.Scale / float32(w)
	sy := -2 * v.Scale / float32(h)
	tx := 2*v.OffsetX/float32(w) - 1
	ty := 1 - 2*v.OffsetY/float32(h)
	return [16]float32{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, 1, 0,
		tx, ty, 0, 1,
	}
}
