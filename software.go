package linework

import (
	"image"
	"math"
)

// Software rasterizer: evaluates the same per-fragment contract as the GPU
// path, one pixel at a time. It exists for headless tests and as an exact
// reference for the shader math, so it deliberately mirrors the fragment
// stage: float32 distances, the bounding quad as the fragment domain, the
// cut-cap discard, and source-over compositing in draw order.

// RenderSegments rasterizes segments into img in slice order using
// source-over compositing. Pixels are sampled at their centers against the
// axis-aligned bounds of each segment's quad, clipped to the image. border
// is the antialiasing border width in pixel units; use DefaultAABorder
// unless the output is scaled.
func RenderSegments(img *image.RGBA, segs []Segment, border float64) {
	b32 := float32(border)
	for _, s := range segs {
		quad := SegmentQuad(s)
		x0, y0, x1, y1 := pixelBounds(quad, img.Bounds())

		start, end := s.Start(), s.End()
		ax, ay := float32(start.X), float32(start.Y)
		bx, by := float32(end.X), float32(end.Y)
		thickness := float32(s.Thickness)

		// Fragment position along the axis in chord-length units, for the
		// cap discard. ±0.5 exactly at the endpoints.
		u := s.Unit()
		invLen := 1 / s.Length()

		r := float32(s.Color.R)
		g := float32(s.Color.G)
		bl := float32(s.Color.B)

		for py := y0; py < y1; py++ {
			for px := x0; px < x1; px++ {
				cx := float64(px) + 0.5
				cy := float64(py) + 0.5
				localY := (u.X*(cx-s.Center.X) + u.Y*(cy-s.Center.Y)) * invLen
				if CutDiscard(s.Cap, localY) {
					continue
				}
				sd := segmentSDF32(float32(cx), float32(cy), ax, ay, bx, by, thickness)
				if a := coverage32(sd, b32); a > 0 {
					blendPixel(img, px, py, r, g, bl, a)
				}
			}
		}
	}
}

// CurveStroke pairs a curve with its stroke parameters for software
// rendering.
type CurveStroke struct {
	Curve     QuadCurve
	Thickness float64
	Color     RGB
}

// RenderCurves rasterizes stroked curves into img in slice order using
// source-over compositing.
func RenderCurves(img *image.RGBA, curves []CurveStroke, border float64) {
	b32 := float32(border)
	for _, c := range curves {
		quad := CurveQuad(c.Curve, c.Thickness)
		x0, y0, x1, y1 := pixelBounds(quad, img.Bounds())

		p0x, p0y := float32(c.Curve.P0.X), float32(c.Curve.P0.Y)
		p1x, p1y := float32(c.Curve.P1.X), float32(c.Curve.P1.Y)
		p2x, p2y := float32(c.Curve.P2.X), float32(c.Curve.P2.Y)
		thickness := float32(c.Thickness)

		r := float32(c.Color.R)
		g := float32(c.Color.G)
		bl := float32(c.Color.B)

		for py := y0; py < y1; py++ {
			for px := x0; px < x1; px++ {
				cx := float32(float64(px) + 0.5)
				cy := float32(float64(py) + 0.5)
				sd := curveSDF32(cx, cy, p0x, p0y, p1x, p1y, p2x, p2y, thickness)
				if a := coverage32(sd, b32); a > 0 {
					blendPixel(img, px, py, r, g, bl, a)
				}
			}
		}
	}
}

// pixelBounds returns the half-open pixel rectangle covering the quad's
// axis-aligned bounds, clipped to the image rectangle.
func pixelBounds(q Quad, clip image.Rectangle) (x0, y0, x1, y1 int) {
	minP, maxP := q.Bounds()
	x0 = max(int(math.Floor(minP.X)), clip.Min.X)
	y0 = max(int(math.Floor(minP.Y)), clip.Min.Y)
	x1 = min(int(math.Ceil(maxP.X)), clip.Max.X)
	y1 = min(int(math.Ceil(maxP.Y)), clip.Max.Y)
	return x0, y0, x1, y1
}

// blendPixel composites an opaque color with coverage alpha over the
// destination pixel. image.RGBA is alpha-premultiplied, so the source
// contribution is color·alpha and the destination keeps 1−alpha.
func blendPixel(img *image.RGBA, x, y int, r, g, b, alpha float32) {
	i := img.PixOffset(x, y)
	px := img.Pix[i : i+4 : i+4]

	inv := 1 - alpha
	px[0] = blendChan(r*alpha, px[0], inv)
	px[1] = blendChan(g*alpha, px[1], inv)
	px[2] = blendChan(b*alpha, px[2], inv)
	px[3] = blendChan(alpha, px[3], inv)
}

func blendChan(src float32, dst uint8, invA float32) uint8 {
	v := src*255 + float32(dst)*invA
	if v >= 255 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return uint8(v + 0.5)
}
