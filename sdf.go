package linework

import "math"

// Analytic distance functions for the two stroke primitives. These are the
// CPU reference for the fragment-stage contract: the WGSL shaders in
// linework/gpu compute the same distances per fragment, and the software
// rasterizer uses the float32 mirror in sdf32.go.

// DefaultAABorder is the default antialiasing border width in screen pixels.
// The coverage ramp spans this many pixels inside the stroke edge regardless
// of zoom; renderers divide it by the view scale to get the world-space
// border.
const DefaultAABorder = 1.0

// DistanceToSegment returns the distance from p to the nearest point of the
// finite segment a->b (the classic point-to-capsule centerline distance).
func DistanceToSegment(p, a, b Point) float64 {
	pa := p.Sub(a)
	ba := b.Sub(a)
	h := clamp01(pa.Dot(ba) / ba.Dot(ba))
	return pa.Sub(ba.Mul(h)).Length()
}

// DistanceToCurve returns the distance from p to the nearest point of the
// quadratic Bezier q. The closest parameter minimizes |B(t) − p|², whose
// derivative is a cubic in t; its real roots, clamped to [0, 1] together
// with the endpoints, are the only candidates.
func DistanceToCurve(p Point, q QuadCurve) float64 {
	d := q.P0.Sub(p)
	e := q.P1.Sub(q.P0)
	f := Vec2{
		X: q.P0.X - 2*q.P1.X + q.P2.X,
		Y: q.P0.Y - 2*q.P1.Y + q.P2.Y,
	}

	// (D + 2tE + t²F)·(E + tF) = 0, expanded by powers of t.
	a3 := f.Dot(f)
	a2 := 3 * e.Dot(f)
	a1 := d.Dot(f) + 2*e.Dot(e)
	a0 := d.Dot(e)

	best := math.Min(distSqAt(p, q, 0), distSqAt(p, q, 1))
	for _, t := range SolveCubic(a3, a2, a1, a0) {
		if !isFinite(t) {
			continue
		}
		if ds := distSqAt(p, q, clamp01(t)); ds < best {
			best = ds
		}
	}
	return math.Sqrt(best)
}

func distSqAt(p Point, q QuadCurve, t float64) float64 {
	return q.Eval(t).Sub(p).LengthSq()
}

// SegmentSDF returns the signed distance from p to the stroked segment
// boundary: negative inside the stroke, positive outside. At a centerline
// endpoint the value is exactly −thickness.
func SegmentSDF(p Point, s Segment) float64 {
	return DistanceToSegment(p, s.Start(), s.End()) - s.Thickness
}

// CurveSDF returns the signed distance from p to the stroked curve boundary.
func CurveSDF(p Point, q QuadCurve, thickness float64) float64 {
	return DistanceToCurve(p, q) - thickness
}

// Coverage converts a signed boundary distance to antialiased coverage in
// [0, 1]: 1 − smoothstep(−border, 0, sd). Fragments at or outside the
// boundary get zero; the ramp spans the border width just inside it.
func Coverage(sd, border float64) float64 {
	if sd >= 0 {
		return 0
	}
	return 1 - smoothstep(-border, 0, sd)
}

// CutDiscard reports whether a fragment is discarded by the segment cap
// policy. localY is the fragment's position along the segment axis in
// chord-length units: ±0.5 exactly at the endpoints, beyond that in the cap
// overhang. CutStart removes the region strictly below −0.5, CutEnd the
// region strictly above +0.5.
func CutDiscard(capKind CapKind, localY float64) bool {
	switch capKind {
	case CapCutStart:
		return localY < -0.5
	case CapCutEnd:
		return localY > 0.5
	default:
		return false
	}
}

// smoothstep is the Hermite interpolation 3t²−2t³ of x between e0 and e1.
func smoothstep(e0, e1, x float64) float64 {
	t := clamp01((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}
