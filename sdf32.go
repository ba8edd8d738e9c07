package linework

import "github.com/chewxy/math32"

// Float32 mirror of the WGSL fragment-stage math. The software rasterizer
// consumes packed float32 vertex data, so it evaluates distances with the
// same precision the GPU does; tests cross-check these against the float64
// reference in sdf.go.

// segmentSDF32 is the float32 capsule distance minus the stroke half-width.
func segmentSDF32(px, py, ax, ay, bx, by, thickness float32) float32 {
	pax, pay := px-ax, py-ay
	bax, bay := bx-ax, by-ay
	h := (pax*bax + pay*bay) / (bax*bax + bay*bay)
	if h < 0 {
		h = 0
	} else if h > 1 {
		h = 1
	}
	dx := pax - bax*h
	dy := pay - bay*h
	return math32.Hypot(dx, dy) - thickness
}

// curveBezierEpsSq guards the curve solve against a vanishing quadratic
// term: when P0 − 2P1 + P2 ≈ 0 the control point sits at the chord midpoint
// and the curve is a straight line, so the capsule distance applies.
const curveBezierEpsSq = 1e-7

// curveSDF32 is the exact distance from (px, py) to the quadratic Bezier
// (A, B, C) minus the stroke half-width. The closest-point cubic is solved
// in depressed form: one real root via Cardano when the discriminant
// h = q² + 4p³ is non-negative, otherwise two candidate roots via the
// trigonometric substitution. The third root in the three-root case is
// never the closest for points outside self-intersections and is skipped.
// The branch is taken on h >= 0 exactly so sqrt never sees a negative
// argument.
func curveSDF32(px, py, ax, ay, bx, by, cx, cy, thickness float32) float32 {
	a0x, a0y := bx-ax, by-ay       // B − A
	b0x, b0y := ax-2*bx+cx, ay-2*by+cy // A − 2B + C
	dx, dy := ax-px, ay-py         // A − pos

	bb := b0x*b0x + b0y*b0y
	if bb < curveBezierEpsSq {
		return segmentSDF32(px, py, ax, ay, cx, cy, thickness)
	}

	kk := 1 / bb
	kx := kk * (a0x*b0x + a0y*b0y)
	ky := kk * (2*(a0x*a0x+a0y*a0y) + (dx*b0x + dy*b0y)) / 3
	kz := kk * (dx*a0x + dy*a0y)

	p := ky - kx*kx
	p3 := p * p * p
	q := kx*(2*kx*kx-3*ky) + kz
	h := q*q + 4*p3

	var res float32
	if h >= 0 {
		sh := math32.Sqrt(h)
		u := cbrt32((sh - q) / 2)
		v := cbrt32((-sh - q) / 2)
		t := clamp0132(u + v - kx)
		res = curveResidualSq(dx, dy, a0x, a0y, b0x, b0y, t)
	} else {
		z := math32.Sqrt(-p)
		arg := q / (p * z * 2)
		if arg < -1 {
			arg = -1
		} else if arg > 1 {
			arg = 1
		}
		v := math32.Acos(arg) / 3
		m := math32.Cos(v)
		n := math32.Sin(v) * math32.Sqrt(3)
		t1 := clamp0132((m+m)*z - kx)
		t2 := clamp0132((-n-m)*z - kx)
		res = math32.Min(
			curveResidualSq(dx, dy, a0x, a0y, b0x, b0y, t1),
			curveResidualSq(dx, dy, a0x, a0y, b0x, b0y, t2),
		)
	}
	return math32.Sqrt(res) - thickness
}

// curveResidualSq is |B(t) − pos|² given d = A − pos, a = B − A,
// b = A − 2B + C: the residual is d + (2a + b·t)·t.
func curveResidualSq(dx, dy, ax, ay, bx, by, t float32) float32 {
	wx := dx + (2*ax+bx*t)*t
	wy := dy + (2*ay+by*t)*t
	return wx*wx + wy*wy
}

// coverage32 converts a signed boundary distance to coverage, matching
// Coverage in float32.
func coverage32(sd, border float32) float32 {
	if sd >= 0 {
		return 0
	}
	t := clamp0132((sd + border) / border)
	return 1 - t*t*(3-2*t)
}

func cbrt32(x float32) float32 {
	return math32.Cbrt(x)
}

func clamp0132(t float32) float32 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
