package linework

import "math"

// Polynomial root solvers used by the CPU-side distance field evaluation.
// The cubic solver follows Jim Blinn's "How to Solve a Cubic Equation" as
// presented at https://momentsingraphics.de/CubicRoots.html; the quadratic
// uses the cancellation-free formulation. Both tolerate leading coefficients
// that are zero or nearly so by degrading to the lower-degree equation.

// SolveQuadratic finds the real roots of ax² + bx + c = 0, sorted in
// ascending order. Returns nil when there are no real roots.
func SolveQuadratic(a, b, c float64) []float64 {
	sc0 := c / a
	sc1 := b / a
	if !isFinite(sc0) || !isFinite(sc1) {
		// a is zero or vanishingly small: linear equation.
		root := -c / b
		if isFinite(root) {
			return []float64{root}
		}
		if b == 0 && c == 0 {
			return []float64{0}
		}
		return nil
	}

	arg := sc1*sc1 - 4*sc0
	switch {
	case !isFinite(arg):
		// Discriminant overflow: one root from sc1·x + x² = 0, the other
		// from the product of roots.
		root1 := -sc1
		root2 := sc0 / root1
		if !isFinite(root2) {
			return []float64{root1}
		}
		return sortedPair(root1, root2)
	case arg < 0:
		return nil
	case arg == 0:
		return []float64{-0.5 * sc1}
	}

	// Cancellation-free: compute the large-magnitude root first, derive the
	// other from the product of roots.
	root1 := -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	root2 := sc0 / root1
	if !isFinite(root2) {
		return []float64{root1}
	}
	return sortedPair(root1, root2)
}

// SolveCubic finds the real roots of ax³ + bx² + cx + d = 0.
// Roots are not sorted. Falls back to SolveQuadratic when a is zero or
// small enough that scaling by it overflows.
func SolveCubic(a, b, c, d float64) []float64 {
	const oneThird = 1.0 / 3.0
	aRecip := 1 / a
	c2 := b * (oneThird * aRecip)
	c1 := c * (oneThird * aRecip)
	c0 := d * aRecip
	if !isFinite(c2) || !isFinite(c1) || !isFinite(c0) {
		return SolveQuadratic(b, c, d)
	}

	// Blinn's delta values and discriminant.
	d0 := -c2*c2 + c1
	d1 := -c1*c2 + c0
	d2 := c2*c0 - c1*c1
	disc := 4*d0*d2 - d1*d1

	// Depressed cubic x-coefficient; the y-coefficient is d0.
	de := -2*c2*d0 + d1

	switch {
	case disc < 0:
		sq := math.Sqrt(-0.25 * disc)
		r := -0.5 * de
		t1 := math.Cbrt(r+sq) + math.Cbrt(r-sq)
		return []float64{t1 - c2}
	case disc == 0:
		t1 := math.Copysign(math.Sqrt(-d0), de)
		return []float64{t1 - c2, -2*t1 - c2}
	}

	// Three distinct real roots via the trigonometric substitution.
	th := math.Atan2(math.Sqrt(disc), -de) * oneThird
	thSin, thCos := math.Sincos(th)
	ss3 := thSin * math.Sqrt(3)
	t := 2 * math.Sqrt(-d0)
	return []float64{
		t*thCos - c2,
		t*0.5*(-thCos+ss3) - c2,
		t*0.5*(-thCos-ss3) - c2,
	}
}

func sortedPair(a, b float64) []float64 {
	if a > b {
		return []float64{b, a}
	}
	return []float64{a, b}
}
