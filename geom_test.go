package linework

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestPointOps(t *testing.T) {
	p := Pt(1, 2)
	q := Pt(4, 6)

	if d := p.Distance(q); !almostEqual(d, 5, 1e-12) {
		t.Errorf("Distance = %v, want 5", d)
	}
	if m := p.Midpoint(q); m != Pt(2.5, 4) {
		t.Errorf("Midpoint = %v, want (2.5, 4)", m)
	}
	if l := p.Lerp(q, 0); l != p {
		t.Errorf("Lerp(0) = %v, want %v", l, p)
	}
	if l := p.Lerp(q, 1); l != q {
		t.Errorf("Lerp(1) = %v, want %v", l, q)
	}
	if s := q.Sub(p); s != V2(3, 4) {
		t.Errorf("Sub = %v, want (3, 4)", s)
	}
	if a := p.Add(V2(3, 4)); a != q {
		t.Errorf("Add = %v, want %v", a, q)
	}
}

func TestVec2Ops(t *testing.T) {
	v := V2(3, 4)

	if l := v.Length(); !almostEqual(l, 5, 1e-12) {
		t.Errorf("Length = %v, want 5", l)
	}
	if ls := v.LengthSq(); ls != 25 {
		t.Errorf("LengthSq = %v, want 25", ls)
	}
	if d := v.Dot(V2(1, 1)); d != 7 {
		t.Errorf("Dot = %v, want 7", d)
	}
	if c := v.Cross(V2(1, 0)); c != -4 {
		t.Errorf("Cross = %v, want -4", c)
	}
	if n := v.Neg(); n != V2(-3, -4) {
		t.Errorf("Neg = %v, want (-3, -4)", n)
	}
}

func TestVec2Normalize(t *testing.T) {
	n := V2(3, 4).Normalize()
	if !almostEqual(n.Length(), 1, 1e-12) {
		t.Errorf("normalized length = %v, want 1", n.Length())
	}
	if !n.Approx(V2(0.6, 0.8), 1e-12) {
		t.Errorf("Normalize = %v, want (0.6, 0.8)", n)
	}

	// Zero vector stays zero instead of producing NaN.
	if z := V2(0, 0).Normalize(); !z.IsZero() {
		t.Errorf("Normalize(zero) = %v, want zero", z)
	}
}

func TestVec2Perp(t *testing.T) {
	v := V2(1, 0)
	p := v.Perp()
	if p != V2(0, 1) {
		t.Errorf("Perp = %v, want (0, 1)", p)
	}
	// Perpendicular and same length.
	w := V2(3, -7)
	if d := w.Dot(w.Perp()); d != 0 {
		t.Errorf("Dot(v, Perp(v)) = %v, want 0", d)
	}
	if !almostEqual(w.Perp().Length(), w.Length(), 1e-12) {
		t.Error("Perp changed length")
	}
}

func TestVec2IsFinite(t *testing.T) {
	if !V2(1, 2).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if V2(math.Inf(1), 0).IsFinite() {
		t.Error("infinite vector reported finite")
	}
	if V2(0, math.NaN()).IsFinite() {
		t.Error("NaN vector reported finite")
	}
}
