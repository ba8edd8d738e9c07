package linework

import (
	"math"
	"testing"
)

func TestDistanceToSegment(t *testing.T) {
	a, b := Pt(0, 0), Pt(10, 0)
	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"on segment", Pt(5, 0), 0},
		{"above middle", Pt(5, 3), 3},
		{"beyond end", Pt(13, 0), 3},
		{"beyond start", Pt(-4, 0), 4},
		{"diagonal past end", Pt(13, 4), 5},
		{"at endpoint", Pt(0, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DistanceToSegment(tt.p, a, b); !almostEqual(got, tt.want, 1e-12) {
				t.Errorf("DistanceToSegment = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentSDFEndpoint(t *testing.T) {
	s := mustSegment(t, Pt(0, 0), Pt(10, 0), 2, CapFull)

	// On the centerline, including the endpoints, the signed distance is
	// exactly -thickness.
	for _, p := range []Point{Pt(0, 0), Pt(10, 0), Pt(5, 0)} {
		if sd := SegmentSDF(p, s); sd != -2 {
			t.Errorf("SegmentSDF(%v) = %v, want -2", p, sd)
		}
	}
	// On the boundary the signed distance is zero.
	if sd := SegmentSDF(Pt(5, 2), s); !almostEqual(sd, 0, 1e-12) {
		t.Errorf("SegmentSDF(boundary) = %v, want 0", sd)
	}
}

// denseCurveDistance approximates the distance to a curve by sampling.
func denseCurveDistance(p Point, q QuadCurve, n int) float64 {
	best := math.Inf(1)
	for i := 0; i <= n; i++ {
		d := q.Eval(float64(i) / float64(n)).Sub(p).Length()
		if d < best {
			best = d
		}
	}
	return best
}

func TestDistanceToCurveAgainstSampling(t *testing.T) {
	curves := []QuadCurve{
		{P0: Pt(0, 0), P1: Pt(5, 5), P2: Pt(10, 0)},
		{P0: Pt(2, 3), P1: Pt(-4, 8), P2: Pt(9, 12)},
		{P0: Pt(0, 0), P1: Pt(3, 1), P2: Pt(10, 2)},
	}
	points := []Point{
		Pt(5, 0), Pt(5, 5), Pt(0, 3), Pt(12, -1), Pt(-3, -3), Pt(4, 2.49),
	}
	for ci, q := range curves {
		for _, p := range points {
			got := DistanceToCurve(p, q)
			want := denseCurveDistance(p, q, 20000)
			if !almostEqual(got, want, 1e-4) {
				t.Errorf("curve %d point %v: distance = %v, sampled %v", ci, p, got, want)
			}
		}
	}
}

func TestCurveSDFOnCurve(t *testing.T) {
	q := mustCurve(t, Pt(0, 0), Pt(5, 5), Pt(10, 0))
	const thickness = 1.5

	// Points on the centerline have signed distance -thickness.
	for i := 0; i <= 20; i++ {
		tt := float64(i) / 20
		p := q.Eval(tt)
		if sd := CurveSDF(p, q, thickness); !almostEqual(sd, -thickness, 1e-9) {
			t.Errorf("CurveSDF(Eval(%v)) = %v, want %v", tt, sd, -thickness)
		}
	}
}

func TestCurveSDF32MatchesFloat64(t *testing.T) {
	curves := []QuadCurve{
		{P0: Pt(0, 0), P1: Pt(5, 5), P2: Pt(10, 0)},
		{P0: Pt(2, 3), P1: Pt(-4, 8), P2: Pt(9, 12)},
	}
	const thickness = 1.0
	for ci, q := range curves {
		for x := -2.0; x <= 12; x += 0.7 {
			for y := -2.0; y <= 12; y += 0.7 {
				want := CurveSDF(Pt(x, y), q, thickness)
				got := float64(curveSDF32(
					float32(x), float32(y),
					float32(q.P0.X), float32(q.P0.Y),
					float32(q.P1.X), float32(q.P1.Y),
					float32(q.P2.X), float32(q.P2.Y),
					thickness,
				))
				if !almostEqual(got, want, 2e-3) {
					t.Errorf("curve %d at (%v, %v): float32 sd = %v, float64 %v", ci, x, y, got, want)
				}
			}
		}
	}
}

func TestCurveSDF32LinearFallback(t *testing.T) {
	// Control point at the chord midpoint: the curve degenerates to a line
	// and the capsule distance applies.
	got := curveSDF32(5, 3, 0, 0, 5, 0, 10, 0, 1)
	if !almostEqual(float64(got), 2, 1e-5) {
		t.Errorf("degenerate curve sd = %v, want 2", got)
	}
}

func TestSegmentSDF32(t *testing.T) {
	if sd := segmentSDF32(5, 3, 0, 0, 10, 0, 1); !almostEqual(float64(sd), 2, 1e-6) {
		t.Errorf("sd = %v, want 2", sd)
	}
	if sd := segmentSDF32(0, 0, 0, 0, 10, 0, 1); !almostEqual(float64(sd), -1, 1e-6) {
		t.Errorf("endpoint sd = %v, want -1", sd)
	}
}

func TestCoverage(t *testing.T) {
	const border = 1.0

	// Outside or on the boundary: zero.
	if c := Coverage(0, border); c != 0 {
		t.Errorf("Coverage(0) = %v, want 0", c)
	}
	if c := Coverage(0.5, border); c != 0 {
		t.Errorf("Coverage(0.5) = %v, want 0", c)
	}
	// At or past the inner border edge: full.
	if c := Coverage(-border, border); c != 1 {
		t.Errorf("Coverage(-border) = %v, want 1", c)
	}
	if c := Coverage(-5, border); c != 1 {
		t.Errorf("Coverage(-5) = %v, want 1", c)
	}
	// Midpoint of the ramp.
	if c := Coverage(-border/2, border); !almostEqual(c, 0.5, 1e-12) {
		t.Errorf("Coverage(-border/2) = %v, want 0.5", c)
	}

	// Monotone decreasing in sd.
	prev := 1.1
	for sd := -1.5; sd <= 0.5; sd += 0.01 {
		c := Coverage(sd, border)
		if c > prev+1e-12 {
			t.Fatalf("coverage not monotone at sd=%v: %v > %v", sd, c, prev)
		}
		prev = c
	}
}

func TestCoverage32MatchesFloat64(t *testing.T) {
	for sd := -2.0; sd <= 1.0; sd += 0.05 {
		want := Coverage(sd, 1)
		got := float64(coverage32(float32(sd), 1))
		if !almostEqual(got, want, 1e-6) {
			t.Errorf("coverage32(%v) = %v, want %v", sd, got, want)
		}
	}
}

func TestCutDiscard(t *testing.T) {
	tests := []struct {
		capKind CapKind
		localY  float64
		want    bool
	}{
		{CapFull, -0.6, false},
		{CapFull, 0.6, false},
		{CapCutStart, -0.51, true},
		{CapCutStart, -0.5, false},
		{CapCutStart, -0.49, false},
		{CapCutStart, 0.6, false},
		{CapCutEnd, 0.51, true},
		{CapCutEnd, 0.5, false},
		{CapCutEnd, 0.49, false},
		{CapCutEnd, -0.6, false},
	}
	for _, tt := range tests {
		if got := CutDiscard(tt.capKind, tt.localY); got != tt.want {
			t.Errorf("CutDiscard(%v, %v) = %v, want %v", tt.capKind, tt.localY, got, tt.want)
		}
	}
}
