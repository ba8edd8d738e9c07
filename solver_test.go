package linework

import (
	"math"
	"sort"
	"testing"
)

func evalCubic(a, b, c, d, x float64) float64 {
	return ((a*x+b)*x+c)*x + d
}

func TestSolveQuadratic(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		want    []float64
	}{
		{"two roots", 1, -3, 2, []float64{1, 2}},
		{"double root", 1, -4, 4, []float64{2}},
		{"no real roots", 1, 0, 1, nil},
		{"linear fallback", 0, 2, -4, []float64{2}},
		{"negative leading", -1, 0, 4, []float64{-2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SolveQuadratic(tt.a, tt.b, tt.c)
			if len(got) != len(tt.want) {
				t.Fatalf("roots = %v, want %v", got, tt.want)
			}
			for i := range got {
				if !almostEqual(got[i], tt.want[i], 1e-9) {
					t.Errorf("root %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSolveQuadraticCancellation(t *testing.T) {
	// b^2 >> 4ac: the naive formula loses the small root to cancellation.
	got := SolveQuadratic(1, -1e8, 1)
	if len(got) != 2 {
		t.Fatalf("roots = %v, want 2 roots", got)
	}
	// Small root is ~1e-8; product of roots is c/a = 1.
	if rel := math.Abs(got[0]*got[1]-1) / 1; rel > 1e-12 {
		t.Errorf("root product = %v, want 1", got[0]*got[1])
	}
}

func TestSolveCubicThreeRoots(t *testing.T) {
	// (x-1)(x-2)(x-3) = x^3 - 6x^2 + 11x - 6
	got := SolveCubic(1, -6, 11, -6)
	if len(got) != 3 {
		t.Fatalf("roots = %v, want 3 roots", got)
	}
	sort.Float64s(got)
	want := []float64{1, 2, 3}
	for i := range want {
		if !almostEqual(got[i], want[i], 1e-9) {
			t.Errorf("root %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSolveCubicOneRoot(t *testing.T) {
	// x^3 + x + 1 has a single real root.
	got := SolveCubic(1, 0, 1, 1)
	if len(got) != 1 {
		t.Fatalf("roots = %v, want 1 root", got)
	}
	if r := evalCubic(1, 0, 1, 1, got[0]); !almostEqual(r, 0, 1e-9) {
		t.Errorf("f(root) = %v, want 0", r)
	}
}

func TestSolveCubicResiduals(t *testing.T) {
	// Random-ish coefficient sets; every reported root must satisfy the
	// equation.
	cases := [][4]float64{
		{1, -6, 11, -6},
		{2, 3, -11, -6},
		{1, 0, -7, 6},
		{5, -2, 0.5, -0.01},
		{-3, 1, 2, 0.25},
	}
	for _, cf := range cases {
		roots := SolveCubic(cf[0], cf[1], cf[2], cf[3])
		if len(roots) == 0 {
			t.Errorf("coeffs %v: no roots returned", cf)
			continue
		}
		for _, r := range roots {
			if v := evalCubic(cf[0], cf[1], cf[2], cf[3], r); !almostEqual(v, 0, 1e-6) {
				t.Errorf("coeffs %v: f(%v) = %v, want 0", cf, r, v)
			}
		}
	}
}

func TestSolveCubicQuadraticFallback(t *testing.T) {
	// Zero leading coefficient degrades to the quadratic.
	got := SolveCubic(0, 1, -3, 2)
	if len(got) != 2 {
		t.Fatalf("roots = %v, want 2 roots", got)
	}
	sort.Float64s(got)
	if !almostEqual(got[0], 1, 1e-9) || !almostEqual(got[1], 2, 1e-9) {
		t.Errorf("roots = %v, want [1 2]", got)
	}
}
