package linework

import "fmt"

// CapKind selects how a segment's ends are drawn.
//
// A Full segment keeps the rounded overhang at both ends. The cut kinds
// truncate one end with a hard square cut exactly at the endpoint, which is
// how interior polyline joints avoid blending the antialiasing fringe of two
// segments twice: at each shared joint, exactly one of the two meeting
// segments is cut.
type CapKind uint8

const (
	// CapFull draws rounded overhangs at both ends.
	CapFull CapKind = iota

	// CapCutStart truncates the start-side overhang at the start point.
	CapCutStart

	// CapCutEnd truncates the end-side overhang at the end point.
	CapCutEnd
)

// String returns the name of the cap kind.
func (k CapKind) String() string {
	switch k {
	case CapFull:
		return "Full"
	case CapCutStart:
		return "CutStart"
	case CapCutEnd:
		return "CutEnd"
	default:
		return fmt.Sprintf("CapKind(%d)", uint8(k))
	}
}

// Segment is a straight stroked line. It is stored as a midpoint plus an
// unnormalized direction: Dir = end − start, so its length encodes the
// segment length and its orientation the segment axis.
//
// Segments are immutable value types; construct them with NewSegment.
type Segment struct {
	// Center is the midpoint of the two endpoints.
	Center Point

	// Dir is end − start. Never zero for a valid segment.
	Dir Vec2

	// Thickness is the stroke half-width.
	Thickness float64

	// Color is the opaque stroke color.
	Color RGB

	// Cap selects the end-cap policy.
	Cap CapKind
}

// NewSegment constructs a segment from two endpoints and a style.
// It returns ErrDegeneratePrimitive for coincident endpoints, non-positive
// thickness, or non-finite coordinates.
func NewSegment(start, end Point, thickness float64, col RGB, capKind CapKind) (Segment, error) {
	dir := end.Sub(start)
	if dir.IsZero() || !dir.IsFinite() {
		return Segment{}, fmt.Errorf("%w: segment %v -> %v", ErrDegeneratePrimitive, start, end)
	}
	if !(thickness > 0) || !isFinite(thickness) {
		return Segment{}, fmt.Errorf("%w: thickness %v", ErrDegeneratePrimitive, thickness)
	}
	return Segment{
		Center:    start.Midpoint(end),
		Dir:       dir,
		Thickness: thickness,
		Color:     col,
		Cap:       capKind,
	}, nil
}

// Start returns the segment's start point.
func (s Segment) Start() Point {
	return s.Center.Add(s.Dir.Mul(-0.5))
}

// End returns the segment's end point.
func (s Segment) End() Point {
	return s.Center.Add(s.Dir.Mul(0.5))
}

// Length returns the distance between the endpoints.
func (s Segment) Length() float64 {
	return s.Dir.Length()
}

// Unit returns the unit direction from start to end.
func (s Segment) Unit() Vec2 {
	return s.Dir.Normalize()
}

// Normal returns the unit normal (direction rotated 90 degrees CCW).
func (s Segment) Normal() Vec2 {
	return s.Unit().Perp()
}

// QuadCurve is a quadratic Bezier stroke centerline with control points
// P0 (start), P1 (control), P2 (end).
//
// Curves are immutable value types; construct them with NewQuadCurve.
type QuadCurve struct {
	P0, P1, P2 Point
}

// chordEpsSq is the squared chord length below which a curve is considered
// degenerate. The bounding-quad builder and the shader both align the curve
// to its chord, which is undefined for a zero-length chord.
const chordEpsSq = 1e-24

// NewQuadCurve constructs a quadratic Bezier from its three control points.
// Curves whose start and end points coincide have no chord axis to align
// the bounding quad with; they are rejected with ErrDegeneratePrimitive
// rather than rendered as a point stroke.
func NewQuadCurve(p0, p1, p2 Point) (QuadCurve, error) {
	chord := p2.Sub(p0)
	if !chord.IsFinite() || !p1.Sub(p0).IsFinite() {
		return QuadCurve{}, fmt.Errorf("%w: curve with non-finite points", ErrDegeneratePrimitive)
	}
	if chord.LengthSq() < chordEpsSq {
		return QuadCurve{}, fmt.Errorf("%w: curve chord %v -> %v", ErrDegeneratePrimitive, p0, p2)
	}
	return QuadCurve{P0: p0, P1: p1, P2: p2}, nil
}

// Eval evaluates the curve at parameter t in [0, 1].
func (q QuadCurve) Eval(t float64) Point {
	mt := 1 - t
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Deriv returns the tangent vector at parameter t.
func (q QuadCurve) Deriv(t float64) Vec2 {
	// B'(t) = 2(1-t)(P1-P0) + 2t(P2-P1)
	d0 := q.P1.Sub(q.P0)
	d1 := q.P2.Sub(q.P1)
	return d0.Mul(2 * (1 - t)).Add(d1.Mul(2 * t))
}

// Extrema returns the parameter values in (0, 1) where the derivative is
// zero on either axis. A quadratic has at most one stationary point per
// axis: t* = (p0 − p1) / (p0 − 2p1 + p2).
func (q QuadCurve) Extrema() []float64 {
	var result []float64
	d0 := q.P1.Sub(q.P0)
	dd := Vec2{
		X: q.P0.X - 2*q.P1.X + q.P2.X,
		Y: q.P0.Y - 2*q.P1.Y + q.P2.Y,
	}
	if dd.X != 0 {
		if t := -d0.X / dd.X; t > 0 && t < 1 {
			result = append(result, t)
		}
	}
	if dd.Y != 0 {
		if t := -d0.Y / dd.Y; t > 0 && t < 1 {
			result = append(result, t)
		}
	}
	return result
}
