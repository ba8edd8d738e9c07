package linework

import "math"

// Quad is an oriented bounding quadrilateral: four ordered counter-clockwise
// world-space corners tightly enclosing a stroked primitive. It limits the
// screen area over which the fragment stage evaluates the distance field.
//
// Corner order for a segment quad, looking along the direction of travel:
//
//	0: start side, right of travel    1: end side, right of travel
//	3: start side, left of travel     2: end side, left of travel
type Quad [4]Point

// SegmentQuad returns the bounding rectangle of a stroked segment: length
// |Dir| + 2·thickness (covering the cap overhangs), width 2·thickness,
// centered on the segment and aligned with its direction. Closed form, no
// rotation search needed.
func SegmentQuad(s Segment) Quad {
	u := s.Unit()
	n := u.Perp()
	halfLen := s.Length()/2 + s.Thickness
	halfW := s.Thickness

	along := u.Mul(halfLen)
	across := n.Mul(halfW)
	return Quad{
		s.Center.Add(along.Neg()).Add(across.Neg()),
		s.Center.Add(along).Add(across.Neg()),
		s.Center.Add(along).Add(across),
		s.Center.Add(along.Neg()).Add(across),
	}
}

// CurveQuad returns a tight oriented bounding quad for a stroked quadratic
// Bezier. The curve is rotated into a frame where its chord lies on the
// x-axis, bounded there (expanding by any stationary-point extremum and the
// stroke half-width), and the resulting rectangle is rotated back.
//
// The caller must supply a non-degenerate curve (NewQuadCurve guarantees a
// usable chord).
func CurveQuad(q QuadCurve, thickness float64) Quad {
	chord := q.P2.Sub(q.P0)
	ndir := chord.Normalize()

	// sin/cos of the angle between the chord and the x-axis, from the dot
	// and wedge products with (1, 0).
	cosb := ndir.X
	sinb := ndir.Y

	// Rotate P1 and P2 into the chord frame relative to P0. P0 maps to the
	// origin by construction, P2 onto the positive x-axis.
	p1r := rotateInto(q.P1.Sub(q.P0), cosb, sinb)
	p2r := rotateInto(chord, cosb, sinb)

	minC := Vec2{X: math.Min(0, p2r.X), Y: math.Min(0, p2r.Y)}
	maxC := Vec2{X: math.Max(0, p2r.X), Y: math.Max(0, p2r.Y)}

	// A control point outside the endpoint box means the curve has an
	// extremum on that axis. Solve the stationary-point equation
	// t* = (p0 − p1) / (p0 − 2p1 + p2) per axis and expand the box by the
	// curve point there.
	if p1r.X < minC.X || p1r.X > maxC.X {
		t := clamp01(stationaryT(0, p1r.X, p2r.X))
		x := quadBezier1D(0, p1r.X, p2r.X, t)
		minC.X = math.Min(minC.X, x)
		maxC.X = math.Max(maxC.X, x)
	}
	if p1r.Y < minC.Y || p1r.Y > maxC.Y {
		t := clamp01(stationaryT(0, p1r.Y, p2r.Y))
		y := quadBezier1D(0, p1r.Y, p2r.Y, t)
		minC.Y = math.Min(minC.Y, y)
		maxC.Y = math.Max(maxC.Y, y)
	}

	// Expand uniformly by the stroke half-width.
	minC.X -= thickness
	minC.Y -= thickness
	maxC.X += thickness
	maxC.Y += thickness

	// Rotate the frame-aligned corners back to world space.
	quad := Quad{
		q.P0.Add(rotateFrom(Vec2{minC.X, minC.Y}, cosb, sinb)),
		q.P0.Add(rotateFrom(Vec2{maxC.X, minC.Y}, cosb, sinb)),
		q.P0.Add(rotateFrom(Vec2{maxC.X, maxC.Y}, cosb, sinb)),
		q.P0.Add(rotateFrom(Vec2{minC.X, maxC.Y}, cosb, sinb)),
	}

	// The rotate-expand-rotate-back sequence accumulates rounding error, so
	// the long edges may deviate slightly from the chord direction. Split
	// the perpendicular residual of each edge symmetrically between its two
	// corners so the edges align exactly with ndir.
	alignEdge(&quad[0], &quad[1], ndir)
	alignEdge(&quad[3], &quad[2], ndir)
	return quad
}

// alignEdge symmetrically offsets a and b so that the edge a->b is exactly
// parallel to dir (a unit vector).
func alignEdge(a, b *Point, dir Vec2) {
	e := b.Sub(*a)
	resid := e.Sub(dir.Mul(e.Dot(dir)))
	half := resid.Mul(0.5)
	*a = a.Add(half)
	*b = b.Add(half.Neg())
}

// Contains reports whether p lies inside the quad (within eps of it).
// The quad must be counter-clockwise, as produced by the builders.
func (q Quad) Contains(p Point, eps float64) bool {
	for i := 0; i < 4; i++ {
		edge := q[(i+1)%4].Sub(q[i])
		if edge.Cross(p.Sub(q[i])) < -eps {
			return false
		}
	}
	return true
}

// Bounds returns the axis-aligned bounding box of the quad's corners.
func (q Quad) Bounds() (minP, maxP Point) {
	minP, maxP = q[0], q[0]
	for _, c := range q[1:] {
		minP.X = math.Min(minP.X, c.X)
		minP.Y = math.Min(minP.Y, c.Y)
		maxP.X = math.Max(maxP.X, c.X)
		maxP.Y = math.Max(maxP.Y, c.Y)
	}
	return minP, maxP
}

// rotateInto rotates v by the inverse of the angle whose cosine/sine are
// cosb/sinb, mapping the chord direction onto the x-axis.
func rotateInto(v Vec2, cosb, sinb float64) Vec2 {
	return Vec2{
		X: v.X*cosb + v.Y*sinb,
		Y: -v.X*sinb + v.Y*cosb,
	}
}

// rotateFrom rotates v from the chord frame back to world space.
func rotateFrom(v Vec2, cosb, sinb float64) Vec2 {
	return Vec2{
		X: v.X*cosb - v.Y*sinb,
		Y: v.X*sinb + v.Y*cosb,
	}
}

// stationaryT returns the parameter of the 1D quadratic Bezier stationary
// point, t* = (p0 − p1) / (p0 − 2p1 + p2). The denominator is nonzero
// whenever p1 lies strictly outside [p0, p2], which is the only case the
// builder calls it in.
func stationaryT(p0, p1, p2 float64) float64 {
	return (p0 - p1) / (p0 - 2*p1 + p2)
}

// quadBezier1D evaluates a 1D quadratic Bezier.
func quadBezier1D(p0, p1, p2, t float64) float64 {
	mt := 1 - t
	return mt*mt*p0 + 2*mt*t*p1 + t*t*p2
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
