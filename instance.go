package linework

import (
	"fmt"
	"unsafe"

	"golang.org/x/image/math/f32"
)

// Instanced packing: one record per primitive instead of four duplicated
// vertices. The vertex shader indexes the corner array with the vertex
// index of a fixed six-vertex draw, so no index buffer is needed either.
// For large batches this cuts upload size to roughly a quarter.

// SegmentInstance is the packed per-instance record of the instanced
// segment layout. Corners holds the bounding quad in the same order
// SegmentQuad produces; the shader reconstructs the local frame from
// StartEnd and Thickness.
type SegmentInstance struct {
	Corners   [4]f32.Vec2
	StartEnd  f32.Vec4 // start.xy, end.xy
	Thickness float32
	Cap       uint32
	Color     f32.Vec4
}

// CurveInstance is the packed per-instance record of the instanced
// curve layout.
type CurveInstance struct {
	Corners   [4]f32.Vec2
	P0P1      f32.Vec4 // p0.xy, p1.xy
	P2        f32.Vec2
	Thickness float32
	Color     f32.Vec4
}

// SegmentInstanceBatch accumulates segments in the instanced layout.
// The zero value is ready to use.
type SegmentInstanceBatch struct {
	inst []SegmentInstance
}

// Add packs one segment as a single instance record.
func (b *SegmentInstanceBatch) Add(s Segment) error {
	if len(b.inst) >= MaxBatchPrimitives {
		return fmt.Errorf("%w: %d segments", ErrBatchFull, len(b.inst))
	}

	quad := SegmentQuad(s)
	start, end := s.Start(), s.End()
	b.inst = append(b.inst, SegmentInstance{
		Corners: [4]f32.Vec2{
			vec2f(quad[0]), vec2f(quad[1]), vec2f(quad[2]), vec2f(quad[3]),
		},
		StartEnd: f32.Vec4{
			float32(start.X), float32(start.Y),
			float32(end.X), float32(end.Y),
		},
		Thickness: float32(s.Thickness),
		Cap:       uint32(s.Cap),
		Color:     colorVec4(s.Color),
	})
	return nil
}

// AddLine validates and packs a segment built from two endpoints.
func (b *SegmentInstanceBatch) AddLine(start, end Point, thickness float64, col RGB, capKind CapKind) error {
	s, err := NewSegment(start, end, thickness, col, capKind)
	if err != nil {
		return err
	}
	return b.Add(s)
}

// AddPolyline packs one segment per consecutive point pair, cutting the
// start cap of every segment after the first. See SegmentBatch.AddPolyline.
func (b *SegmentInstanceBatch) AddPolyline(points []Point, thickness float64, col RGB) error {
	capKind := CapFull
	for i := 1; i < len(points); i++ {
		err := b.AddLine(points[i-1], points[i], thickness, col, capKind)
		switch {
		case err == nil:
			capKind = CapCutStart
		case isDegenerate(err):
			continue
		default:
			return err
		}
	}
	return nil
}

// Reset clears the batch, retaining allocated capacity.
func (b *SegmentInstanceBatch) Reset() { b.inst = b.inst[:0] }

// Len returns the number of packed segments.
func (b *SegmentInstanceBatch) Len() int { return len(b.inst) }

// Instances exposes the accumulated instance records by reference.
func (b *SegmentInstanceBatch) Instances() []SegmentInstance { return b.inst }

// InstanceBytes returns the instance data as raw bytes for GPU upload.
func (b *SegmentInstanceBatch) InstanceBytes() []byte {
	return sliceBytes(b.inst, unsafe.Sizeof(SegmentInstance{}))
}

// CurveInstanceBatch accumulates quadratic Bezier strokes in the instanced
// layout. The zero value is ready to use.
type CurveInstanceBatch struct {
	inst []CurveInstance
}

// Add packs one curve as a single instance record.
func (b *CurveInstanceBatch) Add(q QuadCurve, thickness float64, col RGB) error {
	if len(b.inst) >= MaxBatchPrimitives {
		return fmt.Errorf("%w: %d curves", ErrBatchFull, len(b.inst))
	}
	if !(thickness > 0) || !isFinite(thickness) {
		return fmt.Errorf("%w: thickness %v", ErrDegeneratePrimitive, thickness)
	}

	quad := CurveQuad(q, thickness)
	b.inst = append(b.inst, CurveInstance{
		Corners: [4]f32.Vec2{
			vec2f(quad[0]), vec2f(quad[1]), vec2f(quad[2]), vec2f(quad[3]),
		},
		P0P1: f32.Vec4{
			float32(q.P0.X), float32(q.P0.Y),
			float32(q.P1.X), float32(q.P1.Y),
		},
		P2:        vec2f(q.P2),
		Thickness: float32(thickness),
		Color:     colorVec4(col),
	})
	return nil
}

// AddCurve validates and packs a curve built from three control points.
func (b *CurveInstanceBatch) AddCurve(p0, p1, p2 Point, thickness float64, col RGB) error {
	q, err := NewQuadCurve(p0, p1, p2)
	if err != nil {
		return err
	}
	return b.Add(q, thickness, col)
}

// Reset clears the batch, retaining allocated capacity.
func (b *CurveInstanceBatch) Reset() { b.inst = b.inst[:0] }

// Len returns the number of packed curves.
func (b *CurveInstanceBatch) Len() int { return len(b.inst) }

// Instances exposes the accumulated instance records by reference.
func (b *CurveInstanceBatch) Instances() []CurveInstance { return b.inst }

// InstanceBytes returns the instance data as raw bytes for GPU upload.
func (b *CurveInstanceBatch) InstanceBytes() []byte {
	return sliceBytes(b.inst, unsafe.Sizeof(CurveInstance{}))
}
