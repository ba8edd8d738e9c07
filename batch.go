package linework

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/image/math/f32"
)

// Batches accumulate packed per-primitive geometry for upload to a
// rendering backend. Each primitive kind has its own batch because the
// attribute layouts and shaders differ; a batch never mixes kinds.
//
// Two packing strategies are provided behind the common Batch interface:
//
//   - The duplicated-vertex batches (SegmentBatch, CurveBatch) emit four
//     vertices per primitive, each carrying the corner position plus the
//     full replicated shading parameters, with the fixed two-triangle index
//     pattern [0,1,2, 2,3,0]. This works on any fixed-function pipeline.
//   - The instanced batches (SegmentInstanceBatch, CurveInstanceBatch) emit
//     a single record per primitive; the vertex shader selects corners by
//     vertex index. Use these on backends with per-instance attributes.
//
// Both strategies share the same bounding-quad builder, so switching between
// them changes only the upload format, never the rendered result.
//
// Draw order is insertion order. The renderer must preserve it: at shared
// joints the later-inserted primitive overwrites the earlier one, which is
// what the cut cap policy relies on. This is a caller contract, not
// something the batch enforces.

// MaxBatchPrimitives is the maximum number of primitives per batch,
// bounded by 16-bit indices: 16383 quads × 4 vertices = 65532 ≤ 65535.
const MaxBatchPrimitives = 16383

// quadIndexPattern is the two-triangle index pattern emitted per primitive.
var quadIndexPattern = [6]uint16{0, 1, 2, 2, 3, 0}

// Batch is the interface common to all primitive batches.
type Batch interface {
	// Reset clears the batch, retaining allocated capacity.
	Reset()
	// Len returns the number of packed primitives.
	Len() int
}

// SegmentVertex is the packed per-vertex record of the duplicated-vertex
// segment layout. All fields except Pos and Local are replicated across the
// four vertices of a primitive. Field order matches the attribute layout of
// the segment shader; the struct has no implicit padding.
type SegmentVertex struct {
	// Pos is the world-space corner position of the bounding quad.
	Pos f32.Vec2

	// Local is the corner position in the quad's local frame: X across the
	// stroke width in half-width units (±1 at the long edges), Y along the
	// axis in chord-length units (±0.5 exactly at the endpoints). The
	// interpolated Local.Y drives the cut-cap discard.
	Local f32.Vec2

	// Start and End are the segment endpoints.
	Start f32.Vec2
	End   f32.Vec2

	// Thickness is the stroke half-width.
	Thickness float32

	// Cap is the CapKind as a small integer attribute.
	Cap uint32

	// Color is the opaque stroke color; the alpha lane is always 1.
	Color f32.Vec4
}

// CurveVertex is the packed per-vertex record of the duplicated-vertex
// curve layout. The shader derives all geometry from the three control
// points, so no direction field is carried.
type CurveVertex struct {
	Pos        f32.Vec2
	P0, P1, P2 f32.Vec2
	Thickness  float32
	Color      f32.Vec4
}

// SegmentBatch accumulates segments in the duplicated-vertex layout.
// The zero value is ready to use. A batch exclusively owns its buffers;
// primitives are copied in, never retained.
type SegmentBatch struct {
	verts []SegmentVertex
	idx   []uint16
}

// Add packs one segment (bounding quad plus replicated shading parameters)
// and appends it to the batch.
func (b *SegmentBatch) Add(s Segment) error {
	if len(b.verts)/4 >= MaxBatchPrimitives {
		return fmt.Errorf("%w: %d segments", ErrBatchFull, len(b.verts)/4)
	}

	quad := SegmentQuad(s)
	locals := segmentLocals(s)
	start, end := s.Start(), s.End()
	base := uint16(len(b.verts))
	for i := 0; i < 4; i++ {
		b.verts = append(b.verts, SegmentVertex{
			Pos:       vec2f(quad[i]),
			Local:     locals[i],
			Start:     vec2f(start),
			End:       vec2f(end),
			Thickness: float32(s.Thickness),
			Cap:       uint32(s.Cap),
			Color:     colorVec4(s.Color),
		})
	}
	for _, j := range quadIndexPattern {
		b.idx = append(b.idx, base+j)
	}
	return nil
}

// AddLine validates and packs a segment built from two endpoints.
func (b *SegmentBatch) AddLine(start, end Point, thickness float64, col RGB, capKind CapKind) error {
	s, err := NewSegment(start, end, thickness, col, capKind)
	if err != nil {
		return err
	}
	return b.Add(s)
}

// AddPolyline packs one segment per consecutive point pair. Every segment
// after the first uses CapCutStart so interior joints are covered exactly
// once: the earlier segment's full end cap fills the joint and the later
// segment's start is cut at it. Degenerate pairs (repeated points) are
// skipped. Returns ErrBatchFull if the polyline does not fit; segments
// packed before the failure remain in the batch.
func (b *SegmentBatch) AddPolyline(points []Point, thickness float64, col RGB) error {
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
func (b *SegmentBatch) Reset() {
	b.verts = b.verts[:0]
	b.idx = b.idx[:0]
}

// Len returns the number of packed segments.
func (b *SegmentBatch) Len() int { return len(b.verts) / 4 }

// Vertices exposes the accumulated vertex records by reference.
// The slice is invalidated by the next Add or Reset.
func (b *SegmentBatch) Vertices() []SegmentVertex { return b.verts }

// Indices exposes the accumulated 16-bit indices by reference.
func (b *SegmentBatch) Indices() []uint16 { return b.idx }

// VertexBytes returns the vertex data as raw little-endian bytes for GPU
// upload, without copying.
func (b *SegmentBatch) VertexBytes() []byte {
	return sliceBytes(b.verts, unsafe.Sizeof(SegmentVertex{}))
}

// IndexBytes returns the index data as raw bytes for GPU upload.
func (b *SegmentBatch) IndexBytes() []byte {
	return sliceBytes(b.idx, unsafe.Sizeof(uint16(0)))
}

// CurveBatch accumulates quadratic Bezier strokes in the duplicated-vertex
// layout. The zero value is ready to use.
type CurveBatch struct {
	verts []CurveVertex
	idx   []uint16
}

// Add packs one curve at the given stroke half-width.
func (b *CurveBatch) Add(q QuadCurve, thickness float64, col RGB) error {
	if len(b.verts)/4 >= MaxBatchPrimitives {
		return fmt.Errorf("%w: %d curves", ErrBatchFull, len(b.verts)/4)
	}
	if !(thickness > 0) || !isFinite(thickness) {
		return fmt.Errorf("%w: thickness %v", ErrDegeneratePrimitive, thickness)
	}

	quad := CurveQuad(q, thickness)
	base := uint16(len(b.verts))
	for i := 0; i < 4; i++ {
		b.verts = append(b.verts, CurveVertex{
			Pos:       vec2f(quad[i]),
			P0:        vec2f(q.P0),
			P1:        vec2f(q.P1),
			P2:        vec2f(q.P2),
			Thickness: float32(thickness),
			Color:     colorVec4(col),
		})
	}
	for _, j := range quadIndexPattern {
		b.idx = append(b.idx, base+j)
	}
	return nil
}

// AddCurve validates and packs a curve built from three control points.
func (b *CurveBatch) AddCurve(p0, p1, p2 Point, thickness float64, col RGB) error {
	q, err := NewQuadCurve(p0, p1, p2)
	if err != nil {
		return err
	}
	return b.Add(q, thickness, col)
}

// Reset clears the batch, retaining allocated capacity.
func (b *CurveBatch) Reset() {
	b.verts = b.verts[:0]
	b.idx = b.idx[:0]
}

// Len returns the number of packed curves.
func (b *CurveBatch) Len() int { return len(b.verts) / 4 }

// Vertices exposes the accumulated vertex records by reference.
func (b *CurveBatch) Vertices() []CurveVertex { return b.verts }

// Indices exposes the accumulated 16-bit indices by reference.
func (b *CurveBatch) Indices() []uint16 { return b.idx }

// VertexBytes returns the vertex data as raw bytes for GPU upload.
func (b *CurveBatch) VertexBytes() []byte {
	return sliceBytes(b.verts, unsafe.Sizeof(CurveVertex{}))
}

// IndexBytes returns the index data as raw bytes for GPU upload.
func (b *CurveBatch) IndexBytes() []byte {
	return sliceBytes(b.idx, unsafe.Sizeof(uint16(0)))
}

// Compile-time interface checks.
var (
	_ Batch = (*SegmentBatch)(nil)
	_ Batch = (*CurveBatch)(nil)
	_ Batch = (*SegmentInstanceBatch)(nil)
	_ Batch = (*CurveInstanceBatch)(nil)
)

// segmentLocals returns the per-corner local coordinates matching the
// corner order of SegmentQuad: Y spans ±(0.5 + thickness/length) across the
// extended quad so that the interpolated value is ±0.5 exactly at the
// segment endpoints.
func segmentLocals(s Segment) [4]f32.Vec2 {
	ymax := float32(0.5 + s.Thickness/s.Length())
	return [4]f32.Vec2{
		{-1, -ymax},
		{-1, ymax},
		{1, ymax},
		{1, -ymax},
	}
}

func vec2f(p Point) f32.Vec2 {
	return f32.Vec2{float32(p.X), float32(p.Y)}
}

func colorVec4(c RGB) f32.Vec4 {
	return f32.Vec4{float32(c.R), float32(c.G), float32(c.B), 1}
}

// sliceBytes reinterprets a slice of fixed-layout records as raw bytes.
// The record types carry only 4-byte (or smaller) fields, so there is no
// implicit padding and the in-memory layout equals the GPU buffer layout.
func sliceBytes[T any](s []T, size uintptr) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), uintptr(len(s))*size)
}

func isDegenerate(err error) bool {
	return errors.Is(err, ErrDegeneratePrimitive)
}
