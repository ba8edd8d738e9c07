// Package linework renders high-quality antialiased 2D strokes — straight
// line segments and quadratic Bezier curves — as quad geometry shaded with
// analytic signed distance fields.
//
// The CPU side of the pipeline is pure computation: primitives are
// validated, wrapped in minimal oriented bounding quads, and packed into
// growable vertex/index batches ready for GPU upload. The GPU side (package
// linework/gpu) rasterizes each quad with a fragment shader that evaluates
// the exact distance to the segment or curve and converts it to coverage
// with a resolution-independent smoothstep border.
//
// Basic usage:
//
//	var batch linework.SegmentBatch
//	err := batch.AddLine(linework.Pt(0, 0), linework.Pt(100, 40), 2,
//		linework.NewRGB(0.1, 0.1, 0.9), linework.CapFull)
//	if err != nil {
//		// degenerate input or batch full
//	}
//	// Hand batch.Vertices()/batch.Indices() to a renderer, or rasterize
//	// on the CPU with linework.RenderSegments.
//
// Draw order is insertion order: at shared joints the later-added primitive
// draws on top. Callers building polylines should use the cut cap kinds (or
// AddPolyline, which applies them) so that interior joints are not blended
// twice.
package linework
