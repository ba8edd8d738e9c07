package linework

import "errors"

// Errors reported by batch construction. All are synchronous and locally
// recoverable: the offending primitive is skipped and the batch keeps its
// previous contents.
var (
	// ErrDegeneratePrimitive is returned when a primitive has no usable
	// geometry: a segment with coincident endpoints, a curve with a
	// zero-length chord, a non-positive thickness, or non-finite
	// coordinates. Rejecting these here prevents NaN propagation through
	// the normalization steps downstream.
	ErrDegeneratePrimitive = errors.New("linework: degenerate primitive")

	// ErrBatchFull is returned when adding a primitive would exceed the
	// 16-bit index capacity of a batch (65532 vertices). The caller must
	// split the scene into multiple batches.
	ErrBatchFull = errors.New("linework: batch exceeds 16-bit index capacity")
)
