package gpu

import _ "embed"

// Embedded WGSL shader sources, one per pipeline. The sources are compiled
// to SPIR-V through gogpu/naga when the pipeline is created; embedding the
// WGSL (rather than precompiled blobs) keeps the sources inspectable and
// testable without a GPU.

//go:embed shaders/segment.wgsl
var segmentShaderSource string

//go:embed shaders/curve.wgsl
var curveShaderSource string

//go:embed shaders/segment_instanced.wgsl
var segmentInstancedShaderSource string

//go:embed shaders/curve_instanced.wgsl
var curveInstancedShaderSource string
