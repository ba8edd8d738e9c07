// Package gpu renders linework batches on the GPU through gogpu/wgpu.
//
// The renderer draws each primitive as an instanced bounding quad and
// evaluates the stroke's signed distance field analytically in the fragment
// shader, so antialiasing needs no multisampling: coverage is derived from
// the exact distance to the stroke boundary, with a screen-constant border
// that stays one pixel wide at any zoom.
//
// A Renderer can create its own GPU device (New) or attach to a device
// shared with a host application (NewWithDevice), following the gpucontext
// DeviceProvider convention.
//
// Two upload formats are supported, matching the two batch families in the
// parent package: duplicated-vertex batches use indexed drawing, instanced
// batches use per-instance attributes with a fixed six-vertex draw. Both
// produce identical images.
package gpu
