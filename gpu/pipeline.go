package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// Vertex strides in bytes. Each must match both the Go record layout in the
// parent package and the VertexInput struct of the corresponding shader.
const (
	segmentVertexStride   = 56
	curveVertexStride     = 52
	segmentInstanceStride = 72
	curveInstanceStride   = 76
)

// strokeUniformSize is the byte size of the shared uniform buffer.
// Layout: transform (mat4x4<f32>) = 64 bytes + scale (f32) + border (f32) +
// padding (vec2<f32>) = 80 bytes.
const strokeUniformSize = 80

// strokePipelines owns the shader modules, layouts, and the four render
// pipelines (segment/curve, duplicated/instanced). All four share one bind
// group layout with a single uniform binding.
//
// Pipelines are created lazily on first use, so a renderer that only ever
// draws segments never compiles the curve shaders.
type strokePipelines struct {
	device hal.Device
	format gputypes.TextureFormat

	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout

	segment         pipelinePair
	curve           pipelinePair
	segmentInstance pipelinePair
	curveInstance   pipelinePair
}

// pipelinePair couples a render pipeline with its shader module so both can
// be destroyed together.
type pipelinePair struct {
	shader   hal.ShaderModule
	pipeline hal.RenderPipeline
}

func newStrokePipelines(device hal.Device, format gputypes.TextureFormat) (*strokePipelines, error) {
	p := &strokePipelines{device: device, format: format}

	uniformLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "stroke_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create stroke uniform layout: %w", err)
	}
	p.uniformLayout = uniformLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "stroke_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout},
	})
	if err != nil {
		device.DestroyBindGroupLayout(uniformLayout)
		return nil, fmt.Errorf("create stroke pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	return p, nil
}

// ensureSegment returns the duplicated-vertex segment pipeline, creating it
// on first call.
func (p *strokePipelines) ensureSegment() (hal.RenderPipeline, error) {
	return p.ensure(&p.segment, "stroke_segment", segmentShaderSource, segmentVertexLayout())
}

// ensureCurve returns the duplicated-vertex curve pipeline.
func (p *strokePipelines) ensureCurve() (hal.RenderPipeline, error) {
	return p.ensure(&p.curve, "stroke_curve", curveShaderSource, curveVertexLayout())
}

// ensureSegmentInstance returns the instanced segment pipeline.
func (p *strokePipelines) ensureSegmentInstance() (hal.RenderPipeline, error) {
	return p.ensure(&p.segmentInstance, "stroke_segment_inst", segmentInstancedShaderSource, segmentInstanceLayout())
}

// ensureCurveInstance returns the instanced curve pipeline.
func (p *strokePipelines) ensureCurveInstance() (hal.RenderPipeline, error) {
	return p.ensure(&p.curveInstance, "stroke_curve_inst", curveInstancedShaderSource, curveInstanceLayout())
}

func (p *strokePipelines) ensure(pair *pipelinePair, label, source string, buffers []gputypes.VertexBufferLayout) (hal.RenderPipeline, error) {
	if pair.pipeline != nil {
		return pair.pipeline, nil
	}

	spirv, err := compileShader(source)
	if err != nil {
		return nil, fmt.Errorf("compile %s shader: %w", label, err)
	}
	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label + "_shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s shader module: %w", label, err)
	}

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label + "_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		p.device.DestroyShaderModule(shader)
		return nil, fmt.Errorf("create %s pipeline: %w", label, err)
	}

	pair.shader = shader
	pair.pipeline = pipeline
	return pipeline, nil
}

// destroy releases all pipeline resources in reverse creation order. Safe
// to call multiple times.
func (p *strokePipelines) destroy() {
	if p.device == nil {
		return
	}
	for _, pair := range []*pipelinePair{&p.curveInstance, &p.segmentInstance, &p.curve, &p.segment} {
		if pair.pipeline != nil {
			p.device.DestroyRenderPipeline(pair.pipeline)
			pair.pipeline = nil
		}
		if pair.shader != nil {
			p.device.DestroyShaderModule(pair.shader)
			pair.shader = nil
		}
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.uniformLayout != nil {
		p.device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
}

// compileShader compiles WGSL source to SPIR-V words via naga.
// SPIR-V is little-endian 32-bit words.
func compileShader(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, err
	}
	spirv := make([]uint32, len(spirvBytes)/4)
	for i := range spirv {
		spirv[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirv, nil
}

// segmentVertexLayout matches VertexInput in segment.wgsl and the
// SegmentVertex record: pos, local, start, end, thickness, cap, color.
func segmentVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: segmentVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // pos
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},  // local
				{Format: gputypes.VertexFormatFloat32x2, Offset: 16, ShaderLocation: 2}, // start
				{Format: gputypes.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 3}, // end
				{Format: gputypes.VertexFormatFloat32, Offset: 32, ShaderLocation: 4},   // thickness
				{Format: gputypes.VertexFormatUint32, Offset: 36, ShaderLocation: 5},    // cap
				{Format: gputypes.VertexFormatFloat32x4, Offset: 40, ShaderLocation: 6}, // color
			},
		},
	}
}

// curveVertexLayout matches VertexInput in curve.wgsl and the CurveVertex
// record: pos, p0, p1, p2, thickness, color.
func curveVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: curveVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // pos
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},  // p0
				{Format: gputypes.VertexFormatFloat32x2, Offset: 16, ShaderLocation: 2}, // p1
				{Format: gputypes.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 3}, // p2
				{Format: gputypes.VertexFormatFloat32, Offset: 32, ShaderLocation: 4},   // thickness
				{Format: gputypes.VertexFormatFloat32x4, Offset: 36, ShaderLocation: 5}, // color
			},
		},
	}
}

// segmentInstanceLayout matches InstanceInput in segment_instanced.wgsl and
// the SegmentInstance record.
func segmentInstanceLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: segmentInstanceStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // corner 0
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},  // corner 1
				{Format: gputypes.VertexFormatFloat32x2, Offset: 16, ShaderLocation: 2}, // corner 2
				{Format: gputypes.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 3}, // corner 3
				{Format: gputypes.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 4}, // start_end
				{Format: gputypes.VertexFormatFloat32, Offset: 48, ShaderLocation: 5},   // thickness
				{Format: gputypes.VertexFormatUint32, Offset: 52, ShaderLocation: 6},    // cap
				{Format: gputypes.VertexFormatFloat32x4, Offset: 56, ShaderLocation: 7}, // color
			},
		},
	}
}

// curveInstanceLayout matches InstanceInput in curve_instanced.wgsl and the
// CurveInstance record.
func curveInstanceLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: curveInstanceStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // corner 0
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},  // corner 1
				{Format: gputypes.VertexFormatFloat32x2, Offset: 16, ShaderLocation: 2}, // corner 2
				{Format: gputypes.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 3}, // corner 3
				{Format: gputypes.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 4}, // p0p1
				{Format: gputypes.VertexFormatFloat32x2, Offset: 48, ShaderLocation: 5}, // p2
				{Format: gputypes.VertexFormatFloat32, Offset: 56, ShaderLocation: 6},   // thickness
				{Format: gputypes.VertexFormatFloat32x4, Offset: 60, ShaderLocation: 7}, // color
			},
		},
	}
}
