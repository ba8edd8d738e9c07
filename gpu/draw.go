package gpu

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/linework"
)

// gpuWaitTimeout bounds the fence wait after submission.
const gpuWaitTimeout = 5 * time.Second

// RenderSegments draws a duplicated-vertex segment batch and reads the
// result back. The returned image is freshly allocated, transparent where
// nothing was drawn, with premultiplied source-over compositing in batch
// insertion order.
func (r *Renderer) RenderSegments(batch *linework.SegmentBatch, view View) (*image.RGBA, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrRendererClosed
	}
	if batch.Len() == 0 {
		return nil, ErrEmptyBatch
	}
	pipeline, err := r.pipelines.ensureSegment()
	if err != nil {
		return nil, err
	}
	return r.drawIndexed(pipeline, batch.VertexBytes(), batch.IndexBytes(), uint32(len(batch.Indices())), view)
}

// RenderCurves draws a duplicated-vertex curve batch and reads the result
// back.
func (r *Renderer) RenderCurves(batch *linework.CurveBatch, view View) (*image.RGBA, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrRendererClosed
	}
	if batch.Len() == 0 {
		return nil, ErrEmptyBatch
	}
	pipeline, err := r.pipelines.ensureCurve()
	if err != nil {
		return nil, err
	}
	return r.drawIndexed(pipeline, batch.VertexBytes(), batch.IndexBytes(), uint32(len(batch.Indices())), view)
}

// RenderSegmentsInstanced draws an instanced segment batch and reads the
// result back. Produces the same image as RenderSegments for equivalent
// input.
func (r *Renderer) RenderSegmentsInstanced(batch *linework.SegmentInstanceBatch, view View) (*image.RGBA, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrRendererClosed
	}
	if batch.Len() == 0 {
		return nil, ErrEmptyBatch
	}
	pipeline, err := r.pipelines.ensureSegmentInstance()
	if err != nil {
		return nil, err
	}
	return r.drawInstanced(pipeline, batch.InstanceBytes(), uint32(batch.Len()), view)
}

// RenderCurvesInstanced draws an instanced curve batch and reads the result
// back.
func (r *Renderer) RenderCurvesInstanced(batch *linework.CurveInstanceBatch, view View) (*image.RGBA, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrRendererClosed
	}
	if batch.Len() == 0 {
		return nil, ErrEmptyBatch
	}
	pipeline, err := r.pipelines.ensureCurveInstance()
	if err != nil {
		return nil, err
	}
	return r.drawInstanced(pipeline, batch.InstanceBytes(), uint32(batch.Len()), view)
}

// drawIndexed uploads vertex and index data, records an indexed draw, and
// reads the target back.
func (r *Renderer) drawIndexed(pipeline hal.RenderPipeline, vertexData, indexData []byte, indexCount uint32, view View) (*image.RGBA, error) {
	vertBuf, err := r.createAndUploadBuffer("stroke_vertices", vertexData,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	defer r.device.DestroyBuffer(vertBuf)

	idxBuf, err := r.createAndUploadBuffer("stroke_indices", indexData,
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	defer r.device.DestroyBuffer(idxBuf)

	return r.encodeSubmitReadback(pipeline, view, func(rp hal.RenderPassEncoder) {
		rp.SetVertexBuffer(0, vertBuf, 0)
		rp.SetIndexBuffer(idxBuf, gputypes.IndexFormatUint16, 0)
		rp.DrawIndexed(indexCount, 1, 0, 0, 0)
	})
}

// drawInstanced uploads instance data and records a six-vertex instanced
// draw; the vertex shader expands each instance to its quad corners.
func (r *Renderer) drawInstanced(pipeline hal.RenderPipeline, instanceData []byte, instanceCount uint32, view View) (*image.RGBA, error) {
	instBuf, err := r.createAndUploadBuffer("stroke_instances", instanceData,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	defer r.device.DestroyBuffer(instBuf)

	return r.encodeSubmitReadback(pipeline, view, func(rp hal.RenderPassEncoder) {
		rp.SetVertexBuffer(0, instBuf, 0)
		rp.Draw(6, instanceCount, 0, 0)
	})
}

// encodeSubmitReadback records the render pass with the given draw calls,
// copies the target texture to a staging buffer, submits, waits, and reads
// back pixels into a freshly allocated image.
func (r *Renderer) encodeSubmitReadback(pipeline hal.RenderPipeline, view View, record func(hal.RenderPassEncoder)) (*image.RGBA, error) {
	w, h := r.cfg.Width, r.cfg.Height

	uniformBuf, err := r.createAndUploadBuffer("stroke_uniforms",
		r.packUniforms(view),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	defer r.device.DestroyBuffer(uniformBuf)

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "stroke_bind",
		Layout: r.pipelines.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: strokeUniformSize,
			}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group: %w", err)
	}
	defer r.device.DestroyBindGroup(bindGroup)

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "stroke_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("stroke_frame"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "stroke_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       r.targetView,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
		}},
	})
	rp.SetPipeline(pipeline)
	rp.SetBindGroup(0, bindGroup, nil)
	record(rp)
	rp.End()

	// The pass leaves the target in render-attachment layout; the copy
	// needs transfer-source. Explicit barrier for Vulkan, no-op elsewhere.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.targetTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	// Staging copy with the 256-byte row alignment WebGPU and DX12 require.
	bytesPerRow := w * 4
	const copyPitchAlignment = 256
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	stagingBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "stroke_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer r.device.DestroyBuffer(stagingBuf)

	encoder.CopyTextureToBuffer(r.targetTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: r.targetTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	// Transition back so the next draw's render pass sees the expected
	// layout.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.targetTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	fence, err := r.device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := r.device.Wait(fence, 1, gpuWaitTimeout)
	if err != nil {
		return nil, fmt.Errorf("wait for GPU: %w", err)
	}
	if !fenceOK {
		return nil, fmt.Errorf("wait for GPU: timeout after %v", gpuWaitTimeout)
	}

	readback := make([]byte, stagingSize)
	if err := r.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}

	// Strip the row padding into a tightly packed image.
	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	for row := uint32(0); row < h; row++ {
		src := readback[row*alignedBytesPerRow:]
		dst := img.Pix[row*bytesPerRow:]
		copy(dst[:bytesPerRow], src[:bytesPerRow])
	}
	return img, nil
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (r *Renderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s buffer: %w", label, err)
	}
	r.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// packUniforms serializes the 80-byte uniform block: the column-major clip
// transform, the view scale, and the antialiasing border.
func (r *Renderer) packUniforms(view View) []byte {
	buf := make([]byte, strokeUniformSize)
	off := 0
	for _, v := range view.clipTransform(r.cfg.Width, r.cfg.Height) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(view.Scale))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(r.cfg.AABorder))
	// Remaining 8 bytes are padding for 16-byte uniform alignment.
	return buf
}
