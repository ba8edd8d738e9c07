package gpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan" // register the Vulkan backend

	"github.com/gogpu/linework"
)

// Renderer draws linework batches into an offscreen texture and reads the
// result back as an image. It owns the render pipelines and the target
// texture; batches are uploaded per draw call.
//
// A Renderer is safe for concurrent use; draw calls are serialized.
type Renderer struct {
	mu sync.Mutex

	device hal.Device
	queue  hal.Queue

	// Set when the renderer created the device itself and must destroy it.
	ownsDevice bool
	instance   hal.Instance

	cfg       Config
	pipelines *strokePipelines

	// Offscreen render target.
	targetTex  hal.Texture
	targetView hal.TextureView

	closed bool
}

// New creates a renderer with its own GPU device, selecting a discrete or
// integrated adapter from the Vulkan backend. The caller must Destroy the
// renderer to release the device.
func New(cfg Config) (*Renderer, error) {
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, cfg.Width, cfg.Height)
	}
	cfg = cfg.withDefaults()

	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, ErrNoBackend
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}

	r := &Renderer{
		device:     openDev.Device,
		queue:      openDev.Queue,
		ownsDevice: true,
		instance:   instance,
		cfg:        cfg,
	}
	if err := r.initResources(); err != nil {
		r.Destroy()
		return nil, err
	}
	linework.Logger().Info("linework/gpu: renderer initialized",
		"adapter", selected.Info.Name,
		"width", cfg.Width, "height", cfg.Height)
	return r, nil
}

// NewWithDevice creates a renderer on a shared GPU device. The provider is
// typically a gogpu context implementing DeviceHandle; it must expose the
// underlying wgpu HAL device and queue. The renderer does not take ownership
// of the device, only of the resources it creates on it.
func NewWithDevice(provider any, cfg Config) (*Renderer, error) {
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, cfg.Width, cfg.Height)
	}
	cfg = cfg.withDefaults()

	device, queue, err := halFromProvider(provider)
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		device: device,
		queue:  queue,
		cfg:    cfg,
	}
	if err := r.initResources(); err != nil {
		r.Destroy()
		return nil, err
	}
	linework.Logger().Debug("linework/gpu: renderer attached to shared device",
		"width", cfg.Width, "height", cfg.Height)
	return r, nil
}

// initResources creates the pipelines container and the render target.
func (r *Renderer) initResources() error {
	pipelines, err := newStrokePipelines(r.device, r.cfg.Format)
	if err != nil {
		return err
	}
	r.pipelines = pipelines

	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label: "stroke_target",
		Size: hal.Extent3D{
			Width:              r.cfg.Width,
			Height:             r.cfg.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        r.cfg.Format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create target texture: %w", err)
	}
	r.targetTex = tex

	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "stroke_target_view",
		Format:        r.cfg.Format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		return fmt.Errorf("create target view: %w", err)
	}
	r.targetView = view
	return nil
}

// Config returns the renderer configuration.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Destroy releases all GPU resources held by the renderer, including the
// device when the renderer created it. Safe to call multiple times.
func (r *Renderer) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true

	if r.targetView != nil {
		r.device.DestroyTextureView(r.targetView)
		r.targetView = nil
	}
	if r.targetTex != nil {
		r.device.DestroyTexture(r.targetTex)
		r.targetTex = nil
	}
	if r.pipelines != nil {
		r.pipelines.destroy()
		r.pipelines = nil
	}
	if r.ownsDevice {
		if r.device != nil {
			r.device.Destroy()
		}
		if r.instance != nil {
			r.instance.Destroy()
		}
	}
	r.device = nil
	r.queue = nil
	r.instance = nil
}
