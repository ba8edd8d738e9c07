package gpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// DeviceHandle provides GPU device access from a host application.
//
// This is the integration point between linework and GPU frameworks like
// gogpu: the host implements DeviceHandle and passes it to NewWithDevice,
// and the renderer uses the shared device instead of creating its own.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing a
// linework-specific name for the interface while staying compatible with
// the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// halFromProvider extracts the wgpu HAL device and queue from a provider.
// The provider must additionally implement HalDevice() any and HalQueue()
// any returning hal.Device and hal.Queue; gogpu contexts do.
func halFromProvider(provider any) (hal.Device, hal.Queue, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, fmt.Errorf("%w: provider does not expose HAL types", ErrNilDevice)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNilDevice)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNilDevice)
	}
	return device, queue, nil
}
