package gpu

import "errors"

// Renderer errors.
var (
	// ErrNoBackend is returned when no GPU backend is registered.
	ErrNoBackend = errors.New("linework/gpu: no GPU backend available")

	// ErrNoAdapter is returned when the backend exposes no usable adapter.
	ErrNoAdapter = errors.New("linework/gpu: no GPU adapters found")

	// ErrNilDevice is returned when a device provider yields no HAL device.
	ErrNilDevice = errors.New("linework/gpu: device provider has no HAL device")

	// ErrRendererClosed is returned when rendering with a destroyed renderer.
	ErrRendererClosed = errors.New("linework/gpu: renderer is closed")

	// ErrEmptyBatch is returned when rendering an empty batch.
	ErrEmptyBatch = errors.New("linework/gpu: batch is empty")

	// ErrInvalidSize is returned for zero or negative target dimensions.
	ErrInvalidSize = errors.New("linework/gpu: invalid target size")
)
