package gpu

import "errors"

// Errors returned by the point renderer. Callers outside this package
// classify them with errors.Is.
var (
	// ErrBufferAlloc is returned when the device cannot allocate a buffer.
	ErrBufferAlloc = errors.New("gpu: buffer allocation failed")

	// ErrBufferTooLarge is returned when a point buffer would exceed the
	// device's maximum buffer size.
	ErrBufferTooLarge = errors.New("gpu: point buffer exceeds device limit")

	// ErrBufferWrite is returned when data could not be written to a
	// device buffer.
	ErrBufferWrite = errors.New("gpu: buffer write failed")

	// ErrShaderCompile is returned when the point shader fails validation.
	ErrShaderCompile = errors.New("gpu: shader compilation failed")

	// ErrPipelineInit is returned when the render pipeline or its bindings
	// cannot be created.
	ErrPipelineInit = errors.New("gpu: pipeline creation failed")

	// ErrInvalidState is returned when a pipeline operation is not allowed
	// in the current state.
	ErrInvalidState = errors.New("gpu: invalid pipeline state")

	// ErrInvalidTarget is returned when a frame target is not a texture view
	// the adapter understands.
	ErrInvalidTarget = errors.New("gpu: invalid render target")

	// ErrUnknownResource is returned when an ID does not name a live resource.
	ErrUnknownResource = errors.New("gpu: unknown resource id")

	// ErrSubmit is returned when a frame could not be submitted or did not
	// complete.
	ErrSubmit = errors.New("gpu: frame submission failed")
)
