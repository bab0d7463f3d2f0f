package gpucore

// Adapter abstracts over the GPU backend used to draw a plot.
//
// This interface is the seam between the point renderer and the device:
// internal/gpu implements it on top of gogpu/wgpu HAL, tests implement it
// with an in-memory fake. Implementations must be safe for concurrent use.
//
// Resource lifecycle:
//   - Resources are created via Create* methods
//   - Resources must be explicitly destroyed via Destroy* methods
//   - Destroying a resource while in use is undefined behavior
//   - IDs become invalid after destruction and must not be reused
type Adapter interface {
	// === Capabilities ===

	// MaxBufferSize returns the maximum buffer size in bytes.
	MaxBufferSize() uint64

	// === Buffer Management ===

	// CreateBuffer creates a GPU buffer of size bytes.
	// Returns the buffer ID or an error if allocation fails.
	CreateBuffer(label string, size uint64, usage BufferUsage) (BufferID, error)

	// DestroyBuffer releases a GPU buffer.
	DestroyBuffer(id BufferID)

	// WriteBuffer writes data to a buffer at the given byte offset.
	// The data is copied before WriteBuffer returns.
	WriteBuffer(id BufferID, offset uint64, data []byte) error

	// === Pipeline Management ===

	// CreateRenderPipeline compiles the shader and creates the pipeline,
	// its layouts and its shader module.
	CreateRenderPipeline(desc *RenderPipelineDesc) (PipelineID, error)

	// DestroyRenderPipeline releases the pipeline and every object created
	// alongside it, in reverse creation order.
	DestroyRenderPipeline(id PipelineID)

	// CreateBindGroup binds a uniform buffer to the pipeline's group 0.
	CreateBindGroup(pipeline PipelineID, uniform BufferID, size uint64) (BindGroupID, error)

	// DestroyBindGroup releases a bind group.
	DestroyBindGroup(id BindGroupID)

	// === Command Recording and Execution ===

	// EncodeFrame records, submits and waits for one render pass.
	// All writes issued before EncodeFrame are visible to its draw.
	EncodeFrame(pass *RenderPass) error
}
