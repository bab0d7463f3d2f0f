package gpucore

// Resource IDs
//
// These opaque IDs represent GPU resources. Each adapter implementation
// maintains a mapping between IDs and actual backend resources.

// BufferID is an opaque handle to a GPU buffer.
type BufferID uint64

// PipelineID is an opaque handle to a render pipeline together with the
// shader module and layouts it was built from.
type PipelineID uint64

// BindGroupID is an opaque handle to a bind group.
type BindGroupID uint64

// InvalidID is the zero value, representing an invalid/null resource.
const InvalidID = 0

// BufferUsage is a bitmask specifying how a buffer will be used.
type BufferUsage uint32

// Buffer usage flags.
const (
	// BufferUsageCopyDst indicates the buffer can be written by the queue.
	BufferUsageCopyDst BufferUsage = 1 << 3

	// BufferUsageVertex indicates the buffer can be bound as a vertex or
	// instance buffer.
	BufferUsageVertex BufferUsage = 1 << 5

	// BufferUsageUniform indicates the buffer can be used as a uniform buffer.
	BufferUsageUniform BufferUsage = 1 << 6
)

// RenderPipelineDesc describes a single-target render pipeline with one
// per-instance vertex buffer and one uniform buffer at group 0, binding 0.
type RenderPipelineDesc struct {
	// Label is an optional debug label.
	Label string

	// WGSL is the shader source. Both entry points live in it.
	WGSL string

	// VertexEntry and FragmentEntry name the shader entry points.
	VertexEntry   string
	FragmentEntry string

	// InstanceStride is the byte stride of one record in the instance buffer.
	// Each record exposes a float32x2 at shader location 0.
	InstanceStride uint64

	// UniformSize is the byte size of the uniform block.
	UniformSize uint64
}

// RenderPass describes one frame: clear the target, then issue a single
// instanced draw.
type RenderPass struct {
	// Target is the backend texture view to render into (for the HAL
	// adapter, a hal.TextureView obtained from the window surface).
	Target any

	// Clear is the straight-alpha RGBA clear color.
	Clear [4]float64

	Pipeline     PipelineID
	BindGroup    BindGroupID
	VertexBuffer BufferID

	// VertexCount is the number of vertices per instance.
	VertexCount uint32

	// InstanceCount is the number of instances (points) to draw.
	InstanceCount uint32
}
