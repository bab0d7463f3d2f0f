package gpu

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/scatter/internal/gpucore"
)

// PipelineState is the lifecycle state of a PointPipeline.
type PipelineState int

const (
	// StateUninitialized means no GPU objects exist yet.
	StateUninitialized PipelineState = iota
	// StateReady means the pipeline is compiled and can draw.
	StateReady
	// StateDrawing means a frame is being recorded and submitted.
	StateDrawing
	// StateDisposed means every GPU object has been released. Terminal.
	StateDisposed
)

// String returns the string representation of PipelineState.
func (s PipelineState) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateReady:
		return "Ready"
	case StateDrawing:
		return "Drawing"
	case StateDisposed:
		return "Disposed"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

const (
	// UniformSize is the byte size of the point uniform block.
	UniformSize = 32

	// VerticesPerPoint is the vertex count of the quad drawn per instance.
	VerticesPerPoint = 6
)

// Uniforms is the per-plot state shared by every point.
type Uniforms struct {
	// Color is premultiplied RGBA.
	Color [4]float32
	// Viewport is the target size in pixels.
	Viewport [2]float32
	// Size is the point diameter in pixels.
	Size float32
}

func (u *Uniforms) encode(dst *[UniformSize]byte) {
	for i, v := range u.Color {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
	binary.LittleEndian.PutUint32(dst[16:], math.Float32bits(u.Viewport[0]))
	binary.LittleEndian.PutUint32(dst[20:], math.Float32bits(u.Viewport[1]))
	binary.LittleEndian.PutUint32(dst[24:], math.Float32bits(u.Size))
	binary.LittleEndian.PutUint32(dst[28:], 0)
}

// PointPipeline owns the compiled point pipeline, its uniform buffer and
// bind group, and issues one instanced draw per frame.
//
// State machine:
//
//	Uninitialized --Init--> Ready --Draw--> Drawing --> Ready ... --Dispose--> Disposed
//
// There is no transition back to Uninitialized.
type PointPipeline struct {
	adapter gpucore.Adapter
	label   string
	source  string
	compile func(wgsl string) ([]uint32, error)

	state PipelineState

	pipeline  gpucore.PipelineID
	uniform   gpucore.BufferID
	bindGroup gpucore.BindGroupID

	staging [UniformSize]byte
}

// PipelineOption configures a PointPipeline.
type PipelineOption func(*PointPipeline)

// WithShaderCompiler replaces the shader validation step, which defaults
// to CompileShader.
func WithShaderCompiler(fn func(wgsl string) ([]uint32, error)) PipelineOption {
	return func(p *PointPipeline) {
		if fn != nil {
			p.compile = fn
		}
	}
}

// NewPointPipeline creates a pipeline in the Uninitialized state using the
// embedded point shader.
func NewPointPipeline(adapter gpucore.Adapter, label string, opts ...PipelineOption) *PointPipeline {
	p := &PointPipeline{
		adapter: adapter,
		label:   label,
		source:  pointShaderSource,
		compile: CompileShader,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the current state.
func (p *PointPipeline) State() PipelineState { return p.state }

// Init validates the shader and creates the GPU objects, moving the
// pipeline to Ready. Calling Init on a Ready pipeline is a no-op.
//
// Shader validation failures wrap ErrShaderCompile, pipeline failures wrap
// ErrPipelineInit and uniform allocation failures wrap ErrBufferAlloc.
// On failure every partially created object is released and the pipeline
// stays Uninitialized.
func (p *PointPipeline) Init() error {
	switch p.state {
	case StateReady:
		return nil
	case StateUninitialized:
	default:
		return fmt.Errorf("%w: init in state %s", ErrInvalidState, p.state)
	}

	if _, err := p.compile(p.source); err != nil {
		return err
	}
	if err := p.createPipeline(); err != nil {
		p.destroyPipeline()
		return err
	}

	p.setState(StateReady)
	return nil
}

func (p *PointPipeline) createPipeline() error {
	pipeline, err := p.adapter.CreateRenderPipeline(&gpucore.RenderPipelineDesc{
		Label:          p.label + "_pipeline",
		WGSL:           p.source,
		VertexEntry:    pointVertexEntry,
		FragmentEntry:  pointFragmentEntry,
		InstanceStride: RecordSize,
		UniformSize:    UniformSize,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPipelineInit, err)
	}
	p.pipeline = pipeline

	uniform, err := p.adapter.CreateBuffer(p.label+"_uniforms", UniformSize,
		gpucore.BufferUsageUniform|gpucore.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("%w: uniforms: %w", ErrBufferAlloc, err)
	}
	p.uniform = uniform

	bindGroup, err := p.adapter.CreateBindGroup(p.pipeline, p.uniform, UniformSize)
	if err != nil {
		return fmt.Errorf("%w: bind group: %w", ErrPipelineInit, err)
	}
	p.bindGroup = bindGroup
	return nil
}

// Draw clears target to clear and draws every point in points with the
// given uniforms. The uniform write is issued before the frame is encoded,
// so the draw always sees it.
//
// Draw returns ErrInvalidState unless the pipeline is Ready. It returns to
// Ready when the frame completes, whether or not submission succeeded.
func (p *PointPipeline) Draw(target any, clear [4]float64, u Uniforms, points *InstanceBuffer) error {
	if p.state != StateReady {
		return fmt.Errorf("%w: draw in state %s", ErrInvalidState, p.state)
	}
	if points == nil || points.ID() == gpucore.InvalidID {
		return fmt.Errorf("%w: draw without an instance buffer", ErrInvalidState)
	}

	p.state = StateDrawing
	defer func() { p.state = StateReady }()

	u.encode(&p.staging)
	if err := p.adapter.WriteBuffer(p.uniform, 0, p.staging[:]); err != nil {
		return fmt.Errorf("%w: uniforms: %w", ErrBufferWrite, err)
	}

	err := p.adapter.EncodeFrame(&gpucore.RenderPass{
		Target:        target,
		Clear:         clear,
		Pipeline:      p.pipeline,
		BindGroup:     p.bindGroup,
		VertexBuffer:  points.ID(),
		VertexCount:   VerticesPerPoint,
		InstanceCount: uint32(points.Count()), //nolint:gosec // point count is bounded by MaxBufferSize/RecordSize
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	return nil
}

// Dispose releases every GPU object and moves the pipeline to Disposed.
// Dispose is idempotent.
func (p *PointPipeline) Dispose() {
	if p.state == StateDisposed {
		return
	}
	p.destroyPipeline()
	p.setState(StateDisposed)
}

// destroyPipeline releases pipeline resources in reverse creation order.
func (p *PointPipeline) destroyPipeline() {
	if p.bindGroup != gpucore.InvalidID {
		p.adapter.DestroyBindGroup(p.bindGroup)
		p.bindGroup = gpucore.InvalidID
	}
	if p.uniform != gpucore.InvalidID {
		p.adapter.DestroyBuffer(p.uniform)
		p.uniform = gpucore.InvalidID
	}
	if p.pipeline != gpucore.InvalidID {
		p.adapter.DestroyRenderPipeline(p.pipeline)
		p.pipeline = gpucore.InvalidID
	}
}

func (p *PointPipeline) setState(s PipelineState) {
	slogger().Debug("gpu: point pipeline state",
		slog.String("label", p.label),
		slog.String("from", p.state.String()),
		slog.String("to", s.String()),
	)
	p.state = s
}
