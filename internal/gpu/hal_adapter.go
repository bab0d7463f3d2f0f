package gpu

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/scatter/internal/gpucore"
	"github.com/gogpu/wgpu/hal"
)

// DefaultMaxBufferSize is the buffer limit used when the device does not
// report one: 256 MiB, the WebGPU default.
const DefaultMaxBufferSize uint64 = 256 << 20

// frameTimeout bounds the fence wait after each submitted frame.
const frameTimeout = 5 * time.Second

// HALAdapter implements gpucore.Adapter using gogpu/wgpu/hal directly.
//
// The device and queue are borrowed from the window; HALAdapter never
// destroys them. Every object it created is released by Release.
//
// Thread Safety: HALAdapter is safe for concurrent use from multiple
// goroutines. Resource maps are protected by a mutex.
type HALAdapter struct {
	mu     sync.RWMutex
	device hal.Device
	queue  hal.Queue

	format      gputypes.TextureFormat
	maxBufferSz uint64

	// ID generation
	nextID atomic.Uint64

	// Resource tracking maps gpucore IDs to hal resources
	buffers    map[gpucore.BufferID]hal.Buffer
	pipelines  map[gpucore.PipelineID]*halPipeline
	bindGroups map[gpucore.BindGroupID]hal.BindGroup
}

// halPipeline groups a render pipeline with the objects it was built
// from so they share one ID.
type halPipeline struct {
	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline
}

// NewHALAdapter creates a new HALAdapter rendering into textures of the
// given format. A zero maxBufferSize selects DefaultMaxBufferSize.
func NewHALAdapter(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, maxBufferSize uint64) *HALAdapter {
	if maxBufferSize == 0 {
		maxBufferSize = DefaultMaxBufferSize
	}
	adapter := &HALAdapter{
		device:      device,
		queue:       queue,
		format:      format,
		maxBufferSz: maxBufferSize,
		buffers:     make(map[gpucore.BufferID]hal.Buffer),
		pipelines:   make(map[gpucore.PipelineID]*halPipeline),
		bindGroups:  make(map[gpucore.BindGroupID]hal.BindGroup),
	}

	// Start ID generation at 1 (0 is invalid)
	adapter.nextID.Store(1)

	return adapter
}

// NewHALAdapterFromProvider builds a HALAdapter from a device provider
// that exposes HalDevice() any and HalQueue() any returning hal.Device and
// hal.Queue, as gogpu's provider does.
func NewHALAdapterFromProvider(provider any, format gputypes.TextureFormat) (*HALAdapter, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, errors.New("gpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, errors.New("gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, errors.New("gpu: provider HalQueue is not hal.Queue")
	}
	return NewHALAdapter(device, queue, format, 0), nil
}

// newID generates a unique resource ID.
func (a *HALAdapter) newID() uint64 {
	return a.nextID.Add(1) - 1
}

// === Capabilities ===

// MaxBufferSize returns the maximum buffer size in bytes.
func (a *HALAdapter) MaxBufferSize() uint64 {
	return a.maxBufferSz
}

// === Buffer Management ===

// CreateBuffer creates a GPU buffer.
func (a *HALAdapter) CreateBuffer(label string, size uint64, usage gpucore.BufferUsage) (gpucore.BufferID, error) {
	if size == 0 {
		return gpucore.InvalidID, errors.New("buffer size must be positive")
	}

	buffer, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: convertBufferUsage(usage),
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("create buffer %q: %w", label, err)
	}

	id := gpucore.BufferID(a.newID())

	a.mu.Lock()
	a.buffers[id] = buffer
	a.mu.Unlock()

	return id, nil
}

// DestroyBuffer releases a GPU buffer.
func (a *HALAdapter) DestroyBuffer(id gpucore.BufferID) {
	a.mu.Lock()
	buffer, ok := a.buffers[id]
	if ok {
		delete(a.buffers, id)
	}
	a.mu.Unlock()

	if ok {
		a.device.DestroyBuffer(buffer)
	}
}

// WriteBuffer writes data to a buffer.
func (a *HALAdapter) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) error {
	a.mu.RLock()
	buffer, ok := a.buffers[id]
	a.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: buffer=%d", ErrUnknownResource, id)
	}
	if len(data) == 0 {
		return nil
	}
	if err := a.queue.WriteBuffer(buffer, offset, data); err != nil {
		return fmt.Errorf("write buffer %d: %w", id, err)
	}
	return nil
}

// === Pipeline Management ===

// CreateRenderPipeline creates the shader module, uniform layout, pipeline
// layout and render pipeline described by desc. The color target uses the
// adapter's texture format with premultiplied alpha blending.
func (a *HALAdapter) CreateRenderPipeline(desc *gpucore.RenderPipelineDesc) (gpucore.PipelineID, error) {
	if desc == nil {
		return gpucore.InvalidID, errors.New("nil render pipeline descriptor")
	}

	p := &halPipeline{}
	if err := a.buildPipeline(p, desc); err != nil {
		a.destroyPipeline(p)
		return gpucore.InvalidID, err
	}

	id := gpucore.PipelineID(a.newID())

	a.mu.Lock()
	a.pipelines[id] = p
	a.mu.Unlock()

	slogger().Debug("gpu: render pipeline created",
		slog.String("label", desc.Label),
		slog.String("format", fmt.Sprint(a.format)),
	)
	return id, nil
}

func (a *HALAdapter) buildPipeline(p *halPipeline, desc *gpucore.RenderPipelineDesc) error {
	shader, err := a.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Label + "_shader",
		Source: hal.ShaderSource{WGSL: desc.WGSL},
	})
	if err != nil {
		return fmt.Errorf("compile shader: %w", err)
	}
	p.shader = shader

	uniformLayout, err := a.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: desc.Label + "_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer: &gputypes.BufferBindingLayout{
					Type:           gputypes.BufferBindingTypeUniform,
					MinBindingSize: desc.UniformSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create uniform layout: %w", err)
	}
	p.uniformLayout = uniformLayout

	pipeLayout, err := a.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            desc.Label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := a.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: desc.VertexEntry,
			Buffers:    instanceLayout(desc.InstanceStride),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: desc.FragmentEntry,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    a.format,
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
		return fmt.Errorf("create render pipeline: %w", err)
	}
	p.pipeline = pipeline
	return nil
}

// instanceLayout returns the per-instance vertex buffer layout: one
// float32x2 point center at location 0.
func instanceLayout(stride uint64) []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: stride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // center
			},
		},
	}
}

// DestroyRenderPipeline releases a pipeline and the objects created with it.
func (a *HALAdapter) DestroyRenderPipeline(id gpucore.PipelineID) {
	a.mu.Lock()
	p, ok := a.pipelines[id]
	if ok {
		delete(a.pipelines, id)
	}
	a.mu.Unlock()

	if ok {
		a.destroyPipeline(p)
	}
}

// destroyPipeline releases pipeline objects in reverse creation order.
func (a *HALAdapter) destroyPipeline(p *halPipeline) {
	if p.pipeline != nil {
		a.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		a.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.uniformLayout != nil {
		a.device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.shader != nil {
		a.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// CreateBindGroup binds a uniform buffer at group 0, binding 0 of the
// pipeline's layout.
func (a *HALAdapter) CreateBindGroup(pipeline gpucore.PipelineID, uniform gpucore.BufferID, size uint64) (gpucore.BindGroupID, error) {
	a.mu.RLock()
	p, okPipe := a.pipelines[pipeline]
	buf, okBuf := a.buffers[uniform]
	a.mu.RUnlock()

	if !okPipe {
		return gpucore.InvalidID, fmt.Errorf("%w: pipeline %d", ErrUnknownResource, pipeline)
	}
	if !okBuf {
		return gpucore.InvalidID, fmt.Errorf("%w: buffer %d", ErrUnknownResource, uniform)
	}

	bg, err := a.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "point_uniform_bind_group",
		Layout: p.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{
				Binding:  0,
				Resource: gputypes.BufferBinding{Buffer: buf.NativeHandle(), Offset: 0, Size: size},
			},
		},
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("create bind group: %w", err)
	}

	id := gpucore.BindGroupID(a.newID())

	a.mu.Lock()
	a.bindGroups[id] = bg
	a.mu.Unlock()

	return id, nil
}

// DestroyBindGroup releases a bind group.
func (a *HALAdapter) DestroyBindGroup(id gpucore.BindGroupID) {
	a.mu.Lock()
	bg, ok := a.bindGroups[id]
	if ok {
		delete(a.bindGroups, id)
	}
	a.mu.Unlock()

	if ok {
		a.device.DestroyBindGroup(bg)
	}
}

// === Command Recording and Execution ===

// EncodeFrame records one render pass into pass.Target, submits it and
// waits for the GPU before returning so the caller can present.
func (a *HALAdapter) EncodeFrame(pass *gpucore.RenderPass) error {
	view, ok := pass.Target.(hal.TextureView)
	if !ok || view == nil {
		return fmt.Errorf("%w: %T", ErrInvalidTarget, pass.Target)
	}

	a.mu.RLock()
	p, okPipe := a.pipelines[pass.Pipeline]
	bg, okBG := a.bindGroups[pass.BindGroup]
	vb, okVB := a.buffers[pass.VertexBuffer]
	a.mu.RUnlock()
	if !okPipe || !okBG || !okVB {
		return fmt.Errorf("%w: pipeline=%d bind_group=%d buffer=%d",
			ErrUnknownResource, pass.Pipeline, pass.BindGroup, pass.VertexBuffer)
	}

	encoder, err := a.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "point_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("point_frame"); err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "point_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: clearValue(pass.Clear),
		}},
	})
	if pass.InstanceCount > 0 {
		rp.SetPipeline(p.pipeline)
		rp.SetBindGroup(0, bg, nil)
		rp.SetVertexBuffer(0, vb, 0)
		rp.Draw(pass.VertexCount, pass.InstanceCount, 0, 0)
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("end encoding: %w", err)
	}
	defer a.device.FreeCommandBuffer(cmdBuf)

	fence, err := a.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer a.device.DestroyFence(fence)

	if err := a.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}

	// Wait for the pass to finish before the surface is presented.
	fenceOK, err := a.device.Wait(fence, 1, frameTimeout)
	if err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	if !fenceOK {
		return fmt.Errorf("wait for GPU: timed out after %s", frameTimeout)
	}
	return nil
}

// Release destroys every object still tracked by the adapter. The device
// and queue are left alone.
func (a *HALAdapter) Release() {
	a.mu.Lock()
	bindGroups, pipelines, buffers := a.bindGroups, a.pipelines, a.buffers
	a.bindGroups = make(map[gpucore.BindGroupID]hal.BindGroup)
	a.pipelines = make(map[gpucore.PipelineID]*halPipeline)
	a.buffers = make(map[gpucore.BufferID]hal.Buffer)
	a.mu.Unlock()

	for _, bg := range bindGroups {
		a.device.DestroyBindGroup(bg)
	}
	for _, p := range pipelines {
		a.destroyPipeline(p)
	}
	for _, b := range buffers {
		a.device.DestroyBuffer(b)
	}
}

// === Type Conversion Helpers ===

// convertBufferUsage converts gpucore.BufferUsage to gputypes.BufferUsage.
func convertBufferUsage(usage gpucore.BufferUsage) gputypes.BufferUsage {
	var result gputypes.BufferUsage

	if usage&gpucore.BufferUsageCopyDst != 0 {
		result |= gputypes.BufferUsageCopyDst
	}
	if usage&gpucore.BufferUsageVertex != 0 {
		result |= gputypes.BufferUsageVertex
	}
	if usage&gpucore.BufferUsageUniform != 0 {
		result |= gputypes.BufferUsageUniform
	}

	return result
}

// clearValue converts a straight-alpha clear color to the premultiplied
// value the blend state expects.
func clearValue(c [4]float64) gputypes.Color {
	return gputypes.Color{R: c[0] * c[3], G: c[1] * c[3], B: c[2] * c[3], A: c[3]}
}
