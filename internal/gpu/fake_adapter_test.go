package gpu

import (
	"errors"
	"sync"

	"github.com/gogpu/scatter/internal/gpucore"
)

var errFake = errors.New("fake: injected failure")

// fakeAdapter implements gpucore.Adapter in memory.
type fakeAdapter struct {
	mu sync.Mutex

	maxBuffer uint64
	nextID    uint64

	buffers    map[gpucore.BufferID][]byte
	pipelines  map[gpucore.PipelineID]*gpucore.RenderPipelineDesc
	bindGroups map[gpucore.BindGroupID]gpucore.BufferID

	created   int
	destroyed int
	writes    int
	frames    []gpucore.RenderPass

	failBuffer    bool
	failPipeline  bool
	failBindGroup bool
	failWrite     bool
	failFrame     bool
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{
		buffers:    make(map[gpucore.BufferID][]byte),
		pipelines:  make(map[gpucore.PipelineID]*gpucore.RenderPipelineDesc),
		bindGroups: make(map[gpucore.BindGroupID]gpucore.BufferID),
	}
}

func (f *fakeAdapter) id() uint64 {
	f.nextID++
	return f.nextID
}

func (f *fakeAdapter) MaxBufferSize() uint64 { return f.maxBuffer }

func (f *fakeAdapter) CreateBuffer(_ string, size uint64, _ gpucore.BufferUsage) (gpucore.BufferID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failBuffer {
		return gpucore.InvalidID, errFake
	}
	id := gpucore.BufferID(f.id())
	f.buffers[id] = make([]byte, size)
	f.created++
	return id, nil
}

func (f *fakeAdapter) DestroyBuffer(id gpucore.BufferID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.buffers[id]; ok {
		delete(f.buffers, id)
		f.destroyed++
	}
}

func (f *fakeAdapter) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite {
		return errFake
	}
	buf, ok := f.buffers[id]
	if !ok {
		return ErrUnknownResource
	}
	copy(buf[offset:], data)
	f.writes++
	return nil
}

func (f *fakeAdapter) CreateRenderPipeline(desc *gpucore.RenderPipelineDesc) (gpucore.PipelineID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPipeline {
		return gpucore.InvalidID, errFake
	}
	id := gpucore.PipelineID(f.id())
	f.pipelines[id] = desc
	return id, nil
}

func (f *fakeAdapter) DestroyRenderPipeline(id gpucore.PipelineID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.pipelines, id)
}

func (f *fakeAdapter) CreateBindGroup(_ gpucore.PipelineID, uniform gpucore.BufferID, _ uint64) (gpucore.BindGroupID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failBindGroup {
		return gpucore.InvalidID, errFake
	}
	id := gpucore.BindGroupID(f.id())
	f.bindGroups[id] = uniform
	return id, nil
}

func (f *fakeAdapter) DestroyBindGroup(id gpucore.BindGroupID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.bindGroups, id)
}

func (f *fakeAdapter) EncodeFrame(pass *gpucore.RenderPass) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFrame {
		return errFake
	}
	f.frames = append(f.frames, *pass)
	return nil
}

// live reports how many objects of each kind are still allocated.
func (f *fakeAdapter) live() (buffers, pipelines, bindGroups int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.buffers), len(f.pipelines), len(f.bindGroups)
}

// points is a PointSource over a flat xy slice.
type points []float32

func (p points) Len() int { return len(p) / 2 }

func (p points) XY(i int) (float32, float32) { return p[2*i], p[2*i+1] }

func nopCompile(string) ([]uint32, error) { return []uint32{0x07230203}, nil }
