package scatter

import (
	"errors"
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/scatter/internal/gpu"
	"github.com/gogpu/scatter/internal/gpucore"
	"github.com/gogpu/scatter/internal/window"
)

var errInjected = errors.New("test: injected failure")

// withDriver replaces the gogpu window with d.
func withDriver(d window.Driver) Option {
	return func(c *Config) error {
		c.driver = d
		return nil
	}
}

// withAdapter replaces the HAL adapter factory.
func withAdapter(fn func(gpucontext.DeviceProvider) (gpucore.Adapter, error), opts ...gpu.PipelineOption) Option {
	return func(c *Config) error {
		c.newAdapter = fn
		c.pipelineOpts = opts
		return nil
	}
}

// withFake wires a headless driver drawing frames frames into a recording
// adapter.
func withFake(d *fakeDriver, a *recordingAdapter) []Option {
	return []Option{
		withDriver(d),
		withAdapter(func(gpucontext.DeviceProvider) (gpucore.Adapter, error) { return a, nil },
			gpu.WithShaderCompiler(func(string) ([]uint32, error) { return []uint32{0x07230203}, nil })),
	}
}

// fakeDriver runs a Renderer without a window.
type fakeDriver struct {
	frames int
	width  int
	height int

	runs   int
	cfg    window.Config
	titles []string

	// During is called between frames while the loop is live.
	during func(frame int)
}

func (d *fakeDriver) Run(cfg window.Config, r window.Renderer) error {
	d.runs++
	d.cfg = cfg
	w, h := d.width, d.height
	if w == 0 {
		w, h = cfg.Width, cfg.Height
	}

	if err := r.Setup(nil); err != nil {
		return err
	}
	defer r.Teardown()

	for i := range d.frames {
		d.titles = append(d.titles, r.Title())
		if err := r.Draw(window.Frame{Target: "surface", Width: w, Height: h, Index: uint64(i)}); err != nil {
			return err
		}
		if d.during != nil {
			d.during(i)
		}
	}
	return nil
}

// recordingAdapter is an in-memory gpucore.Adapter that keeps every
// instance buffer write and every submitted frame.
type recordingAdapter struct {
	mu sync.Mutex

	nextID  uint64
	buffers map[gpucore.BufferID][]byte
	live    int

	pipelines int
	frames    []gpucore.RenderPass
	instances [][]byte // instance buffer contents at each frame
	releases  int

	failPipeline bool
	failWrite    bool
	failFrame    bool
}

func newRecordingAdapter() *recordingAdapter {
	return &recordingAdapter{buffers: make(map[gpucore.BufferID][]byte)}
}

func (a *recordingAdapter) id() uint64 {
	a.nextID++
	return a.nextID
}

func (a *recordingAdapter) MaxBufferSize() uint64 { return 1 << 30 }

func (a *recordingAdapter) CreateBuffer(_ string, size uint64, _ gpucore.BufferUsage) (gpucore.BufferID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := gpucore.BufferID(a.id())
	a.buffers[id] = make([]byte, size)
	a.live++
	return id, nil
}

func (a *recordingAdapter) DestroyBuffer(id gpucore.BufferID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.buffers[id]; ok {
		delete(a.buffers, id)
		a.live--
	}
}

func (a *recordingAdapter) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failWrite {
		return errInjected
	}
	copy(a.buffers[id][offset:], data)
	return nil
}

func (a *recordingAdapter) CreateRenderPipeline(*gpucore.RenderPipelineDesc) (gpucore.PipelineID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failPipeline {
		return gpucore.InvalidID, errInjected
	}
	a.pipelines++
	return gpucore.PipelineID(a.id()), nil
}

func (a *recordingAdapter) DestroyRenderPipeline(gpucore.PipelineID) {
	a.mu.Lock()
	a.pipelines--
	a.mu.Unlock()
}

func (a *recordingAdapter) CreateBindGroup(gpucore.PipelineID, gpucore.BufferID, uint64) (gpucore.BindGroupID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return gpucore.BindGroupID(a.id()), nil
}

func (a *recordingAdapter) DestroyBindGroup(gpucore.BindGroupID) {}

func (a *recordingAdapter) EncodeFrame(pass *gpucore.RenderPass) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failFrame {
		return errInjected
	}
	a.frames = append(a.frames, *pass)
	data := a.buffers[pass.VertexBuffer][:uint64(pass.InstanceCount)*gpu.RecordSize]
	a.instances = append(a.instances, append([]byte(nil), data...))
	return nil
}

func (a *recordingAdapter) Release() {
	a.mu.Lock()
	a.releases++
	a.mu.Unlock()
}
