package scatter

import (
	"errors"
	"log/slog"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/scatter/internal/gpu"
	"github.com/gogpu/scatter/internal/gpucore"
	"github.com/gogpu/scatter/internal/window"
)

// plotRenderer draws one ScatterPlot inside a window. It lives for one
// Show call and runs entirely on the render thread.
type plotRenderer struct {
	p *ScatterPlot

	adapter  gpucore.Adapter
	points   *gpu.InstanceBuffer
	pipeline *gpu.PointPipeline

	// uploaded is the data generation currently on the device.
	uploaded uint64
}

func newPlotRenderer(p *ScatterPlot) *plotRenderer {
	return &plotRenderer{p: p}
}

// halAdapter opens the HAL adapter of a gogpu device provider.
func halAdapter(provider gpucontext.DeviceProvider) (gpucore.Adapter, error) {
	if provider == nil {
		return nil, errors.New("no device provider")
	}
	return gpu.NewHALAdapterFromProvider(provider, provider.SurfaceFormat())
}

// Setup implements window.Renderer. It compiles the pipeline and performs
// the first upload; any failure here prevents the first frame.
func (r *plotRenderer) Setup(provider gpucontext.DeviceProvider) error {
	newAdapter := r.p.cfg.newAdapter
	if newAdapter == nil {
		newAdapter = halAdapter
	}
	adapter, err := newAdapter(provider)
	if err != nil {
		return &ResourceError{Op: "open device", Err: err}
	}
	r.adapter = adapter

	label := "scatter_" + r.p.id
	r.pipeline = gpu.NewPointPipeline(adapter, label, r.p.cfg.pipelineOpts...)
	r.points = gpu.NewInstanceBuffer(adapter, label+"_points")

	// Teardown is not called when Setup fails.
	if err := r.pipeline.Init(); err != nil {
		r.Teardown()
		return classify("create pipeline", err)
	}
	if err := r.upload(); err != nil {
		r.Teardown()
		return err
	}

	r.p.logger().Debug("scatter: renderer ready",
		slog.Int("points", r.points.Count()),
		slog.Int("capacity", r.points.Capacity()),
	)
	return nil
}

// upload pushes the plot's data to the device if it changed since the
// last upload.
func (r *plotRenderer) upload() error {
	data, gen := r.p.current()
	if data == nil || (gen == r.uploaded && r.points.ID() != gpucore.InvalidID) {
		return nil
	}
	if err := r.points.Upload(data); err != nil {
		return &ResourceError{Op: "upload points", Err: err}
	}
	r.uploaded = gen
	return nil
}

// Draw implements window.Renderer. The frame hook runs first, then any new
// data is uploaded, then the frame is drawn.
func (r *plotRenderer) Draw(f window.Frame) error {
	if hook := r.p.cfg.FrameHook; hook != nil {
		hook(r.p, f)
	}
	if err := r.upload(); err != nil {
		return err
	}

	cfg := &r.p.cfg
	bg := cfg.Background
	u := gpu.Uniforms{
		Color:    cfg.Color.Premultiplied(),
		Viewport: [2]float32{float32(f.Width), float32(f.Height)},
		Size:     float32(cfg.Size),
	}
	if err := r.pipeline.Draw(f.Target, [4]float64{bg.R, bg.G, bg.B, bg.A}, u, r.points); err != nil {
		return classify("draw frame", err)
	}
	return nil
}

// Title implements window.Renderer.
func (r *plotRenderer) Title() string { return r.p.Title() }

// releaser is implemented by adapters that track objects of their own.
type releaser interface {
	Release()
}

// Teardown implements window.Renderer. GPU objects are released in
// reverse creation order.
func (r *plotRenderer) Teardown() {
	if r.points != nil {
		r.points.Destroy()
	}
	if r.pipeline != nil {
		r.pipeline.Dispose()
	}
	if rel, ok := r.adapter.(releaser); ok {
		rel.Release()
	}
	r.adapter = nil
	r.p.logger().Debug("scatter: renderer released")
}

func isShaderError(err error) bool { return errors.Is(err, gpu.ErrShaderCompile) }

func isPipelineError(err error) bool { return errors.Is(err, gpu.ErrPipelineInit) }
