package scatter

import (
	"errors"
	"log/slog"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/gogpu/scatter/internal/window"
)

// ScatterPlot is a point cloud plus the style it is drawn with.
//
// A plot is created with Scatter or New, optionally re-fed with SetData,
// and displayed with Show. Styling is fixed at construction; only the data
// and the title change afterwards.
//
// The plot exclusively owns its point buffer and, while shown, every GPU
// object drawing it. Methods are safe for concurrent use; SetTitle and
// SetData may be called from another goroutine while Show blocks.
type ScatterPlot struct {
	id  string
	cfg Config

	mu       sync.Mutex
	data     *PointBuffer
	gen      uint64 // bumped by every SetData
	title    string
	warnings []*LengthMismatch
	showing  bool
	closed   bool
}

// New creates a plot with no data. Show fails until SetData is called.
func New(opts ...Option) (*ScatterPlot, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}
	p := &ScatterPlot{
		id:    uuid.NewString(),
		cfg:   cfg,
		title: cfg.Title,
	}
	p.logger().Debug("scatter: plot created",
		slog.Float64("size", cfg.Size),
		slog.Float64("width", cfg.Width),
		slog.Float64("height", cfg.Height),
		slog.String("color", cfg.Color.Hex()),
	)
	return p, nil
}

// Scatter creates a plot from x and y coordinates. It validates every
// option before touching the data and never opens a window.
//
// If xs and ys differ in length the plot uses the first min(len(xs),
// len(ys)) pairs and a *LengthMismatch warning is raised (see
// WithWarningHandler and Warnings); this is not an error.
func Scatter[T Float](xs, ys []T, opts ...Option) (*ScatterPlot, error) {
	p, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := Update(p, xs, ys); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the plot's data with xs and ys, mapped with the plot's
// configured ranges. It is the generic form of SetData.
func Update[T Float](p *ScatterPlot, xs, ys []T) error {
	buf, warn := Ingest(xs, ys, p.cfg.mapping())

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return &StateError{Op: "set data", Err: ErrClosed}
	}
	p.data = buf
	p.gen++
	if warn != nil {
		p.warnings = append(p.warnings, warn)
	}
	p.mu.Unlock()

	if warn != nil {
		p.warn(warn)
	}
	return nil
}

// SetData replaces the plot's data. While the plot is shown the new points
// are uploaded before the next frame is drawn.
func (p *ScatterPlot) SetData(xs, ys []float64) error {
	return Update(p, xs, ys)
}

func (p *ScatterPlot) warn(w *LengthMismatch) {
	if p.cfg.OnWarning != nil {
		p.cfg.OnWarning(w)
		return
	}
	p.logger().Warn("scatter: x and y have different lengths",
		slog.Int("x_len", w.XLen),
		slog.Int("y_len", w.YLen),
		slog.Int("using", w.Len()),
	)
}

// ID returns the plot's unique identifier.
func (p *ScatterPlot) ID() string { return p.id }

// Config returns a copy of the plot's configuration.
func (p *ScatterPlot) Config() Config { return p.cfg }

// SetTitle changes the window title. It is valid before, during and after
// Show; a shown window picks the new title up on its next frame.
func (p *ScatterPlot) SetTitle(title string) {
	p.mu.Lock()
	p.title = title
	p.mu.Unlock()
}

// Title returns the current title.
func (p *ScatterPlot) Title() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.title
}

// Points returns the current point buffer, or nil if no data was set.
func (p *ScatterPlot) Points() *PointBuffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data
}

// Warnings returns every length-mismatch warning raised so far, oldest
// first.
func (p *ScatterPlot) Warnings() []*LengthMismatch {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*LengthMismatch(nil), p.warnings...)
}

// current returns the point buffer together with its generation.
func (p *ScatterPlot) current() (*PointBuffer, uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data, p.gen
}

// Show opens a window sized to the plot and draws it until the user closes
// the window. Show blocks for the life of the window.
//
// Show fails with a *StateError wrapping ErrNoData, without opening a
// window, when no data was set. Shader or pipeline failures are reported
// as *RenderInitError before the first frame is drawn; device, allocation
// and surface failures during the loop as *ResourceError. In every case the
// plot's GPU objects are released before Show returns.
func (p *ScatterPlot) Show() error {
	p.mu.Lock()
	switch {
	case p.closed:
		p.mu.Unlock()
		return &StateError{Op: "show", Err: ErrClosed}
	case p.data == nil:
		p.mu.Unlock()
		return &StateError{Op: "show", Err: ErrNoData}
	case p.showing:
		p.mu.Unlock()
		return &StateError{Op: "show", Err: ErrShowing}
	}
	p.showing = true
	title := p.title
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.showing = false
		p.mu.Unlock()
	}()

	driver := p.cfg.driver
	if driver == nil {
		driver = window.GogpuDriver{}
	}

	log := p.logger()
	log.Info("scatter: show", slog.String("title", title))

	err := driver.Run(window.Config{
		Title:  title,
		Width:  pixels(p.cfg.Width),
		Height: pixels(p.cfg.Height),
	}, newPlotRenderer(p))
	if err != nil {
		err = classify("render loop", err)
		log.Warn("scatter: show failed", slog.String("err", err.Error()))
		return err
	}
	log.Info("scatter: window closed")
	return nil
}

// Close releases the plot's data. It fails with a *StateError wrapping
// ErrShowing while the window is open; closing the window is the only way
// to end Show. Close is idempotent.
func (p *ScatterPlot) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.showing {
		return &StateError{Op: "close", Err: ErrShowing}
	}
	p.closed = true
	p.data = nil
	return nil
}

func (p *ScatterPlot) logger() *slog.Logger {
	return Logger().With(slog.String("plot", p.id))
}

// classify maps internal failures onto the public error taxonomy. Errors
// already carrying a public type pass through unchanged.
func classify(op string, err error) error {
	var (
		stateErr  *StateError
		resErr    *ResourceError
		renderErr *RenderInitError
	)
	switch {
	case err == nil:
		return nil
	case errors.As(err, &stateErr), errors.As(err, &resErr), errors.As(err, &renderErr):
		return err
	case isShaderError(err):
		return &RenderInitError{Stage: "shader", Err: err}
	case isPipelineError(err):
		return &RenderInitError{Stage: "pipeline", Err: err}
	default:
		return &ResourceError{Op: op, Err: err}
	}
}

func pixels(v float64) int {
	return max(1, int(math.Round(v)))
}
