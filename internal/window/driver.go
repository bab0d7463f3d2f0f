// Package window owns the presentation surface and the render loop of a
// shown plot.
//
// The loop is single-threaded: gogpu calls back on its render thread, and
// every Renderer method runs there. Closing the window is the only way to
// stop it; a Renderer error ends the loop early and is returned from Run.
package window

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
)

// Config describes the window to open.
type Config struct {
	Title         string
	Width, Height int
}

// Frame is handed to the Renderer once per loop iteration.
type Frame struct {
	// Target is the surface texture view to render into.
	Target any

	// Width and Height are the current surface size in pixels.
	Width, Height int

	// Index counts frames drawn so far, starting at 0.
	Index uint64

	// Elapsed is the time since the first frame.
	Elapsed time.Duration
}

// Renderer draws into the window. All methods are called from the render
// thread.
type Renderer interface {
	// Setup runs once before the first Draw with the window's GPU device.
	// An error stops the loop before anything is drawn.
	Setup(provider gpucontext.DeviceProvider) error

	// Draw renders one frame. An error stops the loop.
	Draw(f Frame) error

	// Title returns the title the window should currently show.
	Title() string

	// Teardown releases GPU resources. It runs once, after the last Draw,
	// while the device is still alive. It is not called if Setup never ran.
	Teardown()
}

// Driver opens a window and runs a Renderer in it until the window is
// closed. Run blocks for the life of the window.
type Driver interface {
	Run(cfg Config, r Renderer) error
}

// GogpuDriver runs the render loop in a gogpu window.
type GogpuDriver struct{}

// Run implements Driver.
func (GogpuDriver) Run(cfg Config, r Renderer) error {
	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Title).
		WithSize(cfg.Width, cfg.Height).
		WithContinuousRender(true))

	l := newLoop(r, app.Quit)
	if ts, ok := any(app).(titleSetter); ok {
		l.setTitle = ts.SetTitle
	}
	l.title = cfg.Title

	app.OnDraw(func(dc *gogpu.Context) {
		l.frame(app.GPUContextProvider(), dc.SurfaceView(), dc.Width(), dc.Height())
	})
	// Release GPU objects while the device is still alive.
	app.OnClose(l.shutdown)

	slogger().Info("window: opening",
		slog.String("title", cfg.Title),
		slog.Int("width", cfg.Width),
		slog.Int("height", cfg.Height),
	)

	runErr := app.Run()
	l.shutdown()

	if runErr != nil {
		return errors.Join(l.err, runErr)
	}
	return l.err
}

// titleSetter is implemented by window hosts that can retitle a live
// window.
type titleSetter interface {
	SetTitle(string)
}
