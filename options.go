package scatter

import (
	"math"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/scatter/internal/gpu"
	"github.com/gogpu/scatter/internal/gpucore"
	"github.com/gogpu/scatter/internal/window"
)

// Default configuration values.
const (
	DefaultSize   = 2.0
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
	DefaultTitle  = "scatter"
)

// FrameInfo describes the frame about to be drawn.
type FrameInfo = window.Frame

// Config is the explicit styling record of a plot. Every field has a
// documented default; see DefaultConfig. A Config is built once per plot
// and never shared.
type Config struct {
	// Color is the color of every point. Default DefaultColor.
	Color Color

	// Size is the point diameter in pixels. Must be positive. Default 2.
	Size float64

	// Width and Height are the window size in pixels. Must be positive.
	// Default 800x600.
	Width, Height float64

	// Title is the window title. Default "scatter".
	Title string

	// Background is the clear color. Default White.
	Background Color

	// XRange and YRange are the output ranges of the coordinate mapping.
	// Default ClipRange on both axes.
	XRange, YRange AxisRange

	// XDomain and YDomain, when non-nil, are used as the input extrema
	// instead of the data's.
	XDomain, YDomain *AxisRange

	// OnWarning receives length-mismatch warnings. Nil logs them at
	// slog.LevelWarn.
	OnWarning func(*LengthMismatch)

	// FrameHook runs on the render thread before each frame's upload.
	FrameHook func(*ScatterPlot, FrameInfo)

	// Injected collaborators; zero values select the real window and GPU.
	driver       window.Driver
	newAdapter   func(gpucontext.DeviceProvider) (gpucore.Adapter, error)
	pipelineOpts []gpu.PipelineOption
}

// MaxViewportSide is the largest accepted width or height in pixels.
const MaxViewportSide = 16384

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Color:      DefaultColor,
		Size:       DefaultSize,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Title:      DefaultTitle,
		Background: White,
		XRange:     ClipRange,
		YRange:     ClipRange,
	}
}

// Validate reports the first field outside its valid domain as a
// *ConfigError.
func (c *Config) Validate() error {
	switch {
	case !positive(c.Size):
		return &ConfigError{Field: "size", Value: c.Size}
	case !positive(c.Width) || c.Width > MaxViewportSide:
		return &ConfigError{Field: "width", Value: c.Width}
	case !positive(c.Height) || c.Height > MaxViewportSide:
		return &ConfigError{Field: "height", Value: c.Height}
	case !finiteRange(c.XRange):
		return &ConfigError{Field: "x_range", Value: c.XRange}
	case !finiteRange(c.YRange):
		return &ConfigError{Field: "y_range", Value: c.YRange}
	case c.XDomain != nil && !finiteRange(*c.XDomain):
		return &ConfigError{Field: "x_domain", Value: *c.XDomain}
	case c.YDomain != nil && !finiteRange(*c.YDomain):
		return &ConfigError{Field: "y_domain", Value: *c.YDomain}
	}
	return nil
}

func (c *Config) mapping() Mapping {
	return Mapping{
		XRange:  &c.XRange,
		YRange:  &c.YRange,
		XDomain: c.XDomain,
		YDomain: c.YDomain,
	}
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func finiteRange(r AxisRange) bool {
	return !math.IsNaN(r.Lo) && !math.IsNaN(r.Hi) && !math.IsInf(r.Lo, 0) && !math.IsInf(r.Hi, 0)
}

// Option configures a plot during creation. Options that parse input
// return the parse error, which aborts construction.
//
// Example:
//
//	p, err := scatter.Scatter(xs, ys,
//	    scatter.WithColor("#FF5733"),
//	    scatter.WithSize(4),
//	    scatter.WithXRange(-0.9, 0.9),
//	)
type Option func(*Config) error

// WithConfig replaces the whole configuration. Later options still apply
// on top of it.
func WithConfig(cfg Config) Option {
	return func(c *Config) error {
		driver, newAdapter, popts := c.driver, c.newAdapter, c.pipelineOpts
		*c = cfg
		c.driver, c.newAdapter, c.pipelineOpts = driver, newAdapter, popts
		return nil
	}
}

// WithColor sets the point color. v is anything ParseColor accepts.
func WithColor(v any) Option {
	return func(c *Config) error {
		col, err := ParseColor(v)
		if err != nil {
			return err
		}
		c.Color = col
		return nil
	}
}

// WithBackground sets the clear color. v is anything ParseColor accepts.
func WithBackground(v any) Option {
	return func(c *Config) error {
		col, err := ParseColor(v)
		if err != nil {
			return err
		}
		c.Background = col
		return nil
	}
}

// WithSize sets the point diameter in pixels.
func WithSize(px float64) Option {
	return func(c *Config) error {
		c.Size = px
		return nil
	}
}

// WithWidth sets the window width in pixels.
func WithWidth(w float64) Option {
	return func(c *Config) error {
		c.Width = w
		return nil
	}
}

// WithHeight sets the window height in pixels.
func WithHeight(h float64) Option {
	return func(c *Config) error {
		c.Height = h
		return nil
	}
}

// WithViewport sets both window dimensions.
func WithViewport(w, h float64) Option {
	return func(c *Config) error {
		c.Width, c.Height = w, h
		return nil
	}
}

// WithTitle sets the initial window title.
func WithTitle(title string) Option {
	return func(c *Config) error {
		c.Title = title
		return nil
	}
}

// WithXRange sets the output range of the x mapping. lo > hi inverts the
// axis.
func WithXRange(lo, hi float64) Option {
	return func(c *Config) error {
		c.XRange = AxisRange{Lo: lo, Hi: hi}
		return nil
	}
}

// WithYRange sets the output range of the y mapping. lo > hi inverts the
// axis.
func WithYRange(lo, hi float64) Option {
	return func(c *Config) error {
		c.YRange = AxisRange{Lo: lo, Hi: hi}
		return nil
	}
}

// WithXDomain declares the x input extrema instead of deriving them from
// the data.
func WithXDomain(lo, hi float64) Option {
	return func(c *Config) error {
		c.XDomain = &AxisRange{Lo: lo, Hi: hi}
		return nil
	}
}

// WithYDomain declares the y input extrema instead of deriving them from
// the data.
func WithYDomain(lo, hi float64) Option {
	return func(c *Config) error {
		c.YDomain = &AxisRange{Lo: lo, Hi: hi}
		return nil
	}
}

// WithWarningHandler routes length-mismatch warnings to fn.
func WithWarningHandler(fn func(*LengthMismatch)) Option {
	return func(c *Config) error {
		c.OnWarning = fn
		return nil
	}
}

// WithFrameHook registers fn to run on the render thread before each
// frame. fn may call SetData to animate the plot; the new data is
// uploaded before that frame is drawn.
func WithFrameHook(fn func(*ScatterPlot, FrameInfo)) Option {
	return func(c *Config) error {
		c.FrameHook = fn
		return nil
	}
}

func buildConfig(opts []Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
