package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gogpu/scatter"
	"github.com/gogpu/scatter/internal/dataset"
)

var errNoInput = errors.New("no input: pass --csv or --random")

// inputFlags select where the points come from.
type inputFlags struct {
	csv    string
	x, y   string
	header bool
	delim  string

	random int
	dist   string
	seed   uint64
}

func (f *inputFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.csv, "csv", "", "read points from a CSV file")
	fs.StringVar(&f.x, "x", "", "x column name or index (default first column)")
	fs.StringVar(&f.y, "y", "", "y column name or index (default second column)")
	fs.BoolVar(&f.header, "header", false, "first CSV record holds column names")
	fs.StringVar(&f.delim, "delim", ",", "CSV field delimiter")
	fs.IntVar(&f.random, "random", 0, "generate N random points instead of reading a file")
	fs.StringVar(&f.dist, "dist", "uniform", "random distribution: uniform, normal, spiral")
	fs.Uint64Var(&f.seed, "seed", 1, "random seed")
}

func (f *inputFlags) load() (*dataset.Columns, error) {
	switch {
	case f.csv != "" && f.random > 0:
		return nil, errors.New("--csv and --random are mutually exclusive")
	case f.csv != "":
		opts := dataset.CSVOptions{X: f.x, Y: f.y, Header: f.header}
		if r := []rune(f.delim); len(r) == 1 {
			opts.Comma = r[0]
		} else {
			return nil, fmt.Errorf("--delim must be a single character, got %q", f.delim)
		}
		return dataset.LoadCSV(f.csv, opts)
	case f.random > 0:
		d, err := dataset.ParseDistribution(f.dist)
		if err != nil {
			return nil, err
		}
		return dataset.Random(f.random, d, f.seed), nil
	default:
		return nil, errNoInput
	}
}

// styleFlags override the plot style. Flags given on the command line win
// over a --style file.
type styleFlags struct {
	file       string
	color      string
	background string
	size       float64
	width      float64
	height     float64
	title      string
}

func (f *styleFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.file, "style", "", "TOML style file")
	fs.StringVar(&f.color, "color", "", "point color (#RRGGBB or #RRGGBBAA)")
	fs.StringVar(&f.background, "background", "", "background color")
	fs.Float64Var(&f.size, "size", scatter.DefaultSize, "point diameter in pixels")
	fs.Float64Var(&f.width, "width", scatter.DefaultWidth, "window width in pixels")
	fs.Float64Var(&f.height, "height", scatter.DefaultHeight, "window height in pixels")
	fs.StringVar(&f.title, "title", "", "window title (default: the input name)")
}

func (f *styleFlags) options(fs *pflag.FlagSet) ([]scatter.Option, error) {
	var opts []scatter.Option
	if f.file != "" {
		style, err := scatter.LoadStyle(f.file)
		if err != nil {
			return nil, err
		}
		opts = append(opts, style...)
	}
	if fs.Changed("color") {
		opts = append(opts, scatter.WithColor(f.color))
	}
	if fs.Changed("background") {
		opts = append(opts, scatter.WithBackground(f.background))
	}
	if fs.Changed("size") {
		opts = append(opts, scatter.WithSize(f.size))
	}
	if fs.Changed("width") {
		opts = append(opts, scatter.WithWidth(f.width))
	}
	if fs.Changed("height") {
		opts = append(opts, scatter.WithHeight(f.height))
	}
	if fs.Changed("title") {
		opts = append(opts, scatter.WithTitle(f.title))
	}
	return opts, nil
}

// plotFlags is the shared input and style state of every subcommand.
type plotFlags struct {
	input inputFlags
	style styleFlags
}

// build loads the input and creates the plot. Extra options apply last.
func (f *plotFlags) build(cmd *cobra.Command, extra ...scatter.Option) (*scatter.ScatterPlot, *dataset.Columns, error) {
	cols, err := f.input.load()
	if err != nil {
		return nil, nil, err
	}
	opts, err := f.options(cmd)
	if err != nil {
		return nil, nil, err
	}
	p, err := scatter.Scatter(cols.X, cols.Y, append(opts, extra...)...)
	if err != nil {
		return nil, nil, err
	}
	return p, cols, nil
}

// options returns the plot options from the default title, the style file
// and the style flags, in that order.
func (f *plotFlags) options(cmd *cobra.Command) ([]scatter.Option, error) {
	style, err := f.style.options(cmd.Flags())
	if err != nil {
		return nil, err
	}
	log := loggerFromContext(cmd.Context())
	return append([]scatter.Option{
		scatter.WithTitle(f.inputName()),
		scatter.WithWarningHandler(func(w *scatter.LengthMismatch) {
			log.Warn("columns differ in length", "x", w.XLen, "y", w.YLen, "using", w.Len())
		}),
	}, style...), nil
}

func (f *plotFlags) inputName() string {
	if f.input.csv != "" {
		return f.input.csv
	}
	return fmt.Sprintf("%d %s points", f.input.random, f.input.dist)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "scatterview",
		Short:        "scatterview plots point clouds on the GPU",
		Long:         `scatterview reads two numeric columns from a CSV file (or generates random points) and draws them as a GPU scatter plot, a PNG snapshot, or a small preview server.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SetContext(withLogger(cmd.Context(), newLogger(stderr, verbose)))
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newShowCmd())
	root.AddCommand(newSnapshotCmd())
	root.AddCommand(newInfoCmd())
	root.AddCommand(newServeCmd())
	return root
}

// newPlotCmd returns a subcommand carrying the shared plot flags.
func newPlotCmd(use, short string, f *plotFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
	}
	f.input.register(cmd.Flags())
	f.style.register(cmd.Flags())
	return cmd
}
