package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/scatter"
)

func newShowCmd() *cobra.Command {
	var f plotFlags
	var fps bool

	cmd := newPlotCmd("show", "Open a window and draw the points", &f)
	cmd.Flags().BoolVar(&fps, "fps", false, "show the frame rate in the window title")
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		var extra []scatter.Option
		if fps {
			extra = append(extra, scatter.WithFrameHook(fpsTitle()))
		}
		p, cols, err := f.build(cmd, extra...)
		if err != nil {
			return err
		}
		defer p.Close()

		log := loggerFromContext(cmd.Context())
		log.Info("opening window", "points", p.Points().Len(), "x", cols.XName, "y", cols.YName)
		return p.Show()
	}
	return cmd
}

// fpsTitle returns a frame hook that appends the measured frame rate to
// the title once per second.
func fpsTitle() func(*scatter.ScatterPlot, scatter.FrameInfo) {
	var (
		base       string
		lastIndex  uint64
		lastSecond int64
	)
	return func(p *scatter.ScatterPlot, f scatter.FrameInfo) {
		if f.Index == 0 {
			base = p.Title()
		}
		sec := int64(f.Elapsed.Seconds())
		if sec == lastSecond {
			return
		}
		p.SetTitle(formatTitle(base, f.Index-lastIndex))
		lastIndex, lastSecond = f.Index, sec
	}
}
