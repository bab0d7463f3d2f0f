package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/gogpu/scatter"
)

func newInfoCmd() *cobra.Command {
	var f plotFlags

	cmd := newPlotCmd("info", "Describe the input and the resolved plot style", &f)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		p, cols, err := f.build(cmd)
		if err != nil {
			return err
		}
		defer p.Close()

		cfg := p.Config()
		t := &table{title: p.Title()}
		t.add("points", "%s", formatCount(p.Points().Len()))
		t.add("x", "%s %s", cols.XName, extent(cols.X))
		t.add("y", "%s %s", cols.YName, extent(cols.Y))
		t.add("color", "%s", cfg.Color.Hex())
		t.add("background", "%s", cfg.Background.Hex())
		t.add("size", "%gpx", cfg.Size)
		t.add("viewport", "%gx%g", cfg.Width, cfg.Height)

		if n := nonFinite(cols.X[:cols.Len()], cols.Y[:cols.Len()]); n > 0 {
			t.warn(formatCount(n) + " points have a non-finite coordinate and are not drawn")
		}
		for _, w := range p.Warnings() {
			t.warn(fmt.Sprintf("x has %s values, y has %s; using the first %s",
				formatCount(w.XLen), formatCount(w.YLen), formatCount(w.Len())))
		}
		return t.render(cmd.OutOrStdout())
	}
	return cmd
}

func extent(vs []float64) string {
	lo, hi, ok := scatter.Extent(vs)
	if !ok {
		return "[no finite values]"
	}
	return fmt.Sprintf("[%g, %g]", lo, hi)
}

func nonFinite(xs, ys []float64) int {
	n := 0
	for i := range xs {
		if isNonFinite(xs[i]) || isNonFinite(ys[i]) {
			n++
		}
	}
	return n
}

func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
