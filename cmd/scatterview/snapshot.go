package main

import (
	"github.com/spf13/cobra"
)

func newSnapshotCmd() *cobra.Command {
	var f plotFlags
	var output string

	cmd := newPlotCmd("snapshot", "Render the points to a PNG file without a window", &f)
	cmd.Flags().StringVarP(&output, "output", "o", "scatter.png", "output PNG file")
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		p, _, err := f.build(cmd)
		if err != nil {
			return err
		}
		defer p.Close()

		if err := p.SavePNG(output); err != nil {
			return err
		}
		cfg := p.Config()
		loggerFromContext(cmd.Context()).Info("snapshot saved",
			"path", output, "points", p.Points().Len(),
			"width", cfg.Width, "height", cfg.Height)
		return nil
	}
	return cmd
}
