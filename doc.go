// Package scatter renders large 2D point clouds on the GPU.
//
// # Overview
//
// scatter takes two coordinate sequences and a style, maps them into clip
// space and draws every point as an anti-aliased disc in a gogpu window,
// redrawing continuously until the window is closed. It is built for
// interactive frame rates with millions of points.
//
// # Quick Start
//
//	import "github.com/gogpu/scatter"
//
//	p, err := scatter.Scatter(xs, ys,
//	    scatter.WithColor("#FF5733"),
//	    scatter.WithSize(3),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p.SetTitle("measurements")
//	if err := p.Show(); err != nil { // blocks until the window is closed
//	    log.Fatal(err)
//	}
//
// # Pipeline
//
//	xs, ys + Config -> Ingest (reconcile, map) -> PointBuffer
//	    -> instance buffer (upload) -> point pipeline (draw) -> window (present)
//
// Each axis is mapped independently with an affine transform from the data
// extrema (or a declared domain, see WithXDomain) onto the output range
// (ClipRange unless WithXRange / WithYRange say otherwise). Aspect ratio is
// not preserved; pass explicit ranges for that.
//
// # Colors
//
// Colors may be given as hex strings ("#RRGGBB", "#RRGGBBAA"), as 3- or
// 4-element float sequences, or as a Color. See ParseColor.
//
// # Errors
//
// Construction errors (*FormatError, *TypeError, *ConfigError) are returned
// synchronously. Show returns *StateError without data, *RenderInitError
// when the pipeline cannot be built and *ResourceError for device failures.
// Mismatched x/y lengths are a warning (*LengthMismatch), not an error.
//
// # Logging
//
// scatter is silent by default. Call SetLogger to receive diagnostics.
package scatter
