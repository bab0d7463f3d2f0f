package scatter

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/vector"
)

// kappa is the cubic Bézier control distance approximating a quarter circle.
const kappa = 0.5522847498

// Snapshot rasterizes the plot on the CPU at its configured size: the same
// mapping, point size, color and background the window uses. Points with a
// non-finite coordinate are omitted.
//
// Snapshot needs no GPU or display. It fails with a *StateError when no
// data was set or the plot is closed.
func (p *ScatterPlot) Snapshot() (*image.RGBA, error) {
	p.mu.Lock()
	data, closed := p.data, p.closed
	p.mu.Unlock()
	switch {
	case closed:
		return nil, &StateError{Op: "snapshot", Err: ErrClosed}
	case data == nil:
		return nil, &StateError{Op: "snapshot", Err: ErrNoData}
	}

	w, h := pixels(p.cfg.Width), pixels(p.cfg.Height)
	return rasterize(data, w, h, p.cfg.Size, p.cfg.Color, p.cfg.Background), nil
}

// WritePNG encodes a Snapshot to w.
func (p *ScatterPlot) WritePNG(w io.Writer) error {
	img, err := p.Snapshot()
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// SavePNG writes a Snapshot to a PNG file.
func (p *ScatterPlot) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is caller-provided
	if err != nil {
		return fmt.Errorf("scatter: create %s: %w", path, err)
	}
	if err := p.WritePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// rasterize draws every point of data as an anti-aliased disc of diameter
// size pixels. Clip space maps onto the image with +y up.
func rasterize(data *PointBuffer, w, h int, size float64, fg, bg Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg.NRGBA()), image.Point{}, draw.Src)

	r := float32(size / 2)
	fw, fh := float32(w), float32(h)

	z := vector.NewRasterizer(w, h)
	drawn := 0
	for i := range data.Len() {
		x, y := data.XY(i)
		if !finite(x) || !finite(y) {
			continue
		}
		cx := (x + 1) / 2 * fw
		cy := (1 - y) / 2 * fh
		if cx+r < 0 || cy+r < 0 || cx-r > fw || cy-r > fh {
			continue
		}
		addCircle(z, cx, cy, r)
		drawn++
	}
	if drawn > 0 {
		z.Draw(img, img.Bounds(), image.NewUniform(fg.NRGBA()), image.Point{})
	}
	return img
}

// addCircle appends a closed circle path made of four cubic arcs.
func addCircle(z *vector.Rasterizer, cx, cy, r float32) {
	k := r * kappa
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
