package scatter

// Float is the element type accepted for coordinates.
type Float interface {
	~float32 | ~float64
}

// Mapping selects the per-axis transform applied during ingestion.
type Mapping struct {
	// XRange and YRange are the output ranges. Zero values select ClipRange.
	XRange, YRange *AxisRange

	// XDomain and YDomain, when set, replace the data-derived extrema.
	XDomain, YDomain *AxisRange
}

// PointBuffer is the canonical, length-reconciled sequence of points in
// mapped target space. It is immutable once built.
type PointBuffer struct {
	points []Point2D
	xf, yf Affine
}

// Len returns the number of points.
func (b *PointBuffer) Len() int { return len(b.points) }

// At returns the i-th point.
func (b *PointBuffer) At(i int) Point2D { return b.points[i] }

// XY returns the i-th point's coordinates.
func (b *PointBuffer) XY(i int) (float32, float32) {
	p := b.points[i]
	return p.X, p.Y
}

// Points returns a copy of the points.
func (b *PointBuffer) Points() []Point2D {
	return append([]Point2D(nil), b.points...)
}

// Transforms returns the x and y transforms the buffer was mapped with.
func (b *PointBuffer) Transforms() (x, y Affine) { return b.xf, b.yf }

// Ingest reconciles xs and ys and maps them into target space.
//
// If the lengths differ, both are truncated to the shorter one and a
// *LengthMismatch is returned alongside the buffer; it is a warning, never
// a failure. Non-finite coordinates are accepted and mapped as-is; they are
// ignored when deriving extrema.
func Ingest[T Float](xs, ys []T, m Mapping) (*PointBuffer, *LengthMismatch) {
	var warn *LengthMismatch
	if len(xs) != len(ys) {
		warn = &LengthMismatch{XLen: len(xs), YLen: len(ys)}
	}
	n := min(len(xs), len(ys))
	xs, ys = xs[:n], ys[:n]

	xf := axisTransform(xs, m.XDomain, m.XRange)
	yf := axisTransform(ys, m.YDomain, m.YRange)

	pts := make([]Point2D, n)
	for i := range n {
		pts[i] = Point2D{
			X: float32(xf.Apply(float64(xs[i]))),
			Y: float32(yf.Apply(float64(ys[i]))),
		}
	}
	return &PointBuffer{points: pts, xf: xf, yf: yf}, warn
}

func axisTransform[T Float](vs []T, domain, target *AxisRange) Affine {
	out := ClipRange
	if target != nil {
		out = *target
	}
	if domain != nil {
		return NewAffine(domain.Lo, domain.Hi, out)
	}
	lo, hi, ok := Extent(vs)
	if !ok {
		return NewAffine(0, 0, out)
	}
	return NewAffine(lo, hi, out)
}
