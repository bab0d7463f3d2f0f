package scatter

import "math"

// AxisRange is an ordered (Lo, Hi) pair. Lo may exceed Hi to invert the
// axis.
type AxisRange struct {
	Lo, Hi float64
}

// Range creates an AxisRange.
func Range(lo, hi float64) AxisRange {
	return AxisRange{Lo: lo, Hi: hi}
}

// ClipRange is the GPU clip-space range, the default mapping target.
var ClipRange = AxisRange{Lo: -1, Hi: 1}

// Mid returns the midpoint of the range.
func (r AxisRange) Mid() float64 {
	return (r.Lo + r.Hi) / 2
}

// Affine is the per-axis linear transform f(v) = A*v + B.
type Affine struct {
	A, B float64
}

// NewAffine returns the transform mapping [srcMin, srcMax] onto target so
// that f(srcMin) == target.Lo and f(srcMax) == target.Hi. An inverted target only
// flips the sign of the slope.
//
// A degenerate domain (srcMin == srcMax, or a non-finite span) maps every value
// to the midpoint of target.
func NewAffine(srcMin, srcMax float64, target AxisRange) Affine {
	span := srcMax - srcMin
	if span == 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return Affine{A: 0, B: target.Mid()}
	}
	a := (target.Hi - target.Lo) / span
	return Affine{A: a, B: target.Lo - a*srcMin}
}

// Apply maps v.
func (f Affine) Apply(v float64) float64 {
	return f.A*v + f.B
}

// Extent returns the minimum and maximum of the finite values in vs.
// ok is false when vs has no finite value.
func Extent[T Float](vs []T) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		lo = math.Min(lo, f)
		hi = math.Max(hi, f)
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}
