package scatter

// ColorSpec is one of the color representations accepted at the API
// boundary: Hex, Channels or Color. It is resolved once by ParseColor;
// everything past construction sees only Color.
type ColorSpec interface {
	resolve() (Color, error)
}

// Hex is a "#RRGGBB" or "#RRGGBBAA" color string.
type Hex string

// Channels is an explicit 3- or 4-tuple of normalized channels.
// A 3-tuple is opaque.
type Channels []float64

func (h Hex) resolve() (Color, error) { return FromHex(string(h)) }

func (ch Channels) resolve() (Color, error) {
	switch len(ch) {
	case 3:
		return Color{R: ch[0], G: ch[1], B: ch[2], A: 1}, nil
	case 4:
		return Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
	default:
		return Color{}, &TypeError{Value: []float64(ch)}
	}
}

func (c Color) resolve() (Color, error) { return c, nil }

// ParseColor resolves a color given in any supported representation.
//
// Strings must be hex colors; a malformed string yields a *FormatError.
// Float slices and arrays of length 3 or 4 are taken as channels without
// clamping. A value of any other type, or a sequence of the wrong length,
// yields a *TypeError.
func ParseColor(v any) (Color, error) {
	// Pointers to spec types also satisfy ColorSpec, so they are matched
	// first to reject nil.
	switch c := v.(type) {
	case *Color:
		if c == nil {
			return Color{}, &TypeError{Value: v}
		}
		return *c, nil
	case *Hex:
		if c == nil {
			return Color{}, &TypeError{Value: v}
		}
		return c.resolve()
	case *Channels:
		if c == nil {
			return Color{}, &TypeError{Value: v}
		}
		return c.resolve()
	case ColorSpec:
		return c.resolve()
	case string:
		return FromHex(c)
	case []float64:
		return Channels(c).resolve()
	case []float32:
		return Channels(widen(c)).resolve()
	case [3]float64:
		return Channels(c[:]).resolve()
	case [4]float64:
		return Channels(c[:]).resolve()
	case [3]float32:
		return Channels(widen(c[:])).resolve()
	case [4]float32:
		return Channels(widen(c[:])).resolve()
	default:
		return Color{}, &TypeError{Value: v}
	}
}

func widen(s []float32) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}
