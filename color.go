package scatter

import (
	"image/color"
	"strings"
)

// Color is a straight-alpha RGBA color. Each component is normalized to
// [0, 1]; values parsed from hex strings always are, values given as
// channels are taken as-is.
type Color struct {
	R, G, B, A float64
}

// NewColor creates a color from RGBA components.
func NewColor(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1.0}
}

// DefaultColor is the point color used when none is configured.
var DefaultColor = Color{R: 0, G: 0.5, B: 1, A: 1}

// White is the default background.
var White = RGB(1, 1, 1)

// FromHex parses "#RRGGBB" or "#RRGGBBAA". The leading '#' is required and
// alpha defaults to 1 when omitted. Any other shape returns a *FormatError.
func FromHex(s string) (Color, error) {
	if len(s) != 7 && len(s) != 9 || s[0] != '#' {
		return Color{}, &FormatError{Input: s}
	}
	digits := s[1:]

	var bytes [4]uint8
	bytes[3] = 255
	for i := 0; i < len(digits)/2; i++ {
		hi, ok1 := hexNibble(digits[2*i])
		lo, ok2 := hexNibble(digits[2*i+1])
		if !ok1 || !ok2 {
			return Color{}, &FormatError{Input: s}
		}
		bytes[i] = hi<<4 | lo
	}

	return Color{
		R: float64(bytes[0]) / 255,
		G: float64(bytes[1]) / 255,
		B: float64(bytes[2]) / 255,
		A: float64(bytes[3]) / 255,
	}, nil
}

// MustHex is like FromHex but panics on malformed input.
// It is intended for package-level color constants.
func MustHex(s string) Color {
	c, err := FromHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// Hex formats the color as "#RRGGBBAA". Components are clamped to [0, 1].
func (c Color) Hex() string {
	const digits = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(9)
	b.WriteByte('#')
	for _, v := range [4]float64{c.R, c.G, c.B, c.A} {
		u := to8bit(v)
		b.WriteByte(digits[u>>4])
		b.WriteByte(digits[u&0x0F])
	}
	return b.String()
}

// NRGBA converts the color to the standard library's 8-bit straight-alpha
// representation.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8bit(c.R), G: to8bit(c.G), B: to8bit(c.B), A: to8bit(c.A)}
}

// Premultiplied returns the color as four float32 channels with RGB
// multiplied by alpha, the layout the point shader consumes.
func (c Color) Premultiplied() [4]float32 {
	return [4]float32{
		float32(c.R * c.A),
		float32(c.G * c.A),
		float32(c.B * c.A),
		float32(c.A),
	}
}

func to8bit(v float64) uint8 {
	switch {
	case !(v > 0): // also catches NaN
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
