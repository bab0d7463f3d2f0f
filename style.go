package scatter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// styleFile is the TOML layout of a plot style.
//
//	color      = "#FF5733"          # or [r, g, b] / [r, g, b, a]
//	background = [1.0, 1.0, 1.0]
//	size       = 3
//	width      = 1024
//	height     = 768
//	title      = "measurements"
//	x_range    = [-0.9, 0.9]
//	y_range    = [0.9, -0.9]        # inverted
//	x_domain   = [0, 100]
//	y_domain   = [0, 1]
type styleFile struct {
	Color      any         `toml:"color"`
	Background any         `toml:"background"`
	Size       *float64    `toml:"size"`
	Width      *float64    `toml:"width"`
	Height     *float64    `toml:"height"`
	Title      *string     `toml:"title"`
	XRange     *[2]float64 `toml:"x_range"`
	YRange     *[2]float64 `toml:"y_range"`
	XDomain    *[2]float64 `toml:"x_domain"`
	YDomain    *[2]float64 `toml:"y_domain"`
}

// LoadStyle reads a TOML style file and returns the options it sets.
func LoadStyle(path string) ([]Option, error) {
	f, err := os.Open(path) //nolint:gosec // path is caller-provided
	if err != nil {
		return nil, fmt.Errorf("scatter: open style: %w", err)
	}
	defer f.Close()
	return DecodeStyle(f)
}

// DecodeStyle decodes a TOML style. Unknown keys are rejected with a
// *ConfigError so typos do not pass silently. Only keys present in the
// input produce options.
func DecodeStyle(r io.Reader) ([]Option, error) {
	var s styleFile
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, fmt.Errorf("scatter: decode style: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, &ConfigError{Field: "style key", Value: strings.Join(keys, ", ")}
	}

	var opts []Option
	if s.Color != nil {
		c, err := styleColor(s.Color)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithColor(c))
	}
	if s.Background != nil {
		c, err := styleColor(s.Background)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithBackground(c))
	}
	if s.Size != nil {
		opts = append(opts, WithSize(*s.Size))
	}
	if s.Width != nil {
		opts = append(opts, WithWidth(*s.Width))
	}
	if s.Height != nil {
		opts = append(opts, WithHeight(*s.Height))
	}
	if s.Title != nil {
		opts = append(opts, WithTitle(*s.Title))
	}
	if s.XRange != nil {
		opts = append(opts, WithXRange(s.XRange[0], s.XRange[1]))
	}
	if s.YRange != nil {
		opts = append(opts, WithYRange(s.YRange[0], s.YRange[1]))
	}
	if s.XDomain != nil {
		opts = append(opts, WithXDomain(s.XDomain[0], s.XDomain[1]))
	}
	if s.YDomain != nil {
		opts = append(opts, WithYDomain(s.YDomain[0], s.YDomain[1]))
	}
	return opts, nil
}

// styleColor converts a decoded TOML value into a Color. TOML arrays decode
// as []any holding int64 or float64 elements.
func styleColor(v any) (Color, error) {
	arr, ok := v.([]any)
	if !ok {
		return ParseColor(v)
	}
	ch := make(Channels, len(arr))
	for i, e := range arr {
		switch n := e.(type) {
		case float64:
			ch[i] = n
		case int64:
			ch[i] = float64(n)
		default:
			return Color{}, &TypeError{Value: v}
		}
	}
	return ParseColor(ch)
}
