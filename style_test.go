package scatter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fullStyle = `
color      = "#FF5733"
background = [0.0, 0.0, 0.0]
size       = 4.0
width      = 1024.0
height     = 768.0
title      = "measurements"
x_range    = [-0.9, 0.9]
y_range    = [0.9, -0.9]
x_domain   = [0.0, 100.0]
y_domain   = [0.0, 1.0]
`

func TestDecodeStyle(t *testing.T) {
	opts, err := DecodeStyle(strings.NewReader(fullStyle))
	if err != nil {
		t.Fatalf("DecodeStyle() error = %v", err)
	}
	if len(opts) != 10 {
		t.Errorf("len(opts) = %d, want 10", len(opts))
	}
	cfg, err := buildConfig(opts)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Color != MustHex("#FF5733") || cfg.Background != (Color{0, 0, 0, 1}) {
		t.Errorf("colors = %+v / %+v", cfg.Color, cfg.Background)
	}
	if cfg.Size != 4 || cfg.Width != 1024 || cfg.Height != 768 || cfg.Title != "measurements" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.YRange != Range(0.9, -0.9) || *cfg.XDomain != Range(0, 100) {
		t.Errorf("y range %v, x domain %v", cfg.YRange, *cfg.XDomain)
	}
}

func TestDecodeStylePartial(t *testing.T) {
	opts, err := DecodeStyle(strings.NewReader(`size = 3.0`))
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := buildConfig(append([]Option{WithTitle("kept")}, opts...))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Size != 3 || cfg.Title != "kept" || cfg.Color != DefaultColor {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestDecodeStyleColorForms(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want Color
	}{
		{"hex", `color = "#00FF00"`, Color{0, 1, 0, 1}},
		{"float rgba", `color = [0.0, 1.0, 0.0, 0.5]`, Color{0, 1, 0, 0.5}},
		{"integer channels", `color = [0, 1, 0]`, Color{0, 1, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := DecodeStyle(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatal(err)
			}
			cfg, err := buildConfig(opts)
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Color != tt.want {
				t.Errorf("Color = %+v, want %+v", cfg.Color, tt.want)
			}
		})
	}
}

func TestDecodeStyleErrors(t *testing.T) {
	t.Run("unknown key", func(t *testing.T) {
		_, err := DecodeStyle(strings.NewReader("colour = \"#FFFFFF\"\n"))
		var ce *ConfigError
		if !errors.As(err, &ce) || !strings.Contains(ce.Error(), "colour") {
			t.Errorf("error = %v, want *ConfigError naming colour", err)
		}
	})
	t.Run("bad hex", func(t *testing.T) {
		_, err := DecodeStyle(strings.NewReader(`color = "red"`))
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Errorf("error = %v, want *FormatError", err)
		}
	})
	t.Run("integer color", func(t *testing.T) {
		_, err := DecodeStyle(strings.NewReader(`color = 12345`))
		var te *TypeError
		if !errors.As(err, &te) {
			t.Errorf("error = %v, want *TypeError", err)
		}
	})
	t.Run("string in channels", func(t *testing.T) {
		_, err := DecodeStyle(strings.NewReader(`color = ["a", "b", "c"]`))
		var te *TypeError
		if !errors.As(err, &te) {
			t.Errorf("error = %v, want *TypeError", err)
		}
	})
	t.Run("syntax", func(t *testing.T) {
		if _, err := DecodeStyle(strings.NewReader(`size = `)); err == nil {
			t.Error("expected a decode error")
		}
	})
}

func TestLoadStyle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.toml")
	if err := os.WriteFile(path, []byte(fullStyle), 0o600); err != nil {
		t.Fatal(err)
	}
	opts, err := LoadStyle(path)
	if err != nil {
		t.Fatalf("LoadStyle() error = %v", err)
	}
	if len(opts) != 10 {
		t.Errorf("len(opts) = %d, want 10", len(opts))
	}

	if _, err := LoadStyle(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadStyle(missing) error = %v, want os.ErrNotExist", err)
	}
}
