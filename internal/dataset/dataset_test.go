package dataset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		opts   CSVOptions
		x, y   []float64
		xn, yn string
	}{
		{
			name:  "default columns",
			input: "1,2\n3,4\n",
			x:     []float64{1, 3}, y: []float64{2, 4},
			xn: "0", yn: "1",
		},
		{
			name:  "header by name",
			input: "time, value, other\n0,10,x\n1,20,y\n",
			opts:  CSVOptions{X: "time", Y: "value", Header: true},
			x:     []float64{0, 1}, y: []float64{10, 20},
			xn: "time", yn: "value",
		},
		{
			name:  "header by index",
			input: "a,b,c\n1,2,3\n",
			opts:  CSVOptions{X: "2", Y: "0", Header: true},
			x:     []float64{3}, y: []float64{1},
			xn: "c", yn: "a",
		},
		{
			name:  "semicolon",
			input: "1;2\n",
			opts:  CSVOptions{Comma: ';'},
			x:     []float64{1}, y: []float64{2},
			xn: "0", yn: "1",
		},
		{
			name:  "short record",
			input: "1,2\n3\n",
			x:     []float64{1, 3}, y: []float64{2},
			xn: "0", yn: "1",
		},
		{
			name:  "header only",
			input: "x,y\n",
			opts:  CSVOptions{Header: true},
			xn:    "x", yn: "y",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, err := ReadCSV(strings.NewReader(tt.input), tt.opts)
			if err != nil {
				t.Fatalf("ReadCSV() error = %v", err)
			}
			if !equal(cols.X, tt.x) || !equal(cols.Y, tt.y) {
				t.Errorf("columns = %v / %v, want %v / %v", cols.X, cols.Y, tt.x, tt.y)
			}
			if cols.XName != tt.xn || cols.YName != tt.yn {
				t.Errorf("names = %q / %q, want %q / %q", cols.XName, cols.YName, tt.xn, tt.yn)
			}
		})
	}
}

func equal(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestReadCSVGaps(t *testing.T) {
	cols, err := ReadCSV(strings.NewReader("1,\nNaN,inf\n-Inf,2\n"), CSVOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(cols.Y[0]) || !math.IsNaN(cols.X[1]) || !math.IsInf(cols.Y[1], 1) || !math.IsInf(cols.X[2], -1) {
		t.Errorf("columns = %v / %v", cols.X, cols.Y)
	}
	if cols.Len() != 3 {
		t.Errorf("Len() = %d, want 3", cols.Len())
	}
}

func TestReadCSVErrors(t *testing.T) {
	t.Run("not a number", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader("1,2\n3,abc\n"), CSVOptions{})
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("error = %v, want *ParseError", err)
		}
		if pe.Line != 2 || pe.Column != "1" || pe.Value != "abc" {
			t.Errorf("ParseError = %+v", pe)
		}
	})
	t.Run("unknown column", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader("a,b\n1,2\n"), CSVOptions{X: "c", Header: true})
		if !errors.Is(err, ErrNoColumn) {
			t.Errorf("error = %v, want ErrNoColumn", err)
		}
	})
	t.Run("index past header", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader("a,b\n1,2\n"), CSVOptions{Y: "5", Header: true})
		if !errors.Is(err, ErrNoColumn) {
			t.Errorf("error = %v, want ErrNoColumn", err)
		}
	})
	t.Run("name without header", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader("1,2\n"), CSVOptions{X: "time"})
		if !errors.Is(err, ErrNoColumn) {
			t.Errorf("error = %v, want ErrNoColumn", err)
		}
	})
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.csv")
	if err := os.WriteFile(path, []byte("x,y\n1,2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cols, err := LoadCSV(path, CSVOptions{Header: true})
	if err != nil {
		t.Fatal(err)
	}
	if cols.Len() != 1 {
		t.Errorf("Len() = %d", cols.Len())
	}
	if _, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv"), CSVOptions{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestRandom(t *testing.T) {
	for _, d := range []Distribution{Uniform, Normal, Spiral} {
		t.Run(d.String(), func(t *testing.T) {
			a := Random(100, d, 7)
			b := Random(100, d, 7)
			if a.Len() != 100 {
				t.Fatalf("Len() = %d", a.Len())
			}
			if !equal(a.X, b.X) || !equal(a.Y, b.Y) {
				t.Error("same seed produced different points")
			}
			c := Random(100, d, 8)
			if equal(a.X, c.X) {
				t.Error("different seeds produced identical points")
			}
		})
	}
}

func TestRandomUniformBounds(t *testing.T) {
	cols := Random(1000, Uniform, 1)
	for i := range cols.Len() {
		if x, y := cols.X[i], cols.Y[i]; x < 0 || x >= 1 || y < 0 || y >= 1 {
			t.Fatalf("point %d = (%v, %v) outside the unit square", i, x, y)
		}
	}
}

func TestParseDistribution(t *testing.T) {
	for _, s := range []string{"uniform", "Normal", "SPIRAL"} {
		d, err := ParseDistribution(s)
		if err != nil {
			t.Errorf("ParseDistribution(%q) error = %v", s, err)
		}
		if !strings.EqualFold(d.String(), s) {
			t.Errorf("ParseDistribution(%q) = %v", s, d)
		}
	}
	if _, err := ParseDistribution("poisson"); err == nil {
		t.Error("ParseDistribution(poisson) should fail")
	}
	if got := Distribution(9).String(); got != "Distribution(9)" {
		t.Errorf("String() = %q", got)
	}
}
