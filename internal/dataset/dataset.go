// Package dataset loads and generates coordinate columns for scatterview.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
)

// ErrNoColumn is returned when a requested column does not exist.
var ErrNoColumn = errors.New("dataset: no such column")

// Columns is a pair of coordinate sequences.
type Columns struct {
	XName, YName string
	X, Y         []float64
}

// Len returns the number of complete pairs.
func (c *Columns) Len() int {
	return min(len(c.X), len(c.Y))
}

// ParseError reports a CSV cell that is not a number.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dataset: line %d, column %s: %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// CSVOptions selects the columns read by ReadCSV.
type CSVOptions struct {
	// X and Y name the columns, either by header name or by zero-based
	// index ("0", "1"). Empty means the first and second column.
	X, Y string

	// Header, when true, treats the first record as column names.
	Header bool

	// Comma is the field delimiter. Zero means ','.
	Comma rune
}

// LoadCSV reads two columns from a CSV file.
func LoadCSV(path string, opts CSVOptions) (*Columns, error) {
	f, err := os.Open(path) //nolint:gosec // path is caller-provided
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, opts)
}

// ReadCSV reads two numeric columns from r.
//
// Empty cells and the literals "nan", "inf" and "-inf" (any case) are
// accepted and become NaN or ±Inf, so gaps survive into the plot instead
// of aborting the load. Short records leave the sequences unequal in
// length; the plot reconciles them.
func ReadCSV(r io.Reader, opts CSVOptions) (*Columns, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	cr.TrimLeadingSpace = true
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	var header []string
	if opts.Header {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return &Columns{}, nil
			}
			return nil, fmt.Errorf("dataset: header: %w", err)
		}
		header = append([]string(nil), rec...)
	}

	xi, xname, err := columnIndex(opts.X, 0, header)
	if err != nil {
		return nil, err
	}
	yi, yname, err := columnIndex(opts.Y, 1, header)
	if err != nil {
		return nil, err
	}

	cols := &Columns{XName: xname, YName: yname}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if xi < len(rec) {
			v, err := parseCell(rec[xi])
			if err != nil {
				return nil, &ParseError{Line: line, Column: xname, Value: rec[xi], Err: err}
			}
			cols.X = append(cols.X, v)
		}
		if yi < len(rec) {
			v, err := parseCell(rec[yi])
			if err != nil {
				return nil, &ParseError{Line: line, Column: yname, Value: rec[yi], Err: err}
			}
			cols.Y = append(cols.Y, v)
		}
	}
	return cols, nil
}

// columnIndex resolves a column selector against an optional header.
func columnIndex(sel string, def int, header []string) (int, string, error) {
	if sel == "" {
		if def < len(header) {
			return def, header[def], nil
		}
		return def, strconv.Itoa(def), nil
	}
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), sel) {
			return i, name, nil
		}
	}
	i, err := strconv.Atoi(sel)
	if err != nil || i < 0 || (header != nil && i >= len(header)) {
		return 0, "", fmt.Errorf("%w: %q", ErrNoColumn, sel)
	}
	if i < len(header) {
		return i, header[i], nil
	}
	return i, sel, nil
}

func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// Distribution selects the shape of generated data.
type Distribution int

const (
	// Uniform fills the unit square.
	Uniform Distribution = iota
	// Normal is a standard bivariate Gaussian.
	Normal
	// Spiral is a noisy two-arm spiral.
	Spiral
)

var distributionNames = [...]string{"uniform", "normal", "spiral"}

func (d Distribution) String() string {
	if int(d) < len(distributionNames) {
		return distributionNames[d]
	}
	return fmt.Sprintf("Distribution(%d)", int(d))
}

// ParseDistribution parses a distribution name.
func ParseDistribution(s string) (Distribution, error) {
	for i, name := range distributionNames {
		if strings.EqualFold(s, name) {
			return Distribution(i), nil
		}
	}
	return 0, fmt.Errorf("dataset: unknown distribution %q (want %s)", s, strings.Join(distributionNames[:], ", "))
}

// Random generates n points. The same seed always yields the same points.
func Random(n int, d Distribution, seed uint64) *Columns {
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	cols := &Columns{
		XName: "x",
		YName: "y",
		X:     make([]float64, n),
		Y:     make([]float64, n),
	}
	for i := range n {
		switch d {
		case Normal:
			cols.X[i], cols.Y[i] = rng.NormFloat64(), rng.NormFloat64()
		case Spiral:
			t := rng.Float64() * 4 * math.Pi
			arm := float64(i%2)*math.Pi + t
			cols.X[i] = t*math.Cos(arm) + rng.NormFloat64()*0.3
			cols.Y[i] = t*math.Sin(arm) + rng.NormFloat64()*0.3
		default:
			cols.X[i], cols.Y[i] = rng.Float64(), rng.Float64()
		}
	}
	return cols
}
