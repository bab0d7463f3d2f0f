package scatter

import (
	"errors"
	"testing"
)

func TestParseColor(t *testing.T) {
	red := Color{1, 0, 0, 1}
	half := Color{1, 0, 0, 0.5}
	hex := Hex("#FF0000")
	tests := []struct {
		name string
		in   any
		want Color
	}{
		{"string", "#FF0000", red},
		{"Hex", Hex("#FF000080"), Color{1, 0, 0, 128.0 / 255}},
		{"Channels rgb", Channels{1, 0, 0}, red},
		{"Channels rgba", Channels{1, 0, 0, 0.5}, half},
		{"float64 slice", []float64{1, 0, 0}, red},
		{"float32 slice", []float32{1, 0, 0, 0.5}, half},
		{"float64 array3", [3]float64{1, 0, 0}, red},
		{"float64 array4", [4]float64{1, 0, 0, 0.5}, half},
		{"float32 array3", [3]float32{1, 0, 0}, red},
		{"float32 array4", [4]float32{1, 0, 0, 0.5}, half},
		{"Color", half, half},
		{"*Color", &half, half},
		{"*Hex", &hex, red},
		{"*Channels", &Channels{1, 0, 0, 0.5}, half},
		// Channels are not clamped.
		{"out of range", []float64{2, -1, 0}, Color{2, -1, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%v) error = %v", tt.in, err)
			}
			if !colorNear(got, tt.want) {
				t.Errorf("ParseColor(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseColorTypeError(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"nil", nil},
		{"int", 0xFF5733},
		{"nil *Color", (*Color)(nil)},
		{"nil *Hex", (*Hex)(nil)},
		{"nil *Channels", (*Channels)(nil)},
		{"two channels", []float64{1, 0}},
		{"five channels", Channels{1, 0, 0, 1, 1}},
		{"empty", []float32{}},
		{"int slice", []int{255, 0, 0}},
		{"struct", struct{}{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseColor(tt.in)
			var te *TypeError
			if !errors.As(err, &te) {
				t.Fatalf("ParseColor(%v) error = %v, want *TypeError", tt.in, err)
			}
			if !errors.Is(err, ErrUnsupportedColor) {
				t.Error("TypeError should unwrap to ErrUnsupportedColor")
			}
			var fe *FormatError
			if errors.As(err, &fe) {
				t.Error("a type mismatch must not be reported as a format error")
			}
		})
	}
}

func TestParseColorMalformedString(t *testing.T) {
	for _, in := range []any{"FF5733", Hex("#12")} {
		_, err := ParseColor(in)
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Errorf("ParseColor(%v) error = %v, want *FormatError", in, err)
		}
	}
}
