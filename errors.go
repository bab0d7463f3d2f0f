package scatter

import (
	"errors"
	"fmt"
)

// Sentinel errors. The struct error types below unwrap to one of these so
// callers can test with errors.Is.
var (
	// ErrInvalidHexColor is wrapped by every *FormatError.
	ErrInvalidHexColor = errors.New("scatter: invalid hex color format")

	// ErrUnsupportedColor is wrapped by every *TypeError.
	ErrUnsupportedColor = errors.New("scatter: unsupported color representation")

	// ErrNoData is returned by Show when the plot has no point buffer.
	ErrNoData = errors.New("scatter: no data set")

	// ErrClosed is returned when operating on a closed plot.
	ErrClosed = errors.New("scatter: plot is closed")

	// ErrShowing is returned by Show and Close while the plot's window is
	// open.
	ErrShowing = errors.New("scatter: plot is being shown")
)

// FormatError reports a malformed color string.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidHexColor, e.Input)
}

func (e *FormatError) Unwrap() error { return ErrInvalidHexColor }

// TypeError reports a color argument that is not a recognized color
// representation at all. It is a type mismatch, never a format problem.
type TypeError struct {
	Value any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: %T", ErrUnsupportedColor, e.Value)
}

func (e *TypeError) Unwrap() error { return ErrUnsupportedColor }

// StateError reports an operation invoked in a state that does not allow it.
type StateError struct {
	Op  string
	Err error
}

func (e *StateError) Error() string {
	return "scatter: " + e.Op + ": " + e.Err.Error()
}

func (e *StateError) Unwrap() error { return e.Err }

// ResourceError reports a GPU allocation, device or surface failure.
// It is fatal for the plot instance that observed it.
type ResourceError struct {
	Op  string
	Err error
}

func (e *ResourceError) Error() string {
	return "scatter: " + e.Op + ": " + e.Err.Error()
}

func (e *ResourceError) Unwrap() error { return e.Err }

// RenderInitError reports a shader or pipeline that failed to compile.
// Show returns it before the frame loop starts.
type RenderInitError struct {
	Stage string
	Err   error
}

func (e *RenderInitError) Error() string {
	return "scatter: render init (" + e.Stage + "): " + e.Err.Error()
}

func (e *RenderInitError) Unwrap() error { return e.Err }

// ConfigError reports an option value outside its valid domain.
type ConfigError struct {
	Field string
	Value any
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("scatter: invalid %s: %v", e.Field, e.Value)
}

// LengthMismatch is the warning raised when the x and y sequences differ
// in length. The point buffer is truncated to the shorter one. It
// implements error so it can be logged, but it is never returned as one.
type LengthMismatch struct {
	XLen, YLen int
}

func (w *LengthMismatch) Error() string {
	return fmt.Sprintf("scatter: x and y have different lengths (%d vs %d), using first %d points",
		w.XLen, w.YLen, w.Len())
}

// Len returns the reconciled length.
func (w *LengthMismatch) Len() int {
	return min(w.XLen, w.YLen)
}
