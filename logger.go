package scatter

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/scatter/internal/gpu"
	"github.com/gogpu/scatter/internal/window"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for scatter and its internal packages.
// By default, scatter produces no log output. Pass nil to restore the
// silent default.
//
// Log levels used by scatter:
//   - [slog.LevelDebug]: buffer sizes, pipeline state transitions
//   - [slog.LevelInfo]: lifecycle events (window opened, device selected)
//   - [slog.LevelWarn]: length mismatches, resource release errors
//
// Example:
//
//	scatter.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	gpu.SetLogger(l)
	window.SetLogger(l)
}

// Logger returns the current logger used by scatter.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
