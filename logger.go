package legacytex

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip attribute formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while textures are being created elsewhere.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for legacytex and backend/native.
// By default, legacytex produces no log output.
//
// Pass nil to restore the default silent behavior.
//
// Log levels used by legacytex:
//   - [slog.LevelDebug]: texture construction (type, format, pool, map
//     mode), primary and resolve image creation with tiling, layout and
//     sample count, subresource buffer sizes, view set builds and sampled
//     view rebuilds after a LOD clamp
//   - [slog.LevelWarn]: optimal tiling unsupported and linear used,
//     reported memory the device refused to take back, and (in
//     backend/native) requests refused by the memory budget
//
// Nothing is logged at [slog.LevelInfo] or [slog.LevelError]; failures are
// returned as errors instead.
//
// Example:
//
//	legacytex.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by legacytex. backend/native logs
// its budget refusals through it.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
