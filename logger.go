package svggeom

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/benoitkugler/svggeom/svgtree"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for svggeom and the svgtree parser.
// By default, nothing is logged. Pass nil to restore this behavior.
//
// Log levels used:
//   - [slog.LevelDebug]: features recognized but not applied (filters,
//     clip paths, masks, gradient paints)
//   - [slog.LevelInfo]: documents loaded by the loader package
//   - [slog.LevelWarn]: unsupported elements, with the warn error mode
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	svgtree.SetLogger(l)
}

// Logger returns the current logger, shared with sub-packages.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
