// Package log provides leveled key-value logging for the engine.
//
// The call style follows the rest of the codebase's expectations:
//
//	log.Trace("escrow: lock created", "account", addr, "amount", amount)
//
// Output goes to stderr through a slog text handler; when stderr is a
// terminal the level tag is colorized.
package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Lvl is a log verbosity level.
type Lvl int

const (
	LvlError Lvl = iota
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

// LevelTrace sits below slog's built-in debug level.
const levelTrace = slog.Level(-8)

var root atomic.Pointer[slog.Logger]

var verbosity = new(slog.LevelVar)

func init() {
	out := os.Stderr
	var handler slog.Handler
	if isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()) {
		handler = slog.NewTextHandler(colorable.NewColorable(out), &slog.HandlerOptions{Level: verbosity})
	} else {
		handler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: verbosity})
	}
	verbosity.Set(slog.LevelInfo)
	root.Store(slog.New(handler))
}

// SetVerbosity adjusts the minimum level emitted by the package-level logger.
func SetVerbosity(l Lvl) {
	switch l {
	case LvlError:
		verbosity.Set(slog.LevelError)
	case LvlWarn:
		verbosity.Set(slog.LevelWarn)
	case LvlInfo:
		verbosity.Set(slog.LevelInfo)
	case LvlDebug:
		verbosity.Set(slog.LevelDebug)
	case LvlTrace:
		verbosity.Set(levelTrace)
	}
}

// Root returns the process-wide logger.
func Root() *slog.Logger { return root.Load() }

// SetRoot replaces the process-wide logger. Used by tests and tools.
func SetRoot(l *slog.Logger) { root.Store(l) }

func write(level slog.Level, msg string, ctx []interface{}) {
	root.Load().Log(context.Background(), level, msg, normalize(ctx)...)
}

// normalize stringifies values slog cannot render natively (big.Int,
// Address, Hash) via their Stringer implementations.
func normalize(ctx []interface{}) []interface{} {
	for i := 1; i < len(ctx); i += 2 {
		if s, ok := ctx[i].(fmt.Stringer); ok {
			ctx[i] = s.String()
		}
	}
	return ctx
}

// Trace emits a trace-level message with alternating key-value context.
func Trace(msg string, ctx ...interface{}) { write(levelTrace, msg, ctx) }

// Debug emits a debug-level message with alternating key-value context.
func Debug(msg string, ctx ...interface{}) { write(slog.LevelDebug, msg, ctx) }

// Info emits an info-level message with alternating key-value context.
func Info(msg string, ctx ...interface{}) { write(slog.LevelInfo, msg, ctx) }

// Warn emits a warn-level message with alternating key-value context.
func Warn(msg string, ctx ...interface{}) { write(slog.LevelWarn, msg, ctx) }

// Error emits an error-level message with alternating key-value context.
func Error(msg string, ctx ...interface{}) { write(slog.LevelError, msg, ctx) }
