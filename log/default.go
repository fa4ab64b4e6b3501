package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// DefaultContextProvider returns the context used by the logging functions
// and methods that do not take one.
var DefaultContextProvider = context.TODO

var defaultLog atomic.Pointer[Logger]

func init() {
	l := Make(os.Stderr)
	defaultLog.Store(&l)
}

// Default returns the package-level logger.
func Default() Logger { return *defaultLog.Load() }

// SetDefault replaces the package-level logger.
func SetDefault(l Logger) { defaultLog.Store(&l) }

// Config reconfigures the package-level logger with opts.
func Config(opts ...Option) {
	SetDefault(Default().Wrap(opts...))
}

// With returns the package-level logger with attrs added to each message.
func With(attrs ...slog.Attr) Logger {
	return Default().With(attrs...)
}

func logDefault(ctx context.Context, level Level, msg string, attrs []slog.Attr) {
	Default().logSkip(ctx, callerSkip, level, msg, attrs)
}

// TraceContext logs at Trace level using the package-level logger.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelTrace, msg, attrs)
}

// DebugContext logs at Debug level using the package-level logger.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelDebug, msg, attrs)
}

// Debug logs at Debug level using the package-level logger.
func Debug(msg string, attrs ...slog.Attr) {
	logDefault(DefaultContextProvider(), LevelDebug, msg, attrs)
}

// InfoContext logs at Info level using the package-level logger.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelInfo, msg, attrs)
}

// Info logs at Info level using the package-level logger.
func Info(msg string, attrs ...slog.Attr) {
	logDefault(DefaultContextProvider(), LevelInfo, msg, attrs)
}

// WarnContext logs at Warn level using the package-level logger.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelWarn, msg, attrs)
}

// Warn logs at Warn level using the package-level logger.
func Warn(msg string, attrs ...slog.Attr) {
	logDefault(DefaultContextProvider(), LevelWarn, msg, attrs)
}

// ErrorContext logs at Error level using the package-level logger.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelError, msg, attrs)
}

// Error logs at Error level using the package-level logger.
func Error(msg string, attrs ...slog.Attr) {
	logDefault(DefaultContextProvider(), LevelError, msg, attrs)
}
