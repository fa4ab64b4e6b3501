package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Logger is a leveled structured logger. Loggers are values; every method
// returns or uses a copy, so a Logger is safe for concurrent use.
//
// The zero Logger discards everything.
type Logger struct {
	*slog.Logger
	config
}

// Make creates a new [Logger] that writes to w. Without options the logger
// uses [DefaultFormat], [DefaultLevel], [DefaultTimeLayout] and
// [DefaultPretty], without caller information.
func Make(w io.Writer, opts ...Option) Logger {
	cfg := makeConfig(w, opts...)

	return Logger{
		Logger: slog.New(cfg.handler()),
		config: cfg,
	}
}

// Wrap returns a new [Logger] whose configuration is the current one with
// opts applied. Attributes added with [Logger.With] are not carried over.
func (l Logger) Wrap(opts ...Option) Logger {
	if l.Logger == nil {
		l.config = makeConfig(io.Discard)
	}

	cfg := l.with(opts...)

	return Logger{
		Logger: slog.New(cfg.handler()),
		config: cfg,
	}
}

// With returns a new [Logger] that includes attrs in each message.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.Logger == nil {
		return l
	}

	return Logger{
		Logger: slog.New(l.Handler().WithAttrs(attrs)),
		config: l.config,
	}
}

// Level returns the minimum level that is logged.
func (l Logger) Level() Level {
	if l.Logger == nil {
		return DefaultLevel
	}

	return l.level
}

// Format returns the output format.
func (l Logger) Format() Format {
	if l.Logger == nil {
		return DefaultFormat
	}

	return l.format
}

// TraceContext logs a message at Trace level with the provided context.
func (l Logger) TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelTrace, msg, attrs)
}

// Trace logs a message at Trace level.
func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelTrace, msg, attrs)
}

// DebugContext logs a message at Debug level with the provided context.
func (l Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelDebug, msg, attrs)
}

// Debug logs a message at Debug level.
func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelDebug, msg, attrs)
}

// InfoContext logs a message at Info level with the provided context.
func (l Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelInfo, msg, attrs)
}

// Info logs a message at Info level.
func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelInfo, msg, attrs)
}

// WarnContext logs a message at Warn level with the provided context.
func (l Logger) WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelWarn, msg, attrs)
}

// Warn logs a message at Warn level.
func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelWarn, msg, attrs)
}

// ErrorContext logs a message at Error level with the provided context.
func (l Logger) ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelError, msg, attrs)
}

// Error logs a message at Error level.
func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelError, msg, attrs)
}

// callerSkip is the number of frames between runtime.Callers and the code
// that called a logging method: runtime.Callers, log and the method itself.
const callerSkip = 3

func (l Logger) log(ctx context.Context, level Level, msg string, attrs []slog.Attr) {
	l.logSkip(ctx, callerSkip, level, msg, attrs)
}

// logSkip emits a record whose source is skip frames above runtime.Callers.
func (l Logger) logSkip(
	ctx context.Context,
	skip int,
	level Level,
	msg string,
	attrs []slog.Attr,
) {
	if l.Logger == nil || !l.Enabled(ctx, slog.Level(level)) {
		return
	}

	var pcs [1]uintptr
	if l.caller {
		runtime.Callers(skip+1, pcs[:])
	}

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pcs[0])
	r.AddAttrs(attrs...)

	_ = l.Handler().Handle(ctx, r)
}
