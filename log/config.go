package log

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// FormatTime formats a log timestamp. An empty result omits the timestamp.
type FormatTime func(time.Time) string

// DefaultTimeLayout is the default used when no valid time layout is provided.
const DefaultTimeLayout = time.RFC3339

// DefaultCaller is the default setting for including caller information
// in log output.
const DefaultCaller = false

// DefaultPretty is the default setting for pretty printing log output.
const DefaultPretty = true

// config is the immutable configuration of a [Logger]. Options return
// modified copies.
type config struct {
	output     io.Writer
	formatTime FormatTime
	level      Level
	format     Format
	caller     bool
	pretty     bool
}

// Option applies a configuration option to config.
type Option func(config) config

func makeConfig(w io.Writer, opts ...Option) config {
	return config{}.with(append([]Option{WithDefaults(w)}, opts...)...)
}

func (c config) with(opts ...Option) config {
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// handler builds the slog.Handler for the configuration.
func (c config) handler() slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource:   c.caller,
		Level:       slog.Level(c.level),
		ReplaceAttr: c.replaceAttr,
	}

	switch {
	case c.format == FormatJSON && c.pretty:
		return newIndentHandler(c.output, opts)

	case c.format == FormatJSON:
		return slog.NewJSONHandler(c.output, opts)

	case c.format == FormatText && c.pretty:
		return newPrettyHandler(c.output, c.formatTime, opts)

	case c.format == FormatText:
		return slog.NewTextHandler(c.output, opts)

	default:
		return slog.DiscardHandler
	}
}

// replaceAttr renders timestamps with the configured layout and levels with
// their upper-case names, so TRACE is not shown as DEBUG-4.
func (c config) replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}

	switch a.Key {
	case slog.TimeKey:
		if t, ok := a.Value.Any().(time.Time); ok {
			s := c.formatTime(t)
			if s == "" {
				return slog.Attr{}
			}

			a.Value = slog.StringValue(s)
		}

	case slog.LevelKey:
		if l, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(strings.ToUpper(Level(l).String()))
		}
	}

	return a
}

// WithDefaults returns a functional option that resets every setting to its
// default and writes to w.
func WithDefaults(w io.Writer) Option {
	return func(config) config {
		if w == nil {
			w = io.Discard
		}

		return config{
			output:     w,
			formatTime: makeFormatTimeFunc(DefaultTimeLayout),
			level:      DefaultLevel,
			format:     DefaultFormat,
			caller:     DefaultCaller,
			pretty:     DefaultPretty,
		}
	}
}

// WithOutput returns a functional option that sets the output [io.Writer]
// for log messages.
// If a nil writer is provided, [io.Discard] is used instead.
func WithOutput(w io.Writer) Option {
	return func(c config) config {
		if w == nil {
			w = io.Discard
		}

		c.output = w

		return c
	}
}

// WithLevel returns a functional option that sets the minimum log level.
func WithLevel(level Level) Option {
	return func(c config) config {
		c.level = level

		return c
	}
}

// WithFormat returns a functional option that sets the output format.
func WithFormat(format Format) Option {
	return func(c config) config {
		c.format = format

		return c
	}
}

// WithTimeLayout returns a functional option that sets the layout used to
// format log timestamps.
//
// The layout may name one of the [time] package layouts, case-insensitively
// ("RFC3339", "kitchen", "stampmilli"), or use a short alias ("ms", "us",
// "ns"). Otherwise it is passed verbatim to [time.Time.Format]. An empty
// layout or "none" disables timestamps.
func WithTimeLayout(layout string) Option {
	return func(c config) config {
		c.formatTime = makeFormatTimeFunc(layout)

		return c
	}
}

// WithCaller returns a functional option that controls whether caller
// information is included in log output.
func WithCaller(enable bool) Option {
	return func(c config) config {
		c.caller = enable

		return c
	}
}

// WithPretty returns a functional option that controls pretty printing.
// Pretty text is aligned and styled for terminals; pretty JSON is indented.
func WithPretty(enable bool) Option {
	return func(c config) config {
		c.pretty = enable

		return c
	}
}

var timeLayout = map[string]string{
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"ansic":       time.ANSIC,
	"unixdate":    time.UnixDate,
	"rubydate":    time.RubyDate,
	"rfc822":      time.RFC822,
	"rfc822z":     time.RFC822Z,
	"rfc850":      time.RFC850,
	"kitchen":     time.Kitchen,
	"datetime":    time.DateTime,
	"stamp":       time.Stamp,
	"stampmilli":  time.StampMilli,
	"stampmicro":  time.StampMicro,
	"stampnano":   time.StampNano,
	"ms":          time.StampMilli,
	"us":          time.StampMicro,
	"ns":          time.StampNano,
	"none":        "",
}

func makeFormatTimeFunc(layout string) FormatTime {
	// Only letters and digits matter for matching named layouts.
	key := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}

		return -1
	}, strings.ToLower(layout))

	if std, ok := timeLayout[key]; ok {
		layout = std
	}

	if key == "" || layout == "" {
		return func(time.Time) string { return "" }
	}

	return func(t time.Time) string { return t.Format(layout) }
}
