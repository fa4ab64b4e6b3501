package log

import (
	"iter"
	"log/slog"
	"strings"
)

// Level represents the severity of a log message.
type Level slog.Level

const (
	LevelTrace Level = Level(slog.LevelDebug - 4)
	LevelDebug Level = Level(slog.LevelDebug)
	LevelInfo  Level = Level(slog.LevelInfo)
	LevelWarn  Level = Level(slog.LevelWarn)
	LevelError Level = Level(slog.LevelError)
)

// DefaultLevel is the default log level.
const DefaultLevel = LevelInfo

var levelName = map[Level]string{
	LevelTrace: "trace",
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
}

// String returns the lower-case name of the level. Levels between the named
// ones are rendered by [slog.Level].
func (l Level) String() string {
	if s, ok := levelName[l]; ok {
		return s
	}

	return strings.ToLower(slog.Level(l).String())
}

// Levels returns an iterator over the names of all defined log levels, from
// most to least verbose.
func Levels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, level := range []Level{
			LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError,
		} {
			if !yield(level.String()) {
				return
			}
		}
	}
}

// ParseLevel parses a level name, case-insensitively. Besides "trace" it
// accepts everything [slog.Level.UnmarshalText] does. Unknown names yield
// [DefaultLevel].
func ParseLevel(s string) Level {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "trace") {
		return LevelTrace
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel
	}

	return Level(l)
}

// Format represents the output format for log messages.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// DefaultFormat is the default log message format.
const DefaultFormat = FormatJSON

// String returns the name of the format.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// Formats returns an iterator over the names of all defined log formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, format := range []Format{FormatJSON, FormatText} {
			if !yield(format.String()) {
				return
			}
		}
	}
}

// ParseFormat parses a format name. Unknown names yield [DefaultFormat].
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return DefaultFormat
	}
}
