package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/lox/log"
)

// logFormat configures the default logger as a side effect of parsing, so
// the format applies to messages logged while kong is still running.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the default logger level as a side effect of parsing.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"${logLevelEnum}"  help:"Set log level (${enum})."`
	Format     logFormat `default:"json"    enum:"${logFormatEnum}" help:"Set log format (${enum})."`
	TimeLayout string    `default:"RFC3339"                         help:"Set timestamp layout, or 'none'."`
	Caller     bool      `default:"false"                           help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                            help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start applies every parsed logging flag to the default logger.
func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan applies logger flags found in args before kong parses them, so
// errors reported during parsing honor them regardless of flag position.
// Boolean flags never pass through UnmarshalText and need this pass.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		name, value, assigned := strings.Cut(args[i], "=")

		negate := false
		if rest, ok := strings.CutPrefix(name, "--no-log-"); ok {
			name, negate = rest, true
		} else if rest, ok := strings.CutPrefix(name, "--log-"); ok {
			name = rest
		} else {
			continue
		}

		switch name {
		case "level", "format":
			if negate {
				continue
			}

			if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
				value = args[i]
			}

			if name == "level" {
				_ = f.Level.UnmarshalText([]byte(value))
			} else {
				_ = f.Format.UnmarshalText([]byte(value))
			}

		case "pretty", "caller":
			enable := true
			if assigned {
				v, err := strconv.ParseBool(value)
				if err != nil {
					continue
				}

				enable = v
			}

			if negate {
				enable = !enable
			}

			if name == "pretty" {
				f.Pretty = enable
				log.Config(log.WithPretty(enable))
			} else {
				f.Caller = enable
				log.Config(log.WithCaller(enable))
			}
		}
	}
}
