//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/lox/log"
	"github.com/ardnew/lox/pkg"
	"github.com/ardnew/lox/profile"
)

type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModeEnum}" help:"Profile the interpreter (${enum})." placeholder:"MODE"`
	Dir  string `default:"${pprofDir}"                          help:"Profile output directory."           type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
		"pprofDir":      pkg.CachePath(profile.Tag),
	}
}

func (pprofConfig) group() kong.Group {
	return kong.Group{Key: "pprof", Title: "Profiling (pprof)"}
}

// start starts profiling if a mode was given and returns the function that
// stops it.
func (f pprofConfig) start(ctx context.Context) (stop func()) {
	if f.Mode == "" {
		return func() {}
	}

	log.DebugContext(ctx, "pprof start",
		slog.String("mode", f.Mode),
		slog.String("dir", f.Dir))

	p := profile.New(
		profile.WithMode(f.Mode),
		profile.WithPath(f.Dir),
		profile.WithQuiet(true),
	).Start()

	return func() {
		log.DebugContext(ctx, "pprof stop",
			slog.String("mode", f.Mode),
			slog.String("dir", f.Dir))
		p.Stop()
	}
}
