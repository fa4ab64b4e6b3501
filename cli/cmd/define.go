package cmd

import (
	"log/slog"
	"maps"
	"os"
	"runtime"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/ardnew/lox/lang"
)

// hostEnv returns the environment visible to --define expressions: a few
// facts about the host plus every name defined so far.
func hostEnv(defined map[string]any) map[string]any {
	env := map[string]any{
		"getenv": os.Getenv,
		"os":     runtime.GOOS,
		"arch":   runtime.GOARCH,
		"cwd": func() string {
			dir, err := os.Getwd()
			if err != nil {
				return "."
			}

			return dir
		},
	}

	maps.Copy(env, defined)

	return env
}

// evalDefines evaluates each NAME=EXPR definition in order. EXPR is an
// expr-lang expression that may refer to names defined before it.
func evalDefines(defs []string) (map[string]lang.Value, error) {
	values := make(map[string]lang.Value, len(defs))
	native := make(map[string]any, len(defs))

	for _, def := range defs {
		name, src, ok := strings.Cut(def, "=")
		name = strings.TrimSpace(name)

		if !ok || !isIdentifier(name) || strings.TrimSpace(src) == "" {
			return nil, Exit(ExitUsage,
				ErrDefineSyntax.With(slog.String("define", def)))
		}

		env := hostEnv(native)

		program, err := expr.Compile(src, expr.Env(env))
		if err != nil {
			return nil, Exit(ExitUsage, ErrDefineEval.
				With(slog.String("name", name)).
				Wrap(err))
		}

		out, err := expr.Run(program, env)
		if err != nil {
			return nil, Exit(ExitUsage, ErrDefineEval.
				With(slog.String("name", name)).
				Wrap(err))
		}

		v, err := lang.FromNative(out)
		if err != nil {
			return nil, Exit(ExitUsage, ErrDefineEval.
				With(slog.String("name", name)).
				Wrap(err))
		}

		values[name] = v
		native[name] = out
	}

	return values, nil
}

// isIdentifier reports whether name scans as exactly one identifier.
func isIdentifier(name string) bool {
	toks, errs := lang.Scan(name)

	return len(errs) == 0 && len(toks) == 2 &&
		toks[0].Kind == lang.KindIdentifier && toks[0].Lexeme == name
}
