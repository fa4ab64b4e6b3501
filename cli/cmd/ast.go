package cmd

import (
	"context"
	"log/slog"
)

// AST prints the syntax tree of a script.
type AST struct {
	Format string `default:"sexpr" enum:"sexpr,json,yaml" help:"Output format (${enum})."    short:"f"`
	Indent int    `default:"2"                            help:"Indent width for json and yaml." short:"i"`

	Script string `arg:"" default:"-" help:"Script file, or '-' for stdin." name:"script"`
}

// Run executes the ast command. The statements that parsed are printed
// even when others did not; any diagnostic exits with [ExitDataErr].
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := settingsFrom(ctx)

	prog, err := s.compile(ctx, a.Script)
	if err != nil {
		return err
	}

	s.report(prog.Errors...)

	switch a.Format {
	case "sexpr", "":
		err = prog.Format(ctx, s.Stdout)
	case "json":
		err = prog.FormatJSON(ctx, s.Stdout, a.Indent)
	case "yaml":
		err = prog.FormatYAML(ctx, s.Stdout, a.Indent)
	default:
		return Exit(ExitUsage, ErrFormat.With(slog.String("format", a.Format)))
	}

	if err != nil {
		return ErrWriteOutput.With(slog.String("format", a.Format)).Wrap(err)
	}

	if len(prog.Errors) > 0 {
		return Exit(ExitDataErr, nil)
	}

	return nil
}
