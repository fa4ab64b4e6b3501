package cmd

import (
	"context"
	"log/slog"
)

// Run runs a script file. Without a script it starts the interactive
// prompt.
type Run struct {
	Script string `arg:"" help:"Script file to run, or '-' for stdin. Omit to start the prompt." name:"script" optional:""`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if r.Script == "" {
		return (&Repl{}).Run(ctx)
	}

	return runScript(ctx, settingsFrom(ctx), r.Script)
}

// runScript compiles and runs the script named by path.
//
// A runtime failure exits with [ExitSoftware]; otherwise any compile
// diagnostic exits with [ExitDataErr]. Statements that parsed still run
// when others did not, but nothing runs when resolution failed.
func runScript(ctx context.Context, s Settings, path string) error {
	in, err := s.interpreter()
	if err != nil {
		return err
	}

	prog, err := s.compile(ctx, path)
	if err != nil {
		return err
	}

	s.report(prog.Errors...)

	if !prog.Runnable() {
		return Exit(ExitDataErr, nil)
	}

	if err := in.Interpret(ctx, prog); err != nil {
		s.report(err)

		s.Logger.DebugContext(ctx, "script failed",
			slog.String("script", path),
			slog.Any("error", err))

		return Exit(ExitSoftware, nil)
	}

	if len(prog.Errors) > 0 {
		return Exit(ExitDataErr, nil)
	}

	return nil
}
