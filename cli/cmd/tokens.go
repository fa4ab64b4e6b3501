package cmd

import (
	"context"
	"errors"

	"github.com/ardnew/lox/lang"
)

// Tokens prints the tokens of a script, one per line.
type Tokens struct {
	Script string `arg:"" default:"-" help:"Script file, or '-' for stdin." name:"script"`
}

// Run executes the tokens command. Only scanning diagnostics are
// reported, and any of them exits with [ExitDataErr].
func (t *Tokens) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := settingsFrom(ctx)

	prog, err := s.compile(ctx, t.Script)
	if err != nil {
		return err
	}

	if err := lang.FormatTokens(s.Stdout, prog.Tokens); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	var failed bool

	for _, e := range prog.Errors {
		var scanErr *lang.ScanError
		if errors.As(e, &scanErr) {
			s.report(e)

			failed = true
		}
	}

	if failed {
		return Exit(ExitDataErr, nil)
	}

	return nil
}
