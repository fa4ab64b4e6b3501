package cmd

import (
	"context"
	"path/filepath"

	"github.com/ardnew/lox/cli/cmd/repl"
	"github.com/ardnew/lox/lang"
)

// Repl starts the interactive prompt.
type Repl struct {
	NoHistory bool `help:"Do not read or write the history file." name:"no-history"`
}

// Run executes the repl command. Every --define is bound before the first
// line is read.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := settingsFrom(ctx)

	globals, err := evalDefines(s.Defines)
	if err != nil {
		return err
	}

	var history string
	if !r.NoHistory && s.CacheDir != "" {
		history = filepath.Join(s.CacheDir, repl.HistoryFile)
	}

	return repl.Run(ctx,
		repl.WithInput(s.Stdin),
		repl.WithOutput(s.Stdout),
		repl.WithErrorOutput(s.Stderr),
		repl.WithHistory(history),
		repl.WithLogger(s.Logger),
		repl.WithGlobals(globals),
		repl.WithLangOptions(lang.WithMaxDepth(s.MaxDepth)),
	)
}
