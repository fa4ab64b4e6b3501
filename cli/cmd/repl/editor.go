package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/lox/lang"
	"github.com/ardnew/lox/log"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand] for composing a multi-line
// program in the user's editor. It compiles the result and offers to
// re-edit while there are diagnostics.
type editCommand struct {
	ctxFunc func() context.Context
	source  string
	opts    []lang.Option
	logger  log.Logger
	prog    *lang.Program
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-compile-retry loop. An emptied file leaves prog
// nil. If the user declines to re-edit, it returns [ErrEditDeclined].
func (c *editCommand) Run() error {
	ctx := c.ctxFunc()

	f, err := os.CreateTemp("", "lox-edit-*.lox")
	if err != nil {
		return err
	}

	path := f.Name()

	defer os.Remove(path)

	if err := f.Close(); err != nil {
		return err
	}

	content := c.source

	for {
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, path); err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		content = string(data)
		if strings.TrimSpace(content) == "" {
			return nil
		}

		prog, _ := lang.Compile(ctx, content, c.opts...)

		c.logger.TraceContext(ctx, "editor compile attempt",
			slog.Int("content_length", len(content)),
			slog.Int("errors", len(prog.Errors)))

		if len(prog.Errors) == 0 {
			c.prog, c.source = prog, content

			return nil
		}

		for _, e := range prog.Errors {
			fmt.Fprintln(c.stderr, e)
		}

		fmt.Fprint(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}
	}
}

// runEditor runs $EDITOR (or vi) on path and waits for it to exit.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
