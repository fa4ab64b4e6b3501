package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/lox/lang"
	"github.com/ardnew/lox/log"
)

// Prompt is printed before each line of input.
const Prompt = "> "

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle         = suggestionStyle.Bold(true)
	selectedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

type config struct {
	input     io.Reader
	output    io.Writer
	errOutput io.Writer
	history   string
	logger    log.Logger
	globals   map[string]lang.Value
	lang      []lang.Option
	terminal  *bool
}

// Option configures a session.
type Option func(config) config

// WithInput sets the source of input lines. Defaults to os.Stdin.
func WithInput(r io.Reader) Option {
	return func(c config) config {
		c.input = r

		return c
	}
}

// WithOutput sets the destination of prompts and print output. Defaults to
// os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c config) config {
		c.output = w

		return c
	}
}

// WithErrorOutput sets the destination of diagnostics in line mode.
// Defaults to os.Stderr.
func WithErrorOutput(w io.Writer) Option {
	return func(c config) config {
		c.errOutput = w

		return c
	}
}

// WithHistory sets the history file. An empty path keeps history in memory.
func WithHistory(path string) Option {
	return func(c config) config {
		c.history = path

		return c
	}
}

// WithLogger sets the logger for session and interpreter tracing.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger

		return c
	}
}

// WithGlobals binds each value as a global before the first line runs.
func WithGlobals(globals map[string]lang.Value) Option {
	return func(c config) config {
		c.globals = globals

		return c
	}
}

// WithLangOptions passes opts to the compiler and interpreter. An output
// set here is overridden by the session.
func WithLangOptions(opts ...lang.Option) Option {
	return func(c config) config {
		c.lang = append(c.lang, opts...)

		return c
	}
}

// WithTerminal forces the full-screen interface on or off instead of
// detecting whether input and output are terminals.
func WithTerminal(enable bool) Option {
	return func(c config) config {
		c.terminal = &enable

		return c
	}
}

func makeConfig(opts ...Option) config {
	c := config{
		input:     os.Stdin,
		output:    os.Stdout,
		errOutput: os.Stderr,
	}

	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// isTerminal reports whether both streams are attached to a terminal.
func (c config) isTerminal() bool {
	if c.terminal != nil {
		return *c.terminal
	}

	return isTTY(c.input) && isTTY(c.output)
}

func isTTY(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run reads and runs lines until a blank line or end of input. Each line
// is a complete program; globals persist from line to line and a failing
// line does not end the session.
//
// On a terminal Run shows an interactive editor with completion and
// history. Otherwise it prints [Prompt] and reads plain lines.
func Run(ctx context.Context, opts ...Option) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	c := makeConfig(opts...)

	c.logger.TraceContext(ctx, "repl start",
		slog.Bool("terminal", c.isTerminal()),
		slog.String("history", c.history),
		slog.Int("globals", len(c.globals)))

	if c.isTerminal() {
		return runTerminal(ctx, c)
	}

	return runLines(ctx, c)
}

// runLines is the plain line loop used when not attached to a terminal.
func runLines(ctx context.Context, c config) error {
	sess := newSession(c.output, c)
	scanner := bufio.NewScanner(c.input)

	for {
		if _, err := io.WriteString(c.output, Prompt); err != nil {
			return err
		}

		if !scanner.Scan() {
			return scanner.Err()
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			return nil
		}

		for _, err := range sess.eval(ctx, line) {
			fmt.Fprintln(c.errOutput, err)
		}
	}
}

// runTerminal runs the bubbletea interface.
func runTerminal(ctx context.Context, c config) error {
	history := NewHistory(c.history)
	if err := history.Load(); err != nil {
		c.logger.WarnContext(ctx, "could not load history",
			slog.String("path", c.history),
			slog.Any("error", err))
	}

	m := newModel(ctx, c, history)

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(c.input),
		tea.WithOutput(c.output))

	_, err := p.Run()

	return err
}
