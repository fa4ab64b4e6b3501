package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/lox/lang"
	"github.com/ardnew/lox/log"
)

// SearchPathEnv names the environment variable holding extra script
// directories, separated by [os.PathListSeparator].
const SearchPathEnv = "LOXPATH"

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// Settings are the global options shared by every command.
type Settings struct {
	Defines  []string
	Include  []string
	MaxDepth int
	CacheDir string
	Logger   log.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

type settingsKey struct{}

// WithSettings returns a new context.Context carrying s.
func WithSettings(ctx context.Context, s Settings) context.Context {
	return context.WithValue(ctx, settingsKey{}, s)
}

// settingsFrom retrieves the Settings stored by WithSettings, filling in
// the standard streams where none were given.
func settingsFrom(ctx context.Context) Settings {
	s, _ := ctx.Value(settingsKey{}).(Settings)

	if s.Stdin == nil {
		s.Stdin = os.Stdin
	}

	if s.Stdout == nil {
		s.Stdout = os.Stdout
	}

	if s.Stderr == nil {
		s.Stderr = os.Stderr
	}

	return s
}

// options returns the interpreter options implied by s.
func (s Settings) options() []lang.Option {
	return []lang.Option{
		lang.WithLogger(s.Logger),
		lang.WithOutput(s.Stdout),
		lang.WithMaxDepth(s.MaxDepth),
	}
}

// interpreter returns a fresh interpreter with every --define bound as a
// global.
func (s Settings) interpreter() (*lang.Interpreter, error) {
	globals, err := evalDefines(s.Defines)
	if err != nil {
		return nil, err
	}

	in := lang.NewInterpreter(s.options()...)
	for name, v := range globals {
		in.Define(name, v)
	}

	return in, nil
}

// searchPath returns the directories searched for scripts: the --include
// directories followed by those of $LOXPATH, keeping only directories that
// exist.
func (s Settings) searchPath() []string {
	joined := mung.Make(
		mung.WithSubjectItems(os.Getenv(SearchPathEnv)),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(s.Include...),
		mung.WithFilter(isDir),
	).String()

	var dirs []string

	for _, dir := range strings.Split(joined, string(os.PathListSeparator)) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}

	return dirs
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

// openScript opens the script named by path. "-" reads standard input.
// A relative path that does not exist in the working directory is looked
// up in each directory of the search path in order.
func (s Settings) openScript(ctx context.Context, path string) (io.ReadCloser, string, error) {
	if path == stdinSource {
		return io.NopCloser(s.Stdin), "<stdin>", nil
	}

	candidates := []string{path}

	if !filepath.IsAbs(path) {
		for _, dir := range s.searchPath() {
			candidates = append(candidates, filepath.Join(dir, path))
		}
	}

	for _, name := range candidates {
		info, err := os.Stat(name)
		if err != nil || info.IsDir() {
			continue
		}

		f, err := os.Open(name)
		if err != nil {
			return nil, name, ErrReadScript.
				With(slog.String("script", name)).
				Wrap(err)
		}

		s.Logger.DebugContext(ctx, "script opened",
			slog.String("script", name))

		return f, name, nil
	}

	return nil, path, ErrScriptFound.
		With(slog.String("script", path)).
		With(slog.Int("search_dirs", len(candidates)-1))
}

// compile reads and compiles the script named by path. Diagnostics are
// left in the program for the caller to report.
func (s Settings) compile(ctx context.Context, path string) (*lang.Program, error) {
	src, name, err := s.openScript(ctx, path)
	if err != nil {
		return nil, Exit(ExitNoInput, err)
	}
	defer src.Close()

	prog, compileErr := lang.CompileReader(ctx, src, s.options()...)
	if prog == nil {
		return nil, Exit(ExitNoInput, ErrReadScript.
			With(slog.String("script", name)).
			Wrap(compileErr))
	}

	s.Logger.DebugContext(ctx, "script compiled",
		slog.String("script", name),
		slog.Int("statements", len(prog.Statements)),
		slog.Int("errors", len(prog.Errors)),
		slog.Bool("runnable", prog.Runnable()))

	return prog, nil
}

// report writes each diagnostic to the error stream, one per line.
func (s Settings) report(errs ...error) {
	for _, err := range errs {
		if err != nil {
			_, _ = io.WriteString(s.Stderr, err.Error()+"\n")
		}
	}
}
