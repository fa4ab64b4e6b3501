package repl

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/ardnew/lox/lang"
	"github.com/ardnew/lox/log"
)

// session runs one line at a time against an interpreter whose globals
// persist for the whole session.
type session struct {
	in     *lang.Interpreter
	opts   []lang.Option
	logger log.Logger
}

// newSession returns a session whose print statements write to w.
func newSession(w io.Writer, c config) *session {
	opts := append(slices.Clone(c.lang), lang.WithLogger(c.logger))
	in := lang.NewInterpreter(append(slices.Clone(opts), lang.WithOutput(w))...)

	for _, name := range slices.Sorted(maps.Keys(c.globals)) {
		in.Define(name, c.globals[name])
	}

	return &session{in: in, opts: opts, logger: c.logger}
}

// eval compiles line as a complete program and runs it. It returns every
// diagnostic followed by the runtime failure, if any. A program that did not
// resolve is not run.
func (s *session) eval(ctx context.Context, line string) []error {
	prog, _ := lang.Compile(ctx, line, s.opts...)

	return s.run(ctx, prog)
}

// run executes an already compiled program.
func (s *session) run(ctx context.Context, prog *lang.Program) []error {
	errs := slices.Clone(prog.Errors)

	if prog.Runnable() {
		if err := s.in.Interpret(ctx, prog); err != nil {
			errs = append(errs, err)
		}
	}

	s.logger.TraceContext(ctx, "repl eval result",
		slog.Int("statements", len(prog.Statements)),
		slog.Int("errors", len(errs)))

	return errs
}

// names returns the names bound in the global scope.
func (s *session) names() []string {
	return s.in.Globals().Names()
}

// lookup returns the global value bound to name.
func (s *session) lookup(name string) (lang.Value, bool) {
	return s.in.Globals().Lookup(name)
}
