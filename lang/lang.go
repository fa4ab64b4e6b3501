package lang

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/lox/log"
)

// DefaultMaxDepth is the default limit on nested function calls.
const DefaultMaxDepth = 1024

// Program is the result of compiling one source unit: the statements that
// parsed, the resolver's side table, and every diagnostic reported along
// the way. A Program is immutable once compiled and may be shared.
type Program struct {
	Source     string
	Tokens     []Token
	Statements []Stmt
	Locals     Locals
	Errors     []error

	runnable bool
}

// Runnable reports whether the program resolved without errors. Statements
// that failed to parse are simply absent, so a program with parse errors
// may still be runnable.
func (p *Program) Runnable() bool {
	return p != nil && p.runnable
}

// Err returns a [*CompileError] holding every diagnostic, or nil if there
// were none.
func (p *Program) Err() error {
	if p == nil || len(p.Errors) == 0 {
		return nil
	}

	return &CompileError{Errors: p.Errors}
}

// Compile scans, parses and resolves source.
//
// The returned Program is never nil. The error is the program's
// [Program.Err], so a non-nil error does not by itself mean the program
// cannot run; check [Program.Runnable].
func Compile(ctx context.Context, source string, opts ...Option) (*Program, error) {
	o := makeOptions(opts...)

	if o.cache {
		prog := compileCached(ctx, source, o)

		return prog, prog.Err()
	}

	prog := compile(ctx, source, o)

	return prog, prog.Err()
}

// CompileReader reads all of r and compiles it.
func CompileReader(ctx context.Context, r io.Reader, opts ...Option) (*Program, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	makeOptions(opts...).logger.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true))

	return Compile(ctx, string(data), opts...)
}

func compile(ctx context.Context, source string, o options) *Program {
	prog := &Program{Source: source}

	var errs []error

	prog.Tokens, errs = Scan(source)
	prog.Errors = append(prog.Errors, errs...)

	o.logger.TraceContext(ctx, "scan complete",
		slog.Int("tokens", len(prog.Tokens)),
		slog.Int("errors", len(errs)))

	prog.Statements, errs = Parse(prog.Tokens)
	prog.Errors = append(prog.Errors, errs...)

	o.logger.TraceContext(ctx, "parse complete",
		slog.Int("statements", len(prog.Statements)),
		slog.Int("errors", len(errs)))

	prog.Locals, errs = Resolve(prog.Statements)
	prog.Errors = append(prog.Errors, errs...)
	prog.runnable = len(errs) == 0

	o.logger.TraceContext(ctx, "resolve complete",
		slog.Int("locals", len(prog.Locals)),
		slog.Int("errors", len(errs)))

	return prog
}

// Run compiles source and interprets it with a fresh [Interpreter].
//
// Diagnostics are returned before any runtime failure is considered: a
// [*CompileError] is returned alongside a nil runtime error when the
// program ran to completion.
func Run(ctx context.Context, source string, opts ...Option) (compileErr, runtimeErr error) {
	prog, compileErr := Compile(ctx, source, opts...)
	if !prog.Runnable() {
		return compileErr, nil
	}

	return compileErr, NewInterpreter(opts...).Interpret(ctx, prog)
}

// Option configures compilation or evaluation.
type Option func(*options)

type options struct {
	logger   log.Logger
	output   io.Writer
	maxDepth int
	cache    bool
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithOutput sets the destination of print statements.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithMaxDepth sets the maximum number of nested function calls. Exceeding
// it is the runtime failure "Stack overflow.".
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// WithCache enables or disables the process-wide compile cache.
func WithCache(enable bool) Option {
	return func(o *options) {
		o.cache = enable
	}
}

func makeOptions(opts ...Option) options {
	o := options{
		output:   os.Stdout,
		maxDepth: DefaultMaxDepth,
		cache:    true,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
