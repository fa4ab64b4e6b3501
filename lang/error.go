package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrReadInput        = NewError("failed to read input")
	ErrCompile          = NewError("compilation failed")
	ErrUnsupportedValue = NewError("unsupported host value")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg != "" && t.msg == e.msg
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// ScanError reports a lexical error at a source line.
type ScanError struct {
	Line    int
	Message string
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	return "[line " + strconv.Itoa(e.Line) + "] Error: " + e.Message
}

// SyntaxError reports a parse or resolution error at a token.
type SyntaxError struct {
	Token   Token
	Message string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return "[line " + strconv.Itoa(e.Token.Line) + "] Error at '" +
		e.Token.Lexeme + "': " + e.Message
}

// LogValue implements slog.LogValuer.
func (e *SyntaxError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("line", e.Token.Line),
		slog.String("lexeme", e.Token.Lexeme),
		slog.String("message", e.Message),
	)
}

// RuntimeError is an unrecovered failure during evaluation.
// Token, when present, locates the failure in the source.
type RuntimeError struct {
	Token   *Token
	Message string
}

func newRuntimeError(tok *Token, msg string) *RuntimeError {
	return &RuntimeError{Token: tok, Message: msg}
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Token == nil {
		return e.Message
	}

	return e.Message + "\n[Line " + strconv.Itoa(e.Token.Line) + " ]"
}

// LogValue implements slog.LogValuer.
func (e *RuntimeError) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("message", e.Message)}
	if e.Token != nil {
		attrs = append(attrs, slog.Int("line", e.Token.Line))
	}

	return slog.GroupValue(attrs...)
}

// CompileError aggregates the diagnostics reported while scanning, parsing
// and resolving one source unit.
type CompileError struct {
	Errors []error
}

// Error implements the error interface. Each diagnostic is on its own line.
func (e *CompileError) Error() string {
	lines := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		lines[i] = err.Error()
	}

	return strings.Join(lines, "\n")
}

// Unwrap returns the individual diagnostics.
func (e *CompileError) Unwrap() []error { return e.Errors }

// LogValue implements slog.LogValuer.
func (e *CompileError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrCompile.msg),
		slog.Int("count", len(e.Errors)),
	)
}
