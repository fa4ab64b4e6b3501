package cmd

import (
	"log/slog"
	"strconv"
	"strings"
)

// Process exit codes, following sysexits(3).
const (
	ExitOK       = 0
	ExitUsage    = 64 // EX_USAGE: command line usage error
	ExitDataErr  = 65 // EX_DATAERR: the script did not compile
	ExitNoInput  = 66 // EX_NOINPUT: the script could not be read
	ExitSoftware = 70 // EX_SOFTWARE: the script failed at run time
)

// Error represents a CLI command error with structured logging support.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError returns an Error with the given message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

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

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an Error with the same message, so wrapped
// and attributed copies still match their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg == e.msg
}

func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.Any("cause", e.err))
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

var (
	ErrReadScript   = NewError("read script")
	ErrScriptFound  = NewError("script not found")
	ErrDefineSyntax = NewError("invalid definition (want NAME=EXPR)")
	ErrDefineEval   = NewError("evaluate definition")
	ErrWriteOutput  = NewError("write output")
	ErrFormat       = NewError("invalid format")
)

// ExitError carries the process exit code of a command. Err, when not nil,
// has not been reported to the user yet; a nil Err means diagnostics were
// already written.
type ExitError struct {
	Code int
	Err  error
}

// Exit returns an ExitError with the given code and cause.
func Exit(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status " + strconv.Itoa(e.Code)
	}

	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

func (e *ExitError) LogValue() slog.Value {
	attrs := []slog.Attr{slog.Int("code", e.Code)}
	if e.Err != nil {
		attrs = append(attrs, slog.Any("error", e.Err))
	}

	return slog.GroupValue(attrs...)
}
