package repl

import "errors"

var (
	// ErrOutOfBounds is returned by [History.Entry] for an index outside the
	// recorded entries.
	ErrOutOfBounds = errors.New("index out of range")

	// ErrEditDeclined reports that the user chose not to reopen the editor
	// after the edited program failed to compile.
	ErrEditDeclined = errors.New("decline edit")
)
