// Package cmd implements the lox subcommands: run, repl, tokens and ast.
//
// Commands receive their shared [Settings] through the context (see
// [WithSettings]) and report failures as an [*ExitError] carrying a
// sysexits(3) status. Diagnostics are written to the error stream by the
// command itself; an ExitError with a nil Err has nothing left to report.
package cmd

// CacheIdentifier is the kong variable identifier containing the path to
// the runtime cache directory.
//
//nolint:gochecknoglobals
var CacheIdentifier = "cache"
