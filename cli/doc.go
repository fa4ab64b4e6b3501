// Package cli contains the command line interface for lox.
//
// # Usage
//
//	lox [flags] [script]          run a script, or start the prompt
//	lox repl                      start the prompt
//	lox tokens [script]           print the tokens of a script
//	lox ast [--format F] [script] print the syntax tree of a script
//
// A script of "-" is read from standard input. Relative script paths are
// searched for in the working directory, then in each --include directory,
// then in each directory of $LOXPATH.
//
// # Globals
//
// Each -D NAME=EXPR binds a global before the script runs. EXPR is an
// expr-lang expression that may use getenv, os, arch, cwd and any name
// defined before it:
//
//	lox -D 'home=getenv("HOME")' -D 'n=len(home)' script.lox
//
// # Configuration
//
// Flags may also be set in config.json or config.yaml in the user config
// directory (for example ~/.config/lox). Command-line flags take
// precedence.
//
// # Logging Options
//
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: log output format (json, text)
//   - --log-time-layout: timestamp layout (RFC3339, Kitchen, none, ...)
//   - --[no-]log-caller: include caller information
//   - --[no-]log-pretty: indent JSON and color text on a terminal
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o lox .
//
//   - --pprof-mode: enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: profile output directory (default: ~/.cache/lox/pprof)
//
// # Exit status
//
// 0 on success, 64 for usage errors, 65 when the script does not compile,
// 66 when it cannot be read and 70 when it fails at run time.
package cli
