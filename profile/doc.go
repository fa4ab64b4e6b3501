// Package profile provides optional runtime profiling of the interpreter.
//
// Profiling is compiled in only with the "pprof" build tag and is driven by
// [github.com/pkg/profile]. Without the tag every [Profiler] is a no-op and
// [Modes] is empty.
//
//	p := profile.New(
//		profile.WithMode("cpu"),
//		profile.WithPath(dir),
//	)
//	defer p.Start().Stop()
//
// Profiles are written to the configured directory with names matching the
// mode (cpu.pprof, mem.pprof, ...) and can be inspected with
//
//	go tool pprof -http=: lox cpu.pprof
//
// Building with the tag also registers the [net/http/pprof] handlers.
//
//	go build -tags pprof -o lox .
//	lox --pprof-mode cpu script.lox
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
