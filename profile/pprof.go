//go:build pprof

package profile

import (
	"maps"
	"slices"
	"sync"

	"github.com/pkg/profile"

	_ "net/http/pprof" // register HTTP handlers
)

// Enabled reports whether profiling support is compiled in.
const Enabled = true

// Modes returns the supported profiling modes, sorted.
var Modes = sync.OnceValue(
	func() []string {
		return slices.Sorted(maps.Keys(mode))
	},
)

var mode = map[string]func(*profile.Profile){
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"clock":     profile.ClockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"heap":      profile.MemProfileHeap,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

func start(m, path string, quiet bool) Stopper {
	fn, ok := mode[m]
	if !ok {
		return ignore{}
	}

	opts := []func(*profile.Profile){fn, profile.NoShutdownHook}

	if path != "" {
		opts = append(opts, profile.ProfilePath(path))
	}

	if quiet {
		opts = append(opts, profile.Quiet)
	}

	return profile.Start(opts...)
}
