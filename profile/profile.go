package profile

// Profiler holds a profiling configuration. The zero Profiler is disabled.
type Profiler struct {
	mode  string
	path  string
	quiet bool
}

// Option applies a configuration option to a Profiler.
type Option func(Profiler) Profiler

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// New returns a Profiler configured by opts.
func New(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		p = opt(p)
	}

	return p
}

// Mode returns the configured profiling mode, empty when disabled.
func (p Profiler) Mode() string { return p.mode }

// Path returns the configured output directory.
func (p Profiler) Path() string { return p.path }

// Start begins profiling. It returns a no-op Stopper when no mode is set,
// the mode is unknown, or the binary was built without the pprof tag.
func (p Profiler) Start() Stopper {
	if p.mode == "" {
		return ignore{}
	}

	return start(p.mode, p.path, p.quiet)
}

// WithMode sets the profiling mode; see [Modes].
func WithMode(mode string) Option {
	return func(p Profiler) Profiler {
		p.mode = mode

		return p
	}
}

// WithPath sets the output directory.
func WithPath(path string) Option {
	return func(p Profiler) Profiler {
		p.path = path

		return p
	}
}

// WithQuiet suppresses the profiler's own log messages.
func WithQuiet(quiet bool) Option {
	return func(p Profiler) Profiler {
		p.quiet = quiet

		return p
	}
}

type ignore struct{}

func (ignore) Stop() {}
