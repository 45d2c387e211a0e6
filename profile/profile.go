package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

// Stopper stops a running profiler and flushes its output.
type Stopper interface{ Stop() }

// Profiler describes a profiling session. The zero value profiles nothing.
type Profiler struct {
	Mode  string // one of [Modes]; empty disables profiling
	Path  string // output directory; empty uses the working directory
	Quiet bool   // suppress the profiler's own log lines
}

// Start begins profiling and returns the handle that ends it.
//
// Without the pprof build tag, or with an empty or unknown Mode, Start
// returns a no-op. Both Start and Stop are always safe to call.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
