package profile

import "slices"

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Profiler describes one profiling session.
type Profiler struct {
	Mode  string // one of [Modes]; empty disables profiling
	Path  string // output directory; empty selects the working directory
	Quiet bool   // suppress the library's own log output
}

// Start begins profiling and returns a [Stopper] that ends it.
//
// If the build lacks the pprof tag, or Mode is empty or unknown, Start
// returns a no-op. Both Start and Stop are always safely callable.
func (p Profiler) Start() Stopper {
	if !Valid(p.Mode) {
		return ignore{}
	}

	return start(p)
}

// Valid reports whether mode is supported by this build.
func Valid(mode string) bool {
	return mode != "" && slices.Contains(Modes(), mode)
}

type ignore struct{}

func (ignore) Stop() {}
