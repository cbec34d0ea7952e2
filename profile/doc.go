// Package profile provides optional runtime profiling for unitgen.
//
// Profiling wraps [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof -o unitgen .
//
// Without the tag every [Profiler] is a no-op and [Modes] is empty.
//
// # Modes
//
// With the tag, [Modes] lists the supported profiling modes: allocs, block,
// clock, cpu, goroutine, heap, mem, mutex, thread and trace.
//
// # Command-Line Usage
//
//	# CPU profile of one generation run
//	unitgen --pprof-mode cpu site.unit
//
//	# Heap profile into a custom directory
//	unitgen --pprof-mode heap --pprof-dir ./profiles site.unit
//
// The default output directory is the unitgen cache directory joined with
// [Tag], e.g. $XDG_CACHE_HOME/unitgen/pprof on Linux. Profiles are written
// with names matching the mode (cpu.pprof, mem.pprof, ...) and can be read
// with go tool pprof:
//
//	go tool pprof -http=: ~/.cache/unitgen/pprof/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
