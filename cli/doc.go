// Package cli contains the command line interface for unitgen.
//
// # Usage
//
//	unitgen [flags] [gen] <input> [<output>]
//	unitgen [flags] check <input> ...
//	unitgen [flags] init [--force]
//
// gen is the default command. It loads the DSL source <input> (following
// include directives), assembles the Unit configuration document and writes
// it to <output>, which defaults to <input> with its extension replaced by
// .json (or .yaml with --format yaml). An existing output file is kept as
// <output>~. The output "-" selects standard output.
//
// Lines that match no directive are reported together on stderr; gen still
// writes the document built from the remaining lines and then exits
// non-zero. With --strict it writes nothing. --debug on gen or check is
// the same as --log-level=trace.
//
// # Configuration File
//
// Flag defaults are read from $XDG_CONFIG_HOME/unitgen/config, a flat YAML
// mapping of flag names to values, and from config.json beside it. "unitgen
// init" writes the YAML file from the current flag values:
//
//	log-level: info
//	log-format: text
//	format: json
//	max-include-depth: 64
//
// Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, a Go layout,
//     or none)
//   - --[no-]log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o unitgen .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/unitgen/pprof)
//
// # Examples
//
//	# Generate site.json from site.unit
//	unitgen site.unit
//
//	# YAML to stdout, tracing every directive
//	unitgen gen --format yaml --debug site.unit -
//
//	# Check several sources without writing anything
//	unitgen check site.unit staging.unit
package cli
