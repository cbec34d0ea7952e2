// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("loaded source", slog.String("file", "unit.conf"))
//	logger.Warn("parse failed", slog.Int("line", 12))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The package-level functions ([Info], [Warn], ...) write through a default
// logger on standard error which [Config] reconfigures in place.
//
// # Supported Levels
//
// [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn], and [LevelError].
// Messages below the configured level are discarded.
//
// # Output Formats
//
// [FormatJSON] (default) and [FormatText]. With [WithPretty] enabled the text
// format is colorized and unquoted.
package log
