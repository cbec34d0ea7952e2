package cli

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/unitgen/log"
)

// logFormat is a custom type that configures the logger format as a side
// effect of parsing via encoding.TextUnmarshaler.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-format flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel is a custom type that configures the logger level as a side
// effect of parsing via encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-level flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"trace,debug,info,warn,error" help:"Set log level."`
	Format     logFormat `default:"text"    enum:"json,text"                   help:"Set log format."`
	TimeLayout string    `default:"RFC3339"                                    help:"Set timestamp format (Go layout, or 'none')."`
	Caller     bool      `default:"false"                                      help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                                       help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

// start applies the parsed logger flags. A command's --debug flag
// overrides the level with trace.
func (f *logConfig) start(ctx context.Context, debug bool) {
	if debug {
		f.Level = logLevel(log.LevelTrace.String())
	}

	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// earlyFlag applies one logger flag found by [logConfig.scan].
type earlyFlag struct {
	// value flags take the next argument when not written as --name=value.
	value bool
	apply func(f *logConfig, value string, assigned bool)
}

// earlyFlags maps each flag recognized by [logConfig.scan] to its effect.
//
//nolint:gochecknoglobals
var earlyFlags = map[string]earlyFlag{
	"--log-level": {value: true, apply: func(f *logConfig, v string, _ bool) {
		_ = f.Level.UnmarshalText([]byte(v))
	}},
	"--log-format": {value: true, apply: func(f *logConfig, v string, _ bool) {
		_ = f.Format.UnmarshalText([]byte(v))
	}},
	"--log-time-layout": {value: true, apply: func(f *logConfig, v string, _ bool) {
		f.TimeLayout = v
		log.Config(log.WithTimeLayout(v))
	}},
	"--log-pretty":    toggle(setPretty, false),
	"--no-log-pretty": toggle(setPretty, true),
	"--log-caller":    toggle(setCaller, false),
	"--no-log-caller": toggle(setCaller, true),
	"--debug": toggle(func(f *logConfig, on bool) {
		if on {
			_ = f.Level.UnmarshalText([]byte(log.LevelTrace.String()))
		}
	}, false),
}

func setPretty(f *logConfig, on bool) {
	f.Pretty = on
	log.Config(log.WithPretty(on))
}

func setCaller(f *logConfig, on bool) {
	f.Caller = on
	log.Config(log.WithCaller(on))
}

// toggle returns a boolean flag. A bare flag means true; an assigned value
// that does not parse as a boolean is ignored.
func toggle(set func(*logConfig, bool), negated bool) earlyFlag {
	return earlyFlag{apply: func(f *logConfig, v string, assigned bool) {
		on := true

		if assigned {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return
			}

			on = b
		}

		set(f, on != negated)
	}}
}

// scan applies logger flags from args before kong parses them, so records
// emitted while parsing already honor them wherever they appear on the
// command line. Arguments after "--" are left alone.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			return
		}

		name, value, assigned := strings.Cut(args[i], "=")

		flag, ok := earlyFlags[name]
		if !ok {
			continue
		}

		if flag.value && !assigned && i+1 < len(args) &&
			!strings.HasPrefix(args[i+1], "-") {
			i++
			value, assigned = args[i], true
		}

		flag.apply(f, value, assigned)
	}
}
