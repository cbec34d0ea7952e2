package cli

import (
	"os"
	"testing"

	"github.com/ardnew/unitgen/log"
)

func TestLogConfig_Scan(t *testing.T) {
	t.Cleanup(func() { log.Config(log.WithDefaults(os.Stderr)) })

	tests := []struct {
		name   string
		args   []string
		level  logLevel
		format logFormat
		layout string
		caller bool
		pretty bool
	}{
		{
			name:   "separate values",
			args:   []string{"gen", "--log-level", "debug", "--log-format", "json", "site.unit"},
			level:  "debug",
			format: "json",
			pretty: true,
		},
		{
			name:   "assigned values",
			args:   []string{"--log-level=trace", "--log-time-layout=none", "--log-caller"},
			level:  "trace",
			layout: "none",
			caller: true,
			pretty: true,
		},
		{
			name:   "negated booleans",
			args:   []string{"--no-log-pretty", "--no-log-caller", "check"},
			pretty: false,
		},
		{
			name:   "explicit boolean values",
			args:   []string{"--log-pretty=false", "--log-caller=true"},
			caller: true,
		},
		{
			name:   "value flag before another flag",
			args:   []string{"--log-level", "--log-caller"},
			caller: true,
			pretty: true,
		},
		{
			name:   "debug raises level",
			args:   []string{"gen", "--debug", "site.unit"},
			level:  "trace",
			pretty: true,
		},
		{
			name:   "debug disabled",
			args:   []string{"check", "--debug=false", "a.unit"},
			pretty: true,
		},
		{
			name:   "stops at terminator",
			args:   []string{"--log-format=json", "--", "--log-level=error"},
			format: "json",
			pretty: true,
		},
		{
			name:   "unrelated flags",
			args:   []string{"--format", "yaml", "--force"},
			pretty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := logConfig{Pretty: true}
			f.scan(tt.args)

			if f.Level != tt.level || f.Format != tt.format || f.TimeLayout != tt.layout {
				t.Errorf("scan() = level %q format %q layout %q, want %q %q %q",
					f.Level, f.Format, f.TimeLayout, tt.level, tt.format, tt.layout)
			}

			if f.Caller != tt.caller || f.Pretty != tt.pretty {
				t.Errorf("scan() = caller %v pretty %v, want %v %v",
					f.Caller, f.Pretty, tt.caller, tt.pretty)
			}
		})
	}

	if got := log.Default().Level(); got != log.LevelTrace {
		t.Errorf("default logger level = %v, want %v", got, log.LevelTrace)
	}
}

func TestLogConfig_StartDebug(t *testing.T) {
	t.Cleanup(func() { log.Config(log.WithDefaults(os.Stderr)) })

	tests := []struct {
		name  string
		level logLevel
		debug bool
		want  log.Level
	}{
		{"level kept", "warn", false, log.LevelWarn},
		{"debug overrides", "warn", true, log.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := logConfig{Level: tt.level, Format: "json", TimeLayout: "none"}
			f.start(t.Context(), tt.debug)

			if got := log.Default().Level(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}
