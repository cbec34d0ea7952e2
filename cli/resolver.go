package cli

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/unitgen/log"
)

// resolve is a [kong.ConfigurationLoader] that reads flag defaults from a
// YAML document.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config")
//
// The document is a flat mapping from flag name to value:
//   - Keys are flag names without the leading dashes; hyphens may be written
//     as underscores (log-level or log_level)
//   - Scalars are used as-is; numbers are passed to kong as strings
//   - Sequences set slice flags
//
// Example config file (as written by "unitgen init"):
//
//	log-level: debug
//	log-format: text
//	format: yaml
//
// Command-line flags override config file values. A document that does not
// parse, or is not a mapping, is ignored with a warning.
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var raw map[string]any

	err = yaml.Unmarshal(data, &raw)
	if err != nil {
		log.Warn("ignoring malformed configuration file",
			slog.String("cause", err.Error()),
		)

		return config{}, nil
	}

	cfg := make(config, len(raw))
	for key, val := range raw {
		cfg[key] = normalize(val)
	}

	return cfg, nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but YAML keys
	// may use underscores. Try both forms.
	name := flag.Name
	underscoreName := strings.ReplaceAll(name, "-", "_")

	if value, ok := r[name]; ok {
		return value, nil
	}

	if value, ok := r[underscoreName]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// normalize converts decoded YAML scalars into the forms kong decodes:
// numbers become strings, sequences become string slices.
func normalize(val any) any {
	switch v := val.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]string, len(v))
		for i, e := range v {
			s, ok := normalize(e).(string)
			if !ok {
				s = yamlScalar(e)
			}

			out[i] = s
		}

		return out
	default:
		return v
	}
}

// yamlScalar renders a non-string scalar the way YAML would write it.
func yamlScalar(v any) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(b))
}
