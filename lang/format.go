package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// DefaultIndent is the indent width used for generated documents.
const DefaultIndent = 2

// Format selects the encoding of a generated document.
type Format int

const (
	FormatJSON Format = iota // json
	FormatYAML               // yaml
)

// String returns the lower-case name of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Ext returns the file extension, with leading dot, for the format.
func (f Format) Ext() string {
	return "." + f.String()
}

// Formats returns the names of all supported formats.
func Formats() []string {
	return []string{FormatJSON.String(), FormatYAML.String()}
}

// ParseFormat parses a format name, ignoring case. "yml" selects YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return 0, ErrInvalidFormat.
			Wrap(fmt.Errorf("%q (valid: %s)", s, strings.Join(Formats(), ", "))).
			With(slog.String("format", s))
	}
}

// Encode writes d to w in the given format with [DefaultIndent].
func (d *Document) Encode(ctx context.Context, w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		return d.FormatJSON(ctx, w, DefaultIndent)
	case FormatYAML:
		return d.FormatYAML(ctx, w, DefaultIndent)
	default:
		return ErrInvalidFormat.Wrap(fmt.Errorf("format %d", int(f)))
	}
}

// FormatJSON writes d as JSON followed by a newline. An indent of zero
// writes compact JSON.
func (d *Document) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	data, err := d.MarshalJSON()
	if err != nil {
		return err
	}

	var buf bytes.Buffer

	if indent > 0 {
		err = json.Indent(&buf, data, "", strings.Repeat(" ", indent))
		if err != nil {
			return err
		}
	} else {
		buf.Write(data)
	}

	buf.WriteByte('\n')

	_, err = w.Write(buf.Bytes())

	return err
}

// FormatYAML writes d as YAML. An indent of zero writes flow style.
func (d *Document) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, d.yamlValue(), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// Stdout is the output path that selects standard output.
const Stdout = "-"

// BackupSuffix is appended to an existing output file's name before it is
// replaced.
const BackupSuffix = "~"

// Save writes d to path in format f.
//
// An existing regular file at path is first renamed to path+[BackupSuffix],
// replacing any older backup. If [Stdout] is given, d is written to standard
// output and nothing is renamed.
func Save(ctx context.Context, path string, d *Document, f Format) error {
	if path == Stdout {
		return d.Encode(ctx, os.Stdout, f)
	}

	info, err := os.Stat(path)
	if err == nil && info.Mode().IsRegular() {
		err = os.Rename(path, path+BackupSuffix)
		if err != nil {
			return ErrWriteOutput.
				Wrap(err).
				With(slog.String("file", path))
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return ErrWriteOutput.
			Wrap(err).
			With(slog.String("file", path))
	}

	err = d.Encode(ctx, file, f)
	if cerr := file.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return ErrWriteOutput.
			Wrap(err).
			With(slog.String("file", path))
	}

	return nil
}
