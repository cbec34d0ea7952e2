package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/unitgen/lang"
)

func TestGen_OutputPath(t *testing.T) {
	tests := []struct {
		input  string
		output string
		format lang.Format
		want   string
	}{
		{"site.unit", "", lang.FormatJSON, "site.json"},
		{"conf/site.unit", "", lang.FormatYAML, "conf/site.yaml"},
		{"site", "", lang.FormatJSON, "site.json"},
		{"site.json", "", lang.FormatJSON, "site.json.json"},
		{"site.unit", "out.json", lang.FormatYAML, "out.json"},
		{"site.unit", "-", lang.FormatJSON, "-"},
	}

	for _, tt := range tests {
		t.Run(tt.input+"->"+tt.want, func(t *testing.T) {
			g := Gen{Input: tt.input, Output: tt.output}
			if got := g.outputPath(tt.format); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGen_Run(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "site.unit")
	output := filepath.Join(dir, "out.yaml")

	err := os.WriteFile(input, []byte("listeners *:80 pass routes\nroutes default pass applications/web\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	g := Gen{Input: input, Output: output, Format: "yml"}

	err = g.Run(t.Context())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Contains(data, []byte("applications/web")) || bytes.HasPrefix(data, []byte("{")) {
		t.Errorf("unexpected YAML output:\n%s", data)
	}
}

func TestGen_RunRejected(t *testing.T) {
	tests := []struct {
		name   string
		strict bool
		write  bool
	}{
		{"default", false, true},
		{"strict", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			input := filepath.Join(dir, "site.unit")
			output := filepath.Join(dir, "site.json")

			err := os.WriteFile(input, []byte("not a directive\nroutes default pass applications/web\n"), 0o600)
			if err != nil {
				t.Fatal(err)
			}

			g := Gen{Input: input, Format: "json", Strict: tt.strict}

			err = g.Run(t.Context())
			if !errors.Is(err, ErrRejected) {
				t.Fatalf("Run() error = %v, want %v", err, ErrRejected)
			}

			data, err := os.ReadFile(output)
			if !tt.write {
				if !errors.Is(err, os.ErrNotExist) {
					t.Errorf("output written in strict mode: %v", err)
				}

				return
			}

			if err != nil {
				t.Fatalf("output not written: %v", err)
			}

			if !bytes.Contains(data, []byte("applications/web")) {
				t.Errorf("output lacks the recognized route:\n%s", data)
			}
		})
	}
}

func TestGen_RunErrors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.unit")

	err := os.WriteFile(bad, []byte("settings.\"a = 1\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		gen  Gen
		want error
	}{
		{"bad format", Gen{Input: bad, Format: "toml"}, lang.ErrInvalidFormat},
		{"missing input", Gen{Input: filepath.Join(dir, "none.unit"), Format: "json"}, ErrInputNotFound},
		{"directory input", Gen{Input: dir, Format: "json"}, ErrInputNotFound},
		{"format error", Gen{Input: bad, Format: "json"}, lang.ErrBadQuotes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.gen.Run(t.Context())
			if !errors.Is(err, tt.want) {
				t.Errorf("Run() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(dir, "bad.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output written after a format error: %v", err)
	}
}

func TestRenderReport(t *testing.T) {
	var buf bytes.Buffer

	err := renderReport(&buf, nil)
	if err != nil || buf.Len() != 0 {
		t.Errorf("renderReport(nil) wrote %q, %v", buf.String(), err)
	}

	err = renderReport(&buf, []lang.Rejection{
		{Source: "a.unit", Line: 3, Text: "bogus"},
		{Source: "a.unit", Line: 120, Text: "also bogus"},
	})
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}

	if !strings.Contains(lines[0], "2 unrecognized lines") {
		t.Errorf("heading = %q", lines[0])
	}

	// texts are aligned
	i, j := strings.Index(lines[1], "bogus"), strings.Index(lines[2], "also bogus")
	if i < 0 || i != j {
		t.Errorf("misaligned report:\n%s", buf.String())
	}
}

func TestUniqueFiles(t *testing.T) {
	dir := t.TempDir()

	a := filepath.Join(dir, "a.unit")
	b := filepath.Join(dir, "b.unit")
	link := filepath.Join(dir, "link.unit")

	for _, p := range []string{a, b} {
		if err := os.WriteFile(p, nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}

	if err := os.Symlink(a, link); err != nil {
		t.Skipf("symlink: %v", err)
	}

	missing := filepath.Join(dir, "missing.unit")

	got := uniqueFiles([]string{a, b, link, a, missing, missing})
	want := []string{a, b, missing, missing}

	if !slices.Equal(got, want) {
		t.Errorf("uniqueFiles() = %q, want %q", got, want)
	}
}

func TestInit_BuildConfig(t *testing.T) {
	var cli struct {
		Verbose bool   `help:"Enable verbose output"`
		Output  string `help:"Output file"`
		Empty   string `help:"Unset value"`
		Count   int    `help:"Number of items"`

		Gen  Gen  `cmd:"" default:"withargs"`
		Init Init `cmd:""`
	}

	parser, err := kong.New(&cli, Vars())
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse([]string{"--verbose", "--output=test.txt", "--count=5", "init"})
	if err != nil {
		t.Fatal(err)
	}

	entries := (&Init{}).buildConfig(WithContext(t.Context(), ktx))

	got := map[string]any{}
	for _, e := range entries {
		got[e.Key.(string)] = e.Value
	}

	want := map[string]any{
		"verbose":           true,
		"output":            "test.txt",
		"count":             5,
		"format":            "json",
		"debug":             false,
		"strict":            false,
		"max-include-depth": lang.DefaultMaxIncludeDepth,
	}

	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %#v, want %#v", k, got[k], v)
		}
	}

	for _, k := range []string{"help", "empty", "force"} {
		if _, ok := got[k]; ok {
			t.Errorf("unexpected key %q", k)
		}
	}
}
