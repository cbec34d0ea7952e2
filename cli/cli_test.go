package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/unitgen/cli/cmd"
	"github.com/ardnew/unitgen/log"
)

type result struct {
	stdout string
	stderr string
	err    error
}

// run parses and executes args the way [Run] does, but with the
// configuration file at confPath and output captured.
func run(t *testing.T, confPath string, args ...string) result {
	t.Helper()

	t.Cleanup(func() { log.Config(log.WithDefaults(os.Stderr)) })

	var (
		cli      CLI
		out, err bytes.Buffer
	)

	ctx := t.Context()

	vars := kong.Vars{
		cmd.ConfigIdentifier: confPath,
		cmd.CacheIdentifier:  t.TempDir(),
		"version":            "test",
	}.
		CloneWith(cmd.Vars()).
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	parser, perr := newParser(&cli, func(int) {}, vars,
		kong.Writers(&out, &err),
		kong.BindSingletonProvider(func() context.Context { return ctx }),
		kong.Configuration(resolve, confPath),
	)
	if perr != nil {
		t.Fatal(perr)
	}

	ktx, perr := parser.Parse(args)
	if perr != nil {
		return result{out.String(), err.String(), perr}
	}

	ctx = cmd.WithContext(ctx, ktx)

	rerr := ktx.Run(ctx, &cli)

	return result{out.String(), err.String(), rerr}
}

func writeInput(t *testing.T, dir string, lines ...string) string {
	t.Helper()

	path := filepath.Join(dir, "site.unit")

	err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	return path
}

var site = []string{
	"listeners *:8080 pass routes",
	"routes match_uri pass applications/api /api/*",
	"routes default pass applications/web",
	"global.applications.processes = 2",
	"applications.api.type = python",
	"applications.web.type = php",
}

func TestRun_Gen(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, site...)

	res := run(t, filepath.Join(dir, "config"), input)
	if res.err != nil {
		t.Fatalf("run error = %v\n%s", res.err, res.stderr)
	}

	output := filepath.Join(dir, "site.json")
	if res.stdout != "Wrote "+output+"\n" {
		t.Errorf("stdout = %q", res.stdout)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		`"*:8080": {`,
		`"pass": "applications/api"`,
		`"processes": "2"`,
	} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("output missing %s:\n%s", want, data)
		}
	}

	// a second run keeps the first output as a backup
	res = run(t, filepath.Join(dir, "config"), "gen", input, output)
	if res.err != nil {
		t.Fatalf("second run error = %v", res.err)
	}

	backup, err := os.ReadFile(output + "~")
	if err != nil {
		t.Fatalf("no backup after second run: %v", err)
	}

	if !bytes.Equal(backup, data) {
		t.Error("backup differs from the first run's output")
	}
}

func TestRun_GenConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, site...)

	conf := filepath.Join(dir, "config")

	err := os.WriteFile(conf, []byte("format: yaml\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	res := run(t, conf, input)
	if res.err != nil {
		t.Fatalf("run error = %v", res.err)
	}

	if _, err := os.Stat(filepath.Join(dir, "site.yaml")); err != nil {
		t.Errorf("YAML output not written: %v", err)
	}

	// command line overrides the file
	res = run(t, conf, "gen", "--format", "json", input)
	if res.err != nil {
		t.Fatalf("run error = %v", res.err)
	}

	if _, err := os.Stat(filepath.Join(dir, "site.json")); err != nil {
		t.Errorf("JSON output not written: %v", err)
	}
}

func TestRun_GenStdout(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "listeners *:8080 pass applications/default")

	res := run(t, filepath.Join(dir, "config"), input, "-")
	if res.err != nil {
		t.Fatalf("run error = %v", res.err)
	}

	want := "{\n  \"listeners\": {\n    \"*:8080\": {\n      \"pass\": \"applications/default\"\n    }\n  },\n  \"routes\": []\n}\n"
	if res.stdout != want {
		t.Errorf("stdout =\n%s\nwant\n%s", res.stdout, want)
	}
}

func TestRun_GenMissingInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "absent.unit")

	res := run(t, filepath.Join(dir, "config"), input)
	if !errors.Is(res.err, cmd.ErrInputNotFound) {
		t.Fatalf("run error = %v, want %v", res.err, cmd.ErrInputNotFound)
	}

	if !strings.Contains(res.err.Error(), input) {
		t.Errorf("error %q does not name %s", res.err, input)
	}
}

func TestRun_GenRejected(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, append([]string{"not a directive"}, site...)...)
	output := filepath.Join(dir, "site.json")

	res := run(t, filepath.Join(dir, "config"), "gen", "--strict", input)
	if !errors.Is(res.err, cmd.ErrRejected) {
		t.Fatalf("run --strict error = %v, want %v", res.err, cmd.ErrRejected)
	}

	if !strings.Contains(res.stderr, "1 unrecognized line") ||
		!strings.Contains(res.stderr, "not a directive") {
		t.Errorf("stderr report:\n%s", res.stderr)
	}

	if _, err := os.Stat(output); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output written with --strict: %v", err)
	}

	res = run(t, filepath.Join(dir, "config"), input)
	if !errors.Is(res.err, cmd.ErrRejected) {
		t.Errorf("run error = %v, want %v", res.err, cmd.ErrRejected)
	}

	if !strings.Contains(res.stdout, "Wrote "+output) {
		t.Errorf("stdout = %q, want Wrote %s", res.stdout, output)
	}

	if _, err := os.Stat(output); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestRun_Check(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, site...)

	res := run(t, filepath.Join(dir, "config"), "check", input, input)
	if res.err != nil {
		t.Fatalf("run error = %v", res.err)
	}

	if n := strings.Count(res.stdout, ": ok"); n != 1 {
		t.Errorf("checked %d files, want 1:\n%s", n, res.stdout)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("check wrote files: %v", entries)
	}
}

func TestRun_Init(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "unitgen", "config")

	res := run(t, conf, "init")
	if res.err != nil {
		t.Fatalf("run error = %v", res.err)
	}

	data, err := os.ReadFile(conf)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"log-level: info", "format: json"} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("config missing %q:\n%s", want, data)
		}
	}

	res = run(t, conf, "init")
	if !errors.Is(res.err, cmd.ErrFileExists) {
		t.Errorf("second init error = %v, want %v", res.err, cmd.ErrFileExists)
	}

	res = run(t, conf, "init", "--force")
	if res.err != nil {
		t.Errorf("init --force error = %v", res.err)
	}
}
