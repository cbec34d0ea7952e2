package lang

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ardnew/unitgen/log"
)

// DefaultMaxIncludeDepth bounds how deeply include directives may nest.
const DefaultMaxIncludeDepth = 64

// byteOrderMark is stripped from the first line of every source.
const byteOrderMark = "\uFEFF"

// Rejection records a source line that matched no directive grammar.
type Rejection struct {
	Source string // file name, or the name given to [Loader.LoadReader]
	Line   int    // 1-based line number
	Text   string // trimmed line text
}

// String returns "source:line: text".
func (r Rejection) String() string {
	return r.Source + ":" + strconv.Itoa(r.Line) + ": " + r.Text
}

// loaderConfig holds the settings applied by [Option] values.
type loaderConfig struct {
	logger   log.Logger
	debug    bool
	maxDepth int
}

// Option configures a [Loader].
type Option func(loaderConfig) loaderConfig

// WithLogger sets the logger used to report rejected lines and warnings.
// The default is [log.Default] at the time [NewLoader] is called.
func WithLogger(logger log.Logger) Option {
	return func(c loaderConfig) loaderConfig {
		c.logger = logger

		return c
	}
}

// WithDebug enables a trace record for every directive applied.
func WithDebug(enable bool) Option {
	return func(c loaderConfig) loaderConfig {
		c.debug = enable

		return c
	}
}

// WithMaxIncludeDepth sets the maximum nesting of include directives.
// Values below 1 select [DefaultMaxIncludeDepth].
func WithMaxIncludeDepth(depth int) Option {
	return func(c loaderConfig) loaderConfig {
		c.maxDepth = depth

		return c
	}
}

// source is one entry of the include stack.
type source struct {
	name string
	dir  string
}

// Loader reads DSL sources line by line into a single [Tree].
//
// A Loader is not safe for concurrent use.
type Loader struct {
	tree     *Tree
	log      log.Logger
	maxDepth int
	rejected []Rejection
	stack    []source
}

// NewLoader returns a loader with an empty tree.
func NewLoader(opts ...Option) *Loader {
	cfg := loaderConfig{logger: log.Default()}
	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	if cfg.debug {
		cfg.logger = cfg.logger.Wrap(log.WithLevel(log.LevelTrace))
	}

	if cfg.maxDepth < 1 {
		cfg.maxDepth = DefaultMaxIncludeDepth
	}

	return &Loader{
		tree:     NewTree(),
		log:      cfg.logger,
		maxDepth: cfg.maxDepth,
	}
}

// Tree returns the tree populated by the loader.
func (l *Loader) Tree() *Tree { return l.tree }

// Rejected returns every line that matched no directive, across all loads
// and includes, in the order encountered.
func (l *Loader) Rejected() []Rejection {
	return append([]Rejection(nil), l.rejected...)
}

// Err returns [ErrUnrecognized] if any line has been rejected so far.
func (l *Loader) Err() error {
	n := len(l.rejected)
	if n == 0 {
		return nil
	}

	return ErrUnrecognized.
		Wrap(fmt.Errorf("%d line(s) failed to parse", n)).
		With(slog.Int("count", n))
}

// Load parses the file at path into the loader's tree.
//
// Format and I/O errors abort immediately. Otherwise every line is
// processed, and if any line matched no directive the returned error
// satisfies errors.Is(err, [ErrUnrecognized]).
func (l *Loader) Load(ctx context.Context, path string) error {
	err := l.loadFile(ctx, path)
	if err != nil {
		return err
	}

	return l.Err()
}

// LoadReader is like [Load] but reads from r. Name labels rejected lines and
// relative include paths resolve against its directory.
func (l *Loader) LoadReader(ctx context.Context, r io.Reader, name string) error {
	err := l.read(ctx, r, name)
	if err != nil {
		return err
	}

	return l.Err()
}

// ParseLine applies a single trimmed, non-comment line to the tree.
// It reports false, without error, when no directive grammar matches.
func (l *Loader) ParseLine(ctx context.Context, line string) (bool, error) {
	for _, g := range grammars {
		m := g.pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		l.log.TraceContext(ctx, "directive",
			slog.String("kind", g.kind.String()),
			slog.String("text", line),
		)

		return true, g.handle(ctx, l, m)
	}

	return false, nil
}

func (l *Loader) loadFile(ctx context.Context, path string) error {
	if len(l.stack) >= l.maxDepth {
		return ErrIncludeDepth.
			Wrap(fmt.Errorf("%q nested %d deep", path, len(l.stack))).
			With(slog.String("file", path), slog.Int("depth", len(l.stack)))
	}

	file, err := os.Open(path)
	if err != nil {
		return ErrReadInput.
			Wrap(err).
			With(slog.String("file", path))
	}
	defer file.Close()

	l.log.DebugContext(ctx, "load source", slog.String("file", path))

	return l.read(ctx, file, path)
}

// include loads path into the same tree, relative to the including source.
func (l *Loader) include(ctx context.Context, path string) error {
	if !filepath.IsAbs(path) && len(l.stack) > 0 {
		path = filepath.Join(l.stack[len(l.stack)-1].dir, path)
	}

	return l.loadFile(ctx, path)
}

func (l *Loader) read(ctx context.Context, r io.Reader, name string) error {
	l.stack = append(l.stack, source{name: name, dir: filepath.Dir(name)})
	defer func() { l.stack = l.stack[:len(l.stack)-1] }()

	br := bufio.NewReader(r)

	for num := 1; ; num++ {
		raw, rerr := br.ReadString('\n')
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			return ErrReadInput.
				Wrap(rerr).
				With(slog.String("file", name), slog.Int("line", num))
		}

		if num == 1 {
			raw = strings.TrimPrefix(raw, byteOrderMark)
		}

		err := l.line(ctx, name, num, raw)
		if err != nil {
			return err
		}

		if rerr != nil {
			return nil
		}
	}
}

// line trims and filters one raw line, then applies it.
func (l *Loader) line(ctx context.Context, name string, num int, raw string) error {
	text := strings.TrimSpace(raw)
	if text == "" || text[0] == '#' || text[0] == ';' {
		return nil
	}

	err := ctx.Err()
	if err != nil {
		return err
	}

	ok, err := l.ParseLine(ctx, text)
	if err != nil {
		e := WrapError(err)
		if located(e) {
			// raised inside an include, which already named its file
			return e
		}

		return e.With(
			slog.String("source", name),
			slog.Int("line", num),
		)
	}

	if !ok {
		rej := Rejection{Source: name, Line: num, Text: text}
		l.rejected = append(l.rejected, rej)

		l.log.WarnContext(ctx, "parse failed",
			slog.String("source", name),
			slog.Int("line", num),
			slog.String("text", text),
		)
	}

	return nil
}

// located reports whether e already carries a source position.
func located(e *Error) bool {
	for _, a := range e.Attrs() {
		if a.Key == "line" {
			return true
		}
	}

	return false
}
