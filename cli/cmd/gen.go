package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ardnew/unitgen/lang"
	"github.com/ardnew/unitgen/log"
)

// Gen converts a DSL source file into a Unit configuration document.
type Gen struct {
	Input  string `arg:"" help:"DSL source file"`
	Output string `arg:"" help:"Output file, or '-' for stdout (default: input with the format's extension)" optional:""`

	Format          string `default:"json"                    enum:"json,yaml,yml" help:"Output format"                                  short:"f"`
	Strict          bool   `help:"Write nothing if any line was not recognized"`
	Debug           bool   `help:"Trace every directive applied (same as --log-level=trace)"`
	MaxIncludeDepth int    `default:"${maxIncludeDepth}"      help:"Maximum nesting of include directives"`
}

// Run executes the gen command.
func (g *Gen) Run(ctx context.Context) error {
	format, err := lang.ParseFormat(g.Format)
	if err != nil {
		return err
	}

	loader, err := loadInput(ctx, g.Input,
		lang.WithMaxIncludeDepth(g.MaxIncludeDepth),
	)
	if err != nil {
		return err
	}

	var rejectErr error

	if rejected := loader.Rejected(); len(rejected) > 0 {
		err = renderReport(stderr(ctx), rejected)
		if err != nil {
			return err
		}

		rejectErr = ErrRejected.
			Wrap(loader.Err()).
			With(slog.String("file", g.Input))

		if g.Strict {
			return rejectErr
		}

		log.WarnContext(ctx, "writing output with unrecognized lines omitted",
			slog.String("file", g.Input),
			slog.Int("count", len(rejected)),
		)
	}

	doc, err := lang.Assemble(loader.Tree())
	if err != nil {
		return err
	}

	out := g.outputPath(format)

	if out == lang.Stdout {
		err = doc.Encode(ctx, stdout(ctx), format)
		if err != nil {
			return lang.ErrWriteOutput.Wrap(err)
		}

		return rejectErr
	}

	err = lang.Save(ctx, out, doc, format)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "wrote document",
		slog.String("file", out),
		slog.String("format", format.String()),
		slog.Any("sections", doc.Keys()),
	)

	fmt.Fprintf(stdout(ctx), "Wrote %s\n", out)

	return rejectErr
}

// outputPath returns the explicit output path, or the input path with its
// extension replaced by the format's. An input that already carries that
// extension gets it appended instead, so the input is never overwritten.
func (g *Gen) outputPath(f lang.Format) string {
	if g.Output != "" {
		return g.Output
	}

	out := strings.TrimSuffix(g.Input, filepath.Ext(g.Input)) + f.Ext()
	if out == g.Input {
		out += f.Ext()
	}

	return out
}
