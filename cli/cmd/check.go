package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/unitgen/lang"
)

// Check loads DSL sources and reports problems without writing any output.
type Check struct {
	Inputs []string `arg:"" help:"DSL source file(s)" name:"input"`
	Debug  bool     `help:"Trace every directive applied (same as --log-level=trace)"`
}

// Run executes the check command.
//
// Every input is loaded into its own tree and assembled. Format and I/O
// errors stop the check; unrecognized lines are reported for every input
// before the command fails.
func (c *Check) Run(ctx context.Context) error {
	var rejected int

	for _, path := range uniqueFiles(c.Inputs) {
		loader, err := loadInput(ctx, path)
		if err != nil {
			return err
		}

		if r := loader.Rejected(); len(r) > 0 {
			rejected += len(r)

			err = renderReport(stderr(ctx), r)
			if err != nil {
				return err
			}

			continue
		}

		doc, err := lang.Assemble(loader.Tree())
		if err != nil {
			return err
		}

		fmt.Fprintf(stdout(ctx), "%s: ok (%d routes, sections: %v)\n",
			path, len(loader.Tree().Routes()), doc.Keys())
	}

	if rejected > 0 {
		return ErrRejected.
			Wrap(fmt.Errorf("%d line(s) failed to parse", rejected)).
			With(slog.Int("count", rejected))
	}

	return nil
}
