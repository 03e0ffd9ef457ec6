package bench

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/weiihann/planbench/workload"
)

// Plotter renders charts for collected results and returns the written
// file paths.
type Plotter interface {
	Plot(results *Results) ([]string, error)
}

// Summarizer writes a console summary of collected results.
type Summarizer func(w io.Writer, results *Results) error

// Pipeline sequences a full benchmark: build gate, per-domain comparison,
// then plotting.
type Pipeline struct {
	// Build compiles the planners. Nil skips the build gate.
	Build      func(ctx context.Context) error
	Comparator *Comparator
	Domains    []workload.Domain
	Plotter    Plotter
	Summarize  Summarizer
	Out        io.Writer
	Logger     *slog.Logger
}

// Run executes the pipeline. A build failure aborts before any planner is
// invoked. Unusable domains are logged and skipped.
func (p *Pipeline) Run(ctx context.Context) (*Results, error) {
	if p.Build != nil {
		if err := p.Build(ctx); err != nil {
			return nil, fmt.Errorf("build planners: %w", err)
		}
	} else {
		p.Logger.InfoContext(ctx, "skipping planner build")
	}

	results := NewResults()

	for _, d := range p.Domains {
		dr, err := p.Comparator.Compare(ctx, d)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return results, fmt.Errorf("benchmark interrupted: %w", ctxErr)
		}

		if err != nil {
			p.Logger.ErrorContext(ctx, "skipping domain",
				slog.String("domain", d.Name),
				slog.String("path", d.Path),
				slog.String("error", err.Error()),
			)

			continue
		}

		results.Put(dr)
	}

	if p.Plotter != nil {
		files, err := p.Plotter.Plot(results)
		if err != nil {
			return results, fmt.Errorf("plot results: %w", err)
		}

		p.Logger.InfoContext(ctx, "charts written", slog.Int("files", len(files)))
	}

	if p.Summarize != nil && p.Out != nil {
		if err := p.Summarize(p.Out, results); err != nil {
			return results, fmt.Errorf("write summary: %w", err)
		}
	}

	return results, nil
}
