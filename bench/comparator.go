package bench

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/weiihann/planbench/harness"
	"github.com/weiihann/planbench/workload"
)

// Invoker runs one planner on one problem. *harness.Runner implements it.
type Invoker interface {
	Kind() harness.Kind
	Run(ctx context.Context, domainFile, problemFile string) harness.RunResult
}

// Comparator runs every invoker on every selected problem of a domain.
type Comparator struct {
	Invokers []Invoker
	Limits   workload.Limits
	Logger   *slog.Logger
}

// NewComparator creates a Comparator. Invokers run in the given order for
// each problem.
func NewComparator(invokers []Invoker, limits workload.Limits, logger *slog.Logger) *Comparator {
	return &Comparator{
		Invokers: invokers,
		Limits:   limits,
		Logger:   logger,
	}
}

// Compare selects the domain's problems and runs each invoker on each of
// them in sequence. Planner failures are recorded in the results; only an
// unusable domain or a cancelled context yields an error.
func (c *Comparator) Compare(ctx context.Context, d workload.Domain) (DomainResults, error) {
	logger := c.Logger.With(slog.String("domain", d.Name))

	sel, err := workload.Select(d, c.Limits.For(d.Name))
	if err != nil {
		return DomainResults{}, fmt.Errorf("select problems: %w", err)
	}

	logger.InfoContext(ctx, "comparing planners",
		slog.Int("problems", len(sel.Problems)),
	)

	dr := DomainResults{
		Domain: d.Name,
		Runs:   make(map[harness.Kind][]harness.RunResult, len(c.Invokers)),
	}

	for _, p := range sel.Problems {
		if err := ctx.Err(); err != nil {
			return dr, fmt.Errorf("compare %s: %w", d.Name, err)
		}

		logger.InfoContext(ctx, "problem", slog.String("problem", p.Name))

		for _, inv := range c.Invokers {
			res := inv.Run(ctx, sel.DomainFile, p.Path)
			res.Problem = p.Name
			dr.Runs[inv.Kind()] = append(dr.Runs[inv.Kind()], res)
		}
	}

	return dr, nil
}
