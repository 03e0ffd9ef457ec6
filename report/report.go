// Package report turns collected planner results into comparison charts and
// a console summary.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/weiihann/planbench/bench"
	"github.com/weiihann/planbench/harness"
)

// Generate writes a markdown table per domain listing the raw runtime and
// makespan of every planner, in plotting order.
func Generate(w io.Writer, results *bench.Results) error {
	fmt.Fprintln(w, "## Planner Comparison")
	fmt.Fprintln(w)

	if results == nil || results.Len() == 0 {
		fmt.Fprintln(w, "No benchmark results.")

		return nil
	}

	for _, dr := range results.Domains() {
		a := Align(dr)

		fmt.Fprintf(w, "### %s\n\n", dr.Domain)

		// Table header.
		header := []string{"Problem"}
		sep := []string{"---------"}
		for _, kind := range a.Planners {
			name := DisplayName(kind)
			header = append(header, name+" Time", name+" Makespan")
			sep = append(sep, "------", "------")
		}

		fmt.Fprintln(w, "| "+strings.Join(header, " | ")+" |")
		fmt.Fprintln(w, "|"+strings.Join(sep, "|")+"|")

		for i, problem := range a.Problems {
			row := []string{problem}
			for _, kind := range a.Planners {
				row = append(row,
					formatRuntime(a.Runtime[kind][i], a.Status[kind][i]),
					formatMakespan(a.Makespan[kind][i]),
				)
			}

			fmt.Fprintln(w, "| "+strings.Join(row, " | ")+" |")
		}

		fmt.Fprintln(w)
	}

	return nil
}

func formatRuntime(p Point, status harness.Status) string {
	if !p.OK {
		if status == "" {
			return "-"
		}

		return string(status)
	}

	return formatDuration(time.Duration(p.Value * float64(time.Second)))
}

func formatMakespan(p Point) string {
	if !p.OK {
		return "-"
	}

	return fmt.Sprintf("%d", int(p.Value))
}

func formatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}

	return fmt.Sprintf("%.2fs", float64(ms)/1000)
}
