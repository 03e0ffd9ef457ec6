package report

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/weiihann/planbench/bench"
	"github.com/weiihann/planbench/harness"
)

const (
	// DefaultOutputDir is where charts are written when none is configured.
	DefaultOutputDir = "figures"

	defaultWidth  = 10 * vg.Inch
	defaultHeight = 8 * vg.Inch
)

// Plotter renders per-domain runtime and makespan comparison charts as PNG
// files.
type Plotter struct {
	OutputDir string
	Width     vg.Length
	Height    vg.Length
	Logger    *slog.Logger
}

// NewPlotter creates a Plotter writing into outputDir.
func NewPlotter(outputDir string, logger *slog.Logger) *Plotter {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}

	return &Plotter{
		OutputDir: outputDir,
		Width:     defaultWidth,
		Height:    defaultHeight,
		Logger:    logger,
	}
}

// ChartFiles returns the two chart paths written for a domain.
func (p *Plotter) ChartFiles(domain string) (runtime, makespan string) {
	return filepath.Join(p.OutputDir, domain+"_runtime.png"),
		filepath.Join(p.OutputDir, domain+"_makespan.png")
}

// Plot writes two charts per domain and returns the paths written, in
// domain order.
func (p *Plotter) Plot(results *bench.Results) ([]string, error) {
	if err := os.MkdirAll(p.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", p.OutputDir, err)
	}

	var written []string

	for _, dr := range results.Domains() {
		a := Align(dr)
		if len(a.Problems) == 0 {
			p.Logger.Warn("no problems to plot", slog.String("domain", dr.Domain))

			continue
		}

		runtimePath, makespanPath := p.ChartFiles(dr.Domain)

		err := p.render(chart{
			title:    "Runtime - " + dr.Domain,
			xLabel:   "Problem (runtime comparison)",
			yLabel:   "Time (s)",
			problems: a.Problems,
			planners: a.Planners,
			values:   a.Runtime,
		}, runtimePath)
		if err != nil {
			return written, fmt.Errorf("plot %s runtime: %w", dr.Domain, err)
		}

		written = append(written, runtimePath)

		err = p.render(chart{
			title:    "Makespan - " + dr.Domain,
			xLabel:   "Problem (makespan comparison)",
			yLabel:   "Plan Length",
			problems: a.Problems,
			planners: a.Planners,
			values:   a.Makespan,
		}, makespanPath)
		if err != nil {
			return written, fmt.Errorf("plot %s makespan: %w", dr.Domain, err)
		}

		written = append(written, makespanPath)

		p.Logger.Info("domain plotted",
			slog.String("domain", dr.Domain),
			slog.String("runtime_chart", runtimePath),
			slog.String("makespan_chart", makespanPath),
		)
	}

	return written, nil
}

type chart struct {
	title    string
	xLabel   string
	yLabel   string
	problems []string
	planners []harness.Kind
	values   map[harness.Kind][]Point
}

func (p *Plotter) render(c chart, path string) error {
	pl := plot.New()
	pl.Title.Text = c.title
	pl.X.Label.Text = c.xLabel
	pl.Y.Label.Text = c.yLabel

	pl.NominalX(c.problems...)
	pl.X.Tick.Label.Rotation = math.Pi / 4
	pl.X.Tick.Label.XAlign = draw.XRight
	pl.X.Tick.Label.YAlign = draw.YCenter
	pl.X.Min = -0.5
	pl.X.Max = float64(len(c.problems)) - 0.5
	pl.Y.Min = 0
	pl.Legend.Top = true

	for i, kind := range c.planners {
		lineStyle := draw.LineStyle{Color: plotutil.Color(i), Width: vg.Points(1.5)}
		glyphStyle := draw.GlyphStyle{Color: plotutil.Color(i), Radius: vg.Points(3), Shape: glyph(i)}

		for _, seg := range segments(c.values[kind]) {
			if len(seg) > 1 {
				line, err := plotter.NewLine(seg)
				if err != nil {
					return fmt.Errorf("line for %s: %w", kind, err)
				}

				line.LineStyle = lineStyle
				pl.Add(line)
			}

			points, err := plotter.NewScatter(seg)
			if err != nil {
				return fmt.Errorf("points for %s: %w", kind, err)
			}

			points.GlyphStyle = glyphStyle
			pl.Add(points)
		}

		pl.Legend.Add(DisplayName(kind),
			&plotter.Line{LineStyle: lineStyle},
			&plotter.Scatter{GlyphStyle: glyphStyle},
		)
	}

	if err := pl.Save(p.Width, p.Height, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	return nil
}

// segments splits a series at gaps so absent values break the line instead
// of being drawn as zero.
func segments(points []Point) []plotter.XYs {
	var (
		out []plotter.XYs
		cur plotter.XYs
	)

	for i, pt := range points {
		if !pt.OK {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}

			continue
		}

		cur = append(cur, plotter.XY{X: float64(i), Y: pt.Value})
	}

	if len(cur) > 0 {
		out = append(out, cur)
	}

	return out
}

func glyph(i int) draw.GlyphDrawer {
	if i == 0 {
		return draw.CircleGlyph{}
	}

	return draw.CrossGlyph{}
}

// DisplayName is the legend label for a planner.
func DisplayName(kind harness.Kind) string {
	if kind == harness.SAT {
		return "SAT Planner"
	}

	return string(kind)
}
