// Package main provides the CLI entry point for planbench, which compares a
// heuristic state-space planner against a SAT-based planner on PDDL
// benchmark domains.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/weiihann/planbench/bench"
	"github.com/weiihann/planbench/config"
	"github.com/weiihann/planbench/harness"
	"github.com/weiihann/planbench/report"
	"github.com/weiihann/planbench/workload"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	envFile    string
	verbose    bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var g globalFlags

	root := &cobra.Command{
		Use:   "planbench",
		Short: "Compare HSP and SAT planners on PDDL benchmarks",
		Long: `Planbench builds the HSP and SAT planner projects, runs both on a bounded
set of problem instances from each configured PDDL domain, and plots runtime
and makespan comparison charts per domain.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "",
		"Path to a YAML or TOML config file (default: built-in benchmark set)")
	flags.StringVar(&g.envFile, "env-file", ".env",
		"Optional .env file with PLANBENCH_* overrides")
	flags.BoolVarP(&g.verbose, "verbose", "v", false,
		"Enable debug logging")

	root.AddCommand(
		newRunCmd(&g, stdout, stderr),
		newBuildCmd(&g, stderr),
		newListCmd(&g, stdout, stderr),
	)

	return root
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

func loadConfig(g *globalFlags) (config.Config, error) {
	cfg := config.Default()

	if g.configPath != "" {
		var err error

		cfg, err = config.Load(g.configPath)
		if err != nil {
			return cfg, err
		}
	}

	if err := cfg.ApplyEnv(g.envFile); err != nil {
		return cfg, fmt.Errorf("apply environment: %w", err)
	}

	return cfg, nil
}

func adapters(cfg config.Config) ([]harness.Adapter, error) {
	kinds := harness.KnownPlanners()
	out := make([]harness.Adapter, 0, len(kinds))

	for _, kind := range kinds {
		a, err := harness.NewAdapter(kind, cfg.HSPConfig(), cfg.SATConfig())
		if err != nil {
			return nil, err
		}

		out = append(out, a)
	}

	return out, nil
}

// buildOrder compiles the SAT project first, then HSP.
func buildOrder(as []harness.Adapter) []harness.Adapter {
	ordered := make([]harness.Adapter, 0, len(as))
	for _, a := range as {
		if a.Kind() == harness.SAT {
			ordered = append(ordered, a)
		}
	}
	for _, a := range as {
		if a.Kind() != harness.SAT {
			ordered = append(ordered, a)
		}
	}

	return ordered
}

func newRunCmd(g *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	var (
		outputDir string
		timeout   int
		domains   []string
		skipBuild bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build the planners, benchmark every domain and plot results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(g)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("output-dir") {
				cfg.OutputDir = outputDir
			}
			if cmd.Flags().Changed("timeout") {
				cfg.TimeoutSeconds = timeout
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return runBenchmark(cmd.Context(), newLogger(stderr, g.verbose), stdout, cfg, domains, skipBuild)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&outputDir, "output-dir", report.DefaultOutputDir,
		"Directory for chart images")
	flags.IntVar(&timeout, "timeout", int(harness.DefaultTimeout.Seconds()),
		"Per-invocation timeout in seconds")
	flags.StringSliceVar(&domains, "domains", nil,
		"Domains to run (default: all configured)")
	flags.BoolVar(&skipBuild, "skip-build", false,
		"Skip building the planner projects")

	return cmd
}

func runBenchmark(
	ctx context.Context,
	logger *slog.Logger,
	stdout io.Writer,
	cfg config.Config,
	domainNames []string,
	skipBuild bool,
) error {
	domains, err := cfg.SelectDomains(domainNames)
	if err != nil {
		return err
	}

	as, err := adapters(cfg)
	if err != nil {
		return err
	}

	logger = logger.With(slog.String("run_id", uuid.NewString()))

	logger.InfoContext(ctx, "starting benchmark",
		slog.Int("domains", len(domains)),
		slog.Duration("timeout", cfg.Timeout()),
		slog.String("output_dir", cfg.OutputDir),
	)

	invokers := make([]bench.Invoker, 0, len(as))
	for _, a := range as {
		invokers = append(invokers, harness.NewRunner(a, cfg.Timeout(), logger))
	}

	p := &bench.Pipeline{
		Comparator: bench.NewComparator(invokers, cfg.WorkloadLimits(), logger),
		Domains:    domains,
		Plotter:    report.NewPlotter(cfg.OutputDir, logger),
		Summarize:  report.Generate,
		Out:        stdout,
		Logger:     logger,
	}

	if !skipBuild {
		ordered := buildOrder(as)
		p.Build = func(ctx context.Context) error {
			return harness.Build(ctx, logger, ordered)
		}
	}

	if _, err := p.Run(ctx); err != nil {
		return err
	}

	logger.InfoContext(ctx, "all comparisons done",
		slog.String("figures", cfg.OutputDir),
	)

	return nil
}

func newBuildCmd(g *globalFlags, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build both planner projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(g)
			if err != nil {
				return err
			}

			as, err := adapters(cfg)
			if err != nil {
				return err
			}

			return harness.Build(cmd.Context(), newLogger(stderr, g.verbose), buildOrder(as))
		},
	}
}

func newListCmd(g *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	var domains []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the problem instances each domain would run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(g)
			if err != nil {
				return err
			}

			selected, err := cfg.SelectDomains(domains)
			if err != nil {
				return err
			}

			logger := newLogger(stderr, g.verbose)
			limits := cfg.WorkloadLimits()

			for _, d := range selected {
				sel, err := workload.Select(d, limits.For(d.Name))
				if err != nil {
					logger.Error("unusable domain",
						slog.String("domain", d.Name),
						slog.String("error", err.Error()),
					)

					continue
				}

				fmt.Fprintf(stdout, "%s (%s, limit %d)\n", d.Name, sel.DomainFile, limits.For(d.Name))
				for _, p := range sel.Problems {
					fmt.Fprintf(stdout, "  %s\n", p.Path)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&domains, "domains", nil,
		"Domains to list (default: all configured)")

	return cmd
}
