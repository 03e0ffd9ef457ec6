package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultTimeout bounds a single planner invocation.
const DefaultTimeout = 600 * time.Second

// waitDelay bounds how long Wait blocks on inherited output pipes after the
// planner process itself has been killed.
const waitDelay = 5 * time.Second

// Runner invokes a single planner on problem instances. It never retries
// and never returns an error: every failure is folded into the RunResult.
type Runner struct {
	Adapter Adapter
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewRunner creates a Runner for the given planner adapter.
func NewRunner(adapter Adapter, timeout time.Duration, logger *slog.Logger) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Runner{
		Adapter: adapter,
		Timeout: timeout,
		Logger:  logger.With(slog.String("planner", string(adapter.Kind()))),
	}
}

// Kind returns the planner this runner invokes.
func (r *Runner) Kind() Kind {
	return r.Adapter.Kind()
}

// Run executes the planner on one domain/problem pair and returns its
// runtime and makespan, or a typed absence.
func (r *Runner) Run(ctx context.Context, domainFile, problemFile string) RunResult {
	result := RunResult{
		Problem: filepath.Base(problemFile),
		Planner: r.Adapter.Kind(),
	}
	logger := r.Logger.With(slog.String("problem", problemFile))

	inv, err := r.Adapter.SolveCommand(domainFile, problemFile)
	if err != nil {
		result.Status = StatusSpawnFailed
		result.Err = fmt.Errorf("build command: %w", err)
		logger.ErrorContext(ctx, "planner command failed", slog.String("error", result.Err.Error()))

		return result
	}

	runCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, inv.Binary, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.WaitDelay = waitDelay
	killGroupOnCancel(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.InfoContext(ctx, "running planner",
		slog.String("binary", inv.Binary),
		slog.String("dir", inv.Dir),
	)

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if runErr != nil {
		result.Status, result.Err = classify(runCtx, runErr, stderr.String())

		if result.Status == StatusTimeout {
			logger.WarnContext(ctx, "planner timed out",
				slog.Duration("timeout", r.Timeout),
			)
		} else {
			logger.ErrorContext(ctx, "planner failed",
				slog.String("status", string(result.Status)),
				slog.String("error", result.Err.Error()),
			)
		}

		return result
	}

	result.Runtime = elapsed

	makespan, ok := ParseMakespan(stdout.String())
	if !ok {
		result.Status = StatusNoPlan
		logger.WarnContext(ctx, "no plan found in planner output",
			slog.Duration("runtime", elapsed),
		)

		return result
	}

	result.Status = StatusOK
	result.Makespan = makespan

	logger.InfoContext(ctx, "planner finished",
		slog.Duration("runtime", elapsed),
		slog.Int("makespan", makespan),
	)

	return result
}

func classify(ctx context.Context, err error, stderr string) (Status, error) {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return StatusTimeout, fmt.Errorf("timed out: %w", ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return StatusExitFailed, fmt.Errorf("%w\nstderr: %s", err, tail(stderr, 2048))
	}

	if errors.Is(err, exec.ErrWaitDelay) {
		return StatusExitFailed, err
	}

	return StatusSpawnFailed, err
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}

	cut := len(s) - n
	for cut < len(s) && !utf8.RuneStart(s[cut]) {
		cut++
	}

	return "..." + s[cut:]
}
