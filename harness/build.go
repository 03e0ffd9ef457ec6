package harness

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

// Build compiles every planner project in order. The first failure stops
// the build and is returned; callers must not benchmark after an error.
func Build(ctx context.Context, logger *slog.Logger, adapters []Adapter) error {
	for _, a := range adapters {
		if err := buildOne(ctx, logger, a); err != nil {
			return err
		}
	}

	return nil
}

func buildOne(ctx context.Context, logger *slog.Logger, a Adapter) error {
	kind := a.Kind()

	inv, err := a.BuildCommand()
	if err != nil {
		return fmt.Errorf("build %s: %w", kind, err)
	}

	// Project-local wrappers such as gradlew are resolved to absolute
	// paths; make sure they exist before spawning.
	if filepath.IsAbs(inv.Binary) {
		if _, err := os.Stat(inv.Binary); err != nil {
			return fmt.Errorf("build %s: build tool not found at %s", kind, inv.Binary)
		}
	}

	logger.InfoContext(ctx, "building planner",
		slog.String("planner", string(kind)),
		slog.String("tool", inv.Binary),
		slog.String("dir", inv.Dir),
	)

	cmd := exec.CommandContext(ctx, inv.Binary, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("build %s in %s: %w", kind, inv.Dir, err)
	}

	logger.InfoContext(ctx, "planner built",
		slog.String("planner", string(kind)),
	)

	return nil
}
