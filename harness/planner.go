package harness

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Kind identifies one of the supported planners.
type Kind string

const (
	// HSP is the heuristic state-space planner.
	HSP Kind = "HSP"
	// SAT is the SAT-based planner.
	SAT Kind = "SAT"
)

// ErrUnknownPlanner is returned for a Kind with no adapter.
var ErrUnknownPlanner = errors.New("unknown planner")

// KnownPlanners returns the planners in the order they are run and plotted.
func KnownPlanners() []Kind {
	return []Kind{HSP, SAT}
}

// Invocation is a fully resolved external command.
type Invocation struct {
	Binary string
	Args   []string
	// Dir is the working directory; empty means the current directory.
	Dir string
}

// Adapter knows how to build a planner project and how to lay out the
// command line that solves one problem with it.
type Adapter interface {
	Kind() Kind
	// BuildCommand returns the command that compiles the planner project.
	BuildCommand() (Invocation, error)
	// SolveCommand returns the command that runs the planner on a
	// domain/problem pair.
	SolveCommand(domainFile, problemFile string) (Invocation, error)
}

// HSPConfig describes the state-space planner: a prebuilt jar launched by
// java from the harness working directory.
type HSPConfig struct {
	ProjectDir string
	Java       string
	// Jar is relative to ProjectDir.
	Jar       string
	MainClass string
	// BuildTool is relative to ProjectDir, e.g. "gradlew".
	BuildTool string
	BuildArgs []string
}

// SATConfig describes the SAT planner: a maven project executed with
// exec:java from inside its own directory.
type SATConfig struct {
	ProjectDir string
	Maven      string
	MainClass  string
	BuildArgs  []string
}

// NewAdapter returns the adapter for kind.
func NewAdapter(kind Kind, hsp HSPConfig, sat SATConfig) (Adapter, error) {
	switch kind {
	case HSP:
		return &hspAdapter{cfg: hsp}, nil
	case SAT:
		return &satAdapter{cfg: sat}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownPlanner, kind)
	}
}

type hspAdapter struct {
	cfg HSPConfig
}

func (a *hspAdapter) Kind() Kind { return HSP }

func (a *hspAdapter) BuildCommand() (Invocation, error) {
	tool, err := filepath.Abs(filepath.Join(a.cfg.ProjectDir, a.cfg.BuildTool))
	if err != nil {
		return Invocation{}, fmt.Errorf("resolve build tool: %w", err)
	}

	return Invocation{
		Binary: tool,
		Args:   append([]string(nil), a.cfg.BuildArgs...),
		Dir:    a.cfg.ProjectDir,
	}, nil
}

func (a *hspAdapter) SolveCommand(domainFile, problemFile string) (Invocation, error) {
	jar := filepath.Join(a.cfg.ProjectDir, a.cfg.Jar)

	return Invocation{
		Binary: a.cfg.Java,
		Args:   []string{"-cp", jar, a.cfg.MainClass, domainFile, problemFile},
	}, nil
}

type satAdapter struct {
	cfg SATConfig
}

func (a *satAdapter) Kind() Kind { return SAT }

func (a *satAdapter) BuildCommand() (Invocation, error) {
	return Invocation{
		Binary: a.cfg.Maven,
		Args:   append([]string(nil), a.cfg.BuildArgs...),
		Dir:    a.cfg.ProjectDir,
	}, nil
}

// SolveCommand rewrites both paths relative to the project directory,
// since maven runs from there.
func (a *satAdapter) SolveCommand(domainFile, problemFile string) (Invocation, error) {
	domainRel, err := relativeTo(a.cfg.ProjectDir, domainFile)
	if err != nil {
		return Invocation{}, err
	}

	problemRel, err := relativeTo(a.cfg.ProjectDir, problemFile)
	if err != nil {
		return Invocation{}, err
	}

	return Invocation{
		Binary: a.cfg.Maven,
		Args: []string{
			"exec:java",
			"-Dexec.mainClass=" + a.cfg.MainClass,
			"-Dexec.args=" + domainRel + " " + problemRel,
		},
		Dir: a.cfg.ProjectDir,
	}, nil
}

func relativeTo(base, target string) (string, error) {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", base, err)
	}

	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", target, err)
	}

	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil {
		return "", fmt.Errorf("relativize %s to %s: %w", target, base, err)
	}

	return rel, nil
}
