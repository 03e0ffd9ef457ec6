// Package harness builds and invokes the external planners and turns their
// output into per-problem run results.
package harness

import "time"

// Status classifies how a single planner invocation ended.
type Status string

const (
	// StatusOK means the planner exited cleanly and a plan was found.
	StatusOK Status = "ok"
	// StatusNoPlan means the planner exited cleanly but no plan steps were
	// found in its output. Runtime is still recorded.
	StatusNoPlan Status = "no_plan"
	// StatusTimeout means the planner exceeded the wall-clock bound.
	StatusTimeout Status = "timeout"
	// StatusSpawnFailed means the process could not be started.
	StatusSpawnFailed Status = "spawn_failed"
	// StatusExitFailed means the process ran but exited unsuccessfully.
	StatusExitFailed Status = "exit_failed"
)

// RunResult holds the outcome of one planner on one problem.
// Runtime and Makespan are only meaningful when HasRuntime / HasMakespan
// report true; absent values must never be read as zero.
type RunResult struct {
	Problem  string
	Planner  Kind
	Status   Status
	Runtime  time.Duration
	Makespan int
	Err      error
}

// HasRuntime reports whether the run completed and its runtime was measured.
func (r RunResult) HasRuntime() bool {
	return r.Status == StatusOK || r.Status == StatusNoPlan
}

// HasMakespan reports whether a plan length was extracted.
func (r RunResult) HasMakespan() bool {
	return r.Status == StatusOK
}

// Seconds returns the runtime in seconds and whether it is present.
func (r RunResult) Seconds() (float64, bool) {
	if !r.HasRuntime() {
		return 0, false
	}

	return r.Runtime.Seconds(), true
}

// PlanLength returns the makespan and whether it is present.
func (r RunResult) PlanLength() (int, bool) {
	if !r.HasMakespan() {
		return 0, false
	}

	return r.Makespan, true
}
