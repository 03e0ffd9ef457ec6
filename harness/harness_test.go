package harness

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// scriptAdapter runs a shell snippet in place of a real planner.
type scriptAdapter struct {
	kind   Kind
	binary string
	args   []string
	build  Invocation
}

func (s *scriptAdapter) Kind() Kind { return s.kind }

func (s *scriptAdapter) BuildCommand() (Invocation, error) { return s.build, nil }

func (s *scriptAdapter) SolveCommand(_, _ string) (Invocation, error) {
	return Invocation{Binary: s.binary, Args: s.args}, nil
}

func TestParseMakespan(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   int
		wantOK bool
	}{
		{
			name:   "non-contiguous steps",
			output: "0: (pick a)\n1: (stack a b)\n3: (stack c a)\n",
			want:   4,
			wantOK: true,
		},
		{
			name:   "indented lines and noise",
			output: "found plan as follows:\n\n  00: ( unstack b c) [0]\n  01: (put-down b) [0]\n\ntime spent: 0.02s\n",
			want:   2,
			wantOK: true,
		},
		{
			name:   "single step zero",
			output: "0: (noop)",
			want:   1,
			wantOK: true,
		},
		{
			name:   "step after line longer than 4MiB",
			output: "0: (a)\n" + strings.Repeat("x", 5<<20) + "\n7: (h)\n",
			want:   8,
			wantOK: true,
		},
		{
			name:   "no matching lines",
			output: "No solution exists\nstep: 3\n",
			wantOK: false,
		},
		{
			name:   "empty",
			output: "",
			wantOK: false,
		},
		{
			name:   "number without colon",
			output: "12 actions\n",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMakespan(tt.output)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRunnerSuccess(t *testing.T) {
	adapter := &scriptAdapter{
		kind:   HSP,
		binary: "sh",
		args:   []string{"-c", "echo '0: (a)'; echo '1: (b)'; echo log >&2"},
	}

	r := NewRunner(adapter, 10*time.Second, discardLogger())
	res := r.Run(context.Background(), "domain.pddl", "bench/p01.pddl")

	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, "p01.pddl", res.Problem)
	assert.Equal(t, HSP, res.Planner)
	assert.True(t, res.HasRuntime())
	assert.Greater(t, res.Runtime, time.Duration(0))

	makespan, ok := res.PlanLength()
	require.True(t, ok)
	assert.Equal(t, 2, makespan)
}

func TestRunnerNoPlanKeepsRuntime(t *testing.T) {
	adapter := &scriptAdapter{kind: SAT, binary: "sh", args: []string{"-c", "echo 'No solution exists'"}}

	res := NewRunner(adapter, 10*time.Second, discardLogger()).
		Run(context.Background(), "domain.pddl", "p02.pddl")

	assert.Equal(t, StatusNoPlan, res.Status)
	assert.True(t, res.HasRuntime())
	assert.False(t, res.HasMakespan())
	assert.NoError(t, res.Err)
}

func TestRunnerTimeout(t *testing.T) {
	adapter := &scriptAdapter{kind: SAT, binary: "sleep", args: []string{"10"}}

	start := time.Now()
	res := NewRunner(adapter, 100*time.Millisecond, discardLogger()).
		Run(context.Background(), "domain.pddl", "p03.pddl")

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, StatusTimeout, res.Status)
	assert.False(t, res.HasRuntime())
	assert.False(t, res.HasMakespan())
	assert.Error(t, res.Err)

	_, ok := res.Seconds()
	assert.False(t, ok)
}

func TestRunnerTimeoutKillsChildProcesses(t *testing.T) {
	adapter := &scriptAdapter{kind: HSP, binary: "sh", args: []string{"-c", "sleep 30; echo done"}}

	start := time.Now()
	res := NewRunner(adapter, 200*time.Millisecond, discardLogger()).
		Run(context.Background(), "domain.pddl", "p04.pddl")

	// The grandchild sleep must die with the shell, not hold stdout open
	// until the wait delay expires.
	assert.Less(t, time.Since(start), 3*time.Second)
	assert.Equal(t, StatusTimeout, res.Status)
}

func TestRunnerMissingExecutable(t *testing.T) {
	adapter := &scriptAdapter{kind: HSP, binary: filepath.Join(t.TempDir(), "no-such-planner")}

	res := NewRunner(adapter, time.Second, discardLogger()).
		Run(context.Background(), "domain.pddl", "p01.pddl")

	assert.Equal(t, StatusSpawnFailed, res.Status)
	assert.Error(t, res.Err)
	assert.False(t, res.HasRuntime())
}

func TestRunnerNonZeroExit(t *testing.T) {
	adapter := &scriptAdapter{kind: HSP, binary: "sh", args: []string{"-c", "echo '0: (a)'; echo boom >&2; exit 3"}}

	res := NewRunner(adapter, time.Second, discardLogger()).
		Run(context.Background(), "domain.pddl", "p01.pddl")

	assert.Equal(t, StatusExitFailed, res.Status)
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "boom")
	assert.False(t, res.HasMakespan())
}

func TestTail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{"short", "  boom \n", 10, "boom"},
		{"ascii cut", "abcdef", 3, "...def"},
		{"cut inside rune moves forward", "ééé", 3, "...é"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tail(tt.input, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestNewRunnerDefaultTimeout(t *testing.T) {
	r := NewRunner(&scriptAdapter{kind: HSP}, 0, discardLogger())
	assert.Equal(t, DefaultTimeout, r.Timeout)
}

func TestBuildStopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "second-built")

	adapters := []Adapter{
		&scriptAdapter{kind: SAT, build: Invocation{Binary: "sh", Args: []string{"-c", "exit 1"}}},
		&scriptAdapter{kind: HSP, build: Invocation{Binary: "sh", Args: []string{"-c", "touch " + marker}}},
	}

	err := Build(context.Background(), discardLogger(), adapters)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build SAT")

	_, statErr := os.Stat(marker)
	assert.True(t, os.IsNotExist(statErr), "second project must not be built")
}

func TestBuildMissingWrapper(t *testing.T) {
	adapter, err := NewAdapter(HSP, HSPConfig{
		ProjectDir: t.TempDir(),
		BuildTool:  "gradlew",
		BuildArgs:  []string{"build"},
	}, SATConfig{})
	require.NoError(t, err)

	err = Build(context.Background(), discardLogger(), []Adapter{adapter})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build tool not found")
}

func TestBuildSuccess(t *testing.T) {
	adapters := []Adapter{
		&scriptAdapter{kind: SAT, build: Invocation{Binary: "true"}},
		&scriptAdapter{kind: HSP, build: Invocation{Binary: "true"}},
	}

	assert.NoError(t, Build(context.Background(), discardLogger(), adapters))
}
