package workload

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDomain(t *testing.T, files ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("(define)"), 0o644))
	}

	return dir
}

func TestSelectTruncatesToLimit(t *testing.T) {
	dir := writeDomain(t, "domain.pddl", "p05.pddl", "p03.pddl", "p01.pddl", "p04.pddl", "p02.pddl")

	sel, err := Select(Domain{Name: "blocks", Path: dir}, 2)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "domain.pddl"), sel.DomainFile)
	require.Len(t, sel.Problems, 2)
	assert.Equal(t, "p01.pddl", sel.Problems[0].Name)
	assert.Equal(t, "p02.pddl", sel.Problems[1].Name)
	assert.Equal(t, filepath.Join(dir, "p01.pddl"), sel.Problems[0].Path)
}

func TestSelectSkipsNonProblemFiles(t *testing.T) {
	dir := writeDomain(t, "domain.pddl", "README", "p10.pddl", "p2.pddl", "solution.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "plans"), 0o755))

	sel, err := Select(Domain{Name: "gripper", Path: dir}, 10)
	require.NoError(t, err)

	names := make([]string, 0, len(sel.Problems))
	for _, p := range sel.Problems {
		names = append(names, p.Name)
	}

	// Lexicographic, not numeric.
	assert.Equal(t, []string{"p10.pddl", "p2.pddl"}, names)
}

func TestSelectDeterministic(t *testing.T) {
	dir := writeDomain(t, "domain.pddl", "p3", "p1", "p2")

	first, err := Select(Domain{Name: "d", Path: dir}, 5)
	require.NoError(t, err)
	second, err := Select(Domain{Name: "d", Path: dir}, 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSelectErrors(t *testing.T) {
	t.Run("missing domain file", func(t *testing.T) {
		dir := writeDomain(t, "p01.pddl")
		_, err := Select(Domain{Name: "x", Path: dir}, 5)
		assert.True(t, errors.Is(err, ErrNoDomainFile))
	})

	t.Run("no problems", func(t *testing.T) {
		dir := writeDomain(t, "domain.pddl")
		_, err := Select(Domain{Name: "x", Path: dir}, 5)
		assert.True(t, errors.Is(err, ErrNoProblems))
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := Select(Domain{Name: "x", Path: filepath.Join(t.TempDir(), "nope")}, 5)
		assert.Error(t, err)
	})
}

func TestLimitsFor(t *testing.T) {
	limits := Limits{"blocksworld": 10, "depot": 2, "broken": 0}

	assert.Equal(t, 10, limits.For("blocksworld"))
	assert.Equal(t, 2, limits.For("depot"))
	assert.Equal(t, DefaultLimit, limits.For("broken"))
	assert.Equal(t, DefaultLimit, limits.For("unknown"))
	assert.Equal(t, DefaultLimit, Limits(nil).For("anything"))
}
