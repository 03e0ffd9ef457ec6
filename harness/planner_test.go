package harness

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testHSP = HSPConfig{
		ProjectDir: "hsp",
		Java:       "java",
		Jar:        "build/libs/pddl4j-4.0.0.jar",
		MainClass:  "fr.uga.pddl4j.planners.statespace.HSP",
		BuildTool:  "gradlew",
		BuildArgs:  []string{"build"},
	}
	testSAT = SATConfig{
		ProjectDir: "sat",
		Maven:      "mvn",
		MainClass:  "fr.uga.pddl4j.examples.satplanner.SATP",
		BuildArgs:  []string{"compile"},
	}
)

func TestHSPSolveCommand(t *testing.T) {
	a, err := NewAdapter(HSP, testHSP, testSAT)
	require.NoError(t, err)
	assert.Equal(t, HSP, a.Kind())

	inv, err := a.SolveCommand("bench/blocks/domain.pddl", "bench/blocks/p01.pddl")
	require.NoError(t, err)

	assert.Equal(t, "java", inv.Binary)
	assert.Empty(t, inv.Dir)
	assert.Equal(t, []string{
		"-cp", filepath.Join("hsp", "build/libs/pddl4j-4.0.0.jar"),
		"fr.uga.pddl4j.planners.statespace.HSP",
		"bench/blocks/domain.pddl", "bench/blocks/p01.pddl",
	}, inv.Args)
}

func TestSATSolveCommandRelativePaths(t *testing.T) {
	a, err := NewAdapter(SAT, testHSP, testSAT)
	require.NoError(t, err)

	inv, err := a.SolveCommand("bench/blocks/domain.pddl", "bench/blocks/p01.pddl")
	require.NoError(t, err)

	assert.Equal(t, "mvn", inv.Binary)
	assert.Equal(t, "sat", inv.Dir)

	want := filepath.Join("..", "bench", "blocks", "domain.pddl") + " " +
		filepath.Join("..", "bench", "blocks", "p01.pddl")
	assert.Equal(t, []string{
		"exec:java",
		"-Dexec.mainClass=fr.uga.pddl4j.examples.satplanner.SATP",
		"-Dexec.args=" + want,
	}, inv.Args)
}

func TestBuildCommands(t *testing.T) {
	hsp, err := NewAdapter(HSP, testHSP, testSAT)
	require.NoError(t, err)

	inv, err := hsp.BuildCommand()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(inv.Binary))
	assert.Equal(t, "gradlew", filepath.Base(inv.Binary))
	assert.Equal(t, []string{"build"}, inv.Args)
	assert.Equal(t, "hsp", inv.Dir)

	sat, err := NewAdapter(SAT, testHSP, testSAT)
	require.NoError(t, err)

	inv, err = sat.BuildCommand()
	require.NoError(t, err)
	assert.Equal(t, "mvn", inv.Binary)
	assert.Equal(t, []string{"compile"}, inv.Args)
	assert.Equal(t, "sat", inv.Dir)
}

func TestNewAdapterUnknown(t *testing.T) {
	_, err := NewAdapter(Kind("FF"), testHSP, testSAT)
	assert.True(t, errors.Is(err, ErrUnknownPlanner))
}
