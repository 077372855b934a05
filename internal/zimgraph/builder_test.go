package zimgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/navicore/zimdsp/internal/zimparse"
)

func mustParse(t testing.TB, text string) []zimparse.Command {
	t.Helper()
	cmds, err := zimparse.Parse(text)
	require.NoError(t, err)
	return cmds
}

func TestBuildSimplePatch(t *testing.T) {
	cmds := mustParse(t, "vco: osc sine 440\nout <- vco.sine\n")
	patch, err := Build(cmds, 44100)
	require.NoError(t, err)
	require.Len(t, patch.Modules, 1)
	assert.Equal(t, Mono, patch.Output.Mode)
	assert.Equal(t, "vco", patch.Output.Left.Instance.Name)
	assert.Equal(t, "sine", patch.Output.Left.Port)
}

func TestBuildEvaluationOrderRespectsDependencies(t *testing.T) {
	cmds := mustParse(t, ""+
		"clock: lfo 2\n"+
		"env: envelope 0.01 0.1\n"+
		"vco: osc sine 440\n"+
		"vca: vca 1.0\n"+
		"env.gate <- clock.gate\n"+
		"vca.audio <- vco.sine\n"+
		"vca.cv <- env.out\n"+
		"out <- vca.out\n")
	patch, err := Build(cmds, 44100)
	require.NoError(t, err)
	require.Len(t, patch.EvaluationOrder, 4)

	pos := map[string]int{}
	for i, m := range patch.EvaluationOrder {
		pos[m.Name] = i
	}
	assert.Less(t, pos["clock"], pos["env"])
	assert.Less(t, pos["env"], pos["vca"])
	assert.Less(t, pos["vco"], pos["vca"])
}

// TestBuildS4RejectsCycle reproduces spec scenario S4.
func TestBuildS4RejectsCycle(t *testing.T) {
	cmds := mustParse(t, "a: vca 1\nb: vca 1\na.audio <- b.out\nb.audio <- a.out\n")
	_, err := Build(cmds, 44100)
	require.Error(t, err)
	var cerr *CycleError
	require.ErrorAs(t, err, &cerr)
	assert.ElementsMatch(t, []string{"a", "b"}, cerr.Path)
}

// TestBuildS5RejectsOutputConflict reproduces spec scenario S5.
func TestBuildS5RejectsOutputConflict(t *testing.T) {
	cmds := mustParse(t, "vco: osc sine 440\nout <- vco.sine\nout.left <- vco.sine\n")
	_, err := Build(cmds, 44100)
	require.Error(t, err)
	var operr *OutputConflictError
	require.ErrorAs(t, err, &operr)
}

func TestBuildRejectsUnknownModule(t *testing.T) {
	cmds := mustParse(t, "out <- nope.sine\n")
	_, err := Build(cmds, 44100)
	require.Error(t, err)
	var uerr *UnknownModuleError
	require.ErrorAs(t, err, &uerr)
}

func TestBuildRejectsUnknownPort(t *testing.T) {
	cmds := mustParse(t, "vco: osc sine 440\nout <- vco.nonexistent\n")
	_, err := Build(cmds, 44100)
	require.Error(t, err)
	var perr *UnknownPortError
	require.ErrorAs(t, err, &perr)
}

func TestBuildRejectsSecondConnectionToNonSummingSink(t *testing.T) {
	cmds := mustParse(t, ""+
		"a: osc sine 440\n"+
		"b: osc sine 220\n"+
		"vca: vca 1.0\n"+
		"vca.audio <- a.sine\n"+
		"vca.audio <- b.sine\n")
	_, err := Build(cmds, 44100)
	require.Error(t, err)
	var merr *MultipleConnectionError
	require.ErrorAs(t, err, &merr)
}

func TestBuildAllowsDistinctMixerInputsEach(t *testing.T) {
	cmds := mustParse(t, ""+
		"a: osc sine 440\n"+
		"b: osc sine 220\n"+
		"mix: mixer\n"+
		"mix.in1 <- a.sine\n"+
		"mix.in2 <- b.sine\n"+
		"out <- mix.out\n")
	_, err := Build(cmds, 44100)
	require.NoError(t, err)
}

// TestBuildTopoOrderIsValidForAcyclicChains is a property test of spec §8
// property 2: for any acyclic chain of modules, the computed evaluation
// order always places each module after everything it reads from.
func TestBuildTopoOrderIsValidForAcyclicChains(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(rt, "n")
		var sb []byte
		for i := 0; i < n; i++ {
			sb = append(sb, []byte(nameOf(i)+": vca 1\n")...)
		}
		// Chain each module's audio input to the previous one's output,
		// guaranteeing an acyclic, strictly-ordered dependency chain.
		for i := 1; i < n; i++ {
			sb = append(sb, []byte(nameOf(i)+".audio <- "+nameOf(i-1)+".out\n")...)
		}
		cmds, err := zimparse.Parse(string(sb))
		require.NoError(rt, err)
		patch, err := Build(cmds, 44100)
		require.NoError(rt, err)
		require.Len(rt, patch.EvaluationOrder, n)

		pos := map[string]int{}
		for i, m := range patch.EvaluationOrder {
			pos[m.Name] = i
		}
		for i := 1; i < n; i++ {
			assert.Less(rt, pos[nameOf(i-1)], pos[nameOf(i)])
		}
	})
}

func nameOf(i int) string {
	return string(rune('a' + i))
}
