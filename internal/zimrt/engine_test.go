package zimrt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navicore/zimdsp/internal/zimgraph"
	"github.com/navicore/zimdsp/internal/zimparse"
)

func buildPatch(t testing.TB, text string, sampleRate float64) *zimgraph.Patch {
	t.Helper()
	cmds, err := zimparse.Parse(text)
	require.NoError(t, err)
	patch, err := zimgraph.Build(cmds, sampleRate)
	require.NoError(t, err)
	return patch
}

func newRunningEngine(t testing.TB, patch *zimgraph.Patch, sampleRate float64) *Engine {
	t.Helper()
	e := NewEngine(sampleRate)
	e.Enqueue(LoadPatchCommand(patch))
	e.Enqueue(StartCommand())
	return e
}

// TestEngineS1SineToMonoOut reproduces spec scenario S1.
func TestEngineS1SineToMonoOut(t *testing.T) {
	const sr = 44100.0
	patch := buildPatch(t, "vco: osc sine 440\nout <- vco.sine\n", sr)
	e := newRunningEngine(t, patch, sr)

	dst := make([]float32, 100*2)
	e.Fill(dst)

	assert.InDelta(t, 0, dst[0], 1e-9)
	want := math.Sin(2 * math.Pi * 440 * 10 / sr)
	assert.InDelta(t, want, dst[10*2], 1e-4)
	for i := 0; i < 100; i++ {
		assert.Equal(t, dst[i*2], dst[i*2+1], "left/right must match for mono out")
	}
}

// TestEngineS2LFOGatedEnvelope runs the patch of spec scenario S2 and
// checks that the VCA output sits near zero between envelope fires; it
// does not count the fires.
func TestEngineS2LFOGatedEnvelope(t *testing.T) {
	const sr = 44100.0
	patch := buildPatch(t, ""+
		"clock: lfo 2\n"+
		"env: envelope 0.01 0.1\n"+
		"vco: osc sine 440\n"+
		"vca: vca 1.0\n"+
		"env.gate <- clock.gate\n"+
		"vca.audio <- vco.sine\n"+
		"vca.cv <- env.out\n"+
		"out <- vca.out\n", sr)
	e := newRunningEngine(t, patch, sr)

	// Sample deep into a half-cycle (duty low, long after AD has settled
	// back to 0) where the VCA output must be near-silent.
	dst := make([]float32, 2)
	quietSample := int(sr*0.4) // well past attack+decay, still before next gate
	for i := 0; i < quietSample; i++ {
		e.Fill(dst)
	}
	assert.LessOrEqual(t, math.Abs(float64(dst[0])), 1e-6)
}

// TestEngineS3Seq8StepsInOrder reproduces spec scenario S3.
func TestEngineS3Seq8StepsInOrder(t *testing.T) {
	const sr = 1000.0
	patch := buildPatch(t, ""+
		"seq: seq8\n"+
		"clock: lfo 4\n"+
		"seq.clock <- clock.gate\n"+
		"seq.step1 <- 220\n"+
		"seq.step2 <- 247\n"+
		"seq.step3 <- 277\n"+
		"seq.step4 <- 311\n"+
		"seq.step5 <- 349\n"+
		"seq.step6 <- 392\n"+
		"seq.step7 <- 440\n"+
		"seq.step8 <- 494\n", sr)
	e := newRunningEngine(t, patch, sr)

	samplesPerCycle := int(sr / 4) // one lfo cycle == one clock rising edge
	readStepCV := func() float32 {
		dst := make([]float32, 2)
		for i := 0; i < samplesPerCycle; i++ {
			e.Fill(dst)
		}
		return patch.ByName["seq"].Output["cv"]
	}
	want := []float32{220, 247, 277, 311, 349, 392, 440, 494}
	for i, w := range want {
		assert.InDelta(t, w, readStepCV(), 1e-3, "tick %d", i+1)
	}
	assert.InDelta(t, 220, readStepCV(), 1e-3, "9th tick wraps to step 1")
}

// TestEngineDeterminism is a property test of spec §8 property 3:
// rendering the same compiled patch twice from a freshly constructed
// engine yields bit-identical output.
func TestEngineDeterminism(t *testing.T) {
	const sr = 44100.0
	text := "vco: osc sine 440\nfilt: filter 800 0.4\nfilt.audio <- vco.sine\nout <- filt.lp\n"

	render := func() []float32 {
		patch := buildPatch(t, text, sr)
		e := newRunningEngine(t, patch, sr)
		dst := make([]float32, 512*2)
		e.Fill(dst)
		return dst
	}

	a := render()
	b := render()
	assert.Equal(t, a, b)
}

// TestEngineS6ManualGateProducesOneEnvelopeCycle reproduces spec
// scenario S6: PressGate followed 50ms later by ReleaseGate on a
// manual gate source drives exactly one attack-decay cycle.
func TestEngineS6ManualGateProducesOneEnvelopeCycle(t *testing.T) {
	const sr = 44100.0
	patch := buildPatch(t, ""+
		"gate: manual\n"+
		"env: envelope 0.01 0.1\n"+
		"env.gate <- gate.gate\n"+
		"out <- env.out\n", sr)
	e := newRunningEngine(t, patch, sr)

	dst := make([]float32, 2)
	e.Enqueue(PressGateCommand("gate"))

	peak := float32(0)
	for i := 0; i < int(0.05*sr); i++ {
		e.Fill(dst)
		if dst[0] > peak {
			peak = dst[0]
		}
	}
	assert.InDelta(t, 1.0, peak, 1e-3, "attack must reach full scale before release")

	e.Enqueue(ReleaseGateCommand("gate"))
	for i := 0; i < int(0.15*sr); i++ {
		e.Fill(dst)
	}
	assert.LessOrEqual(t, math.Abs(float64(dst[0])), 1e-3, "decay must have completed and stayed at 0")
}

// TestEngineStopFillsSilence verifies the Stop control command causes
// Fill to produce zeros, per SPEC_FULL.md §5.
func TestEngineStopFillsSilence(t *testing.T) {
	const sr = 44100.0
	patch := buildPatch(t, "vco: osc sine 440\nout <- vco.sine\n", sr)
	e := newRunningEngine(t, patch, sr)

	dst := make([]float32, 10*2)
	e.Fill(dst)
	e.Enqueue(StopCommand())

	dst2 := make([]float32, 10*2)
	e.Fill(dst2)
	for _, v := range dst2 {
		assert.Equal(t, float32(0), v)
	}
}
