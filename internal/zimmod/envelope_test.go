package zimmod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnvelopeADLaw verifies SPEC_FULL.md §8 property 6: an AD envelope
// with A=a, D=d driven by a gate that rises at sample 0 peaks at sample
// round(a*sr) with value 1 and returns to 0 at sample round((a+d)*sr).
func TestEnvelopeADLaw(t *testing.T) {
	const sampleRate = 44100.0
	const attack = 0.01
	const decay = 0.1
	m, err := NewEnvelope(sampleRate, []float32{attack, decay})
	require.NoError(t, err)
	out := NewOutputMap(m.Ports())

	peakSample := int(attack*sampleRate + 0.5)
	endSample := int((attack+decay)*sampleRate + 0.5)

	var peakVal, endVal float32
	for i := 0; i <= endSample; i++ {
		gate := float32(0)
		if i == 0 {
			gate = 1
		}
		m.Process(PortValues{"gate": gate}, out)
		if i == peakSample {
			peakVal = out["out"]
		}
		if i == endSample {
			endVal = out["out"]
		}
	}
	assert.InDelta(t, 1.0, peakVal, 1e-6)
	assert.InDelta(t, 0.0, endVal, 1e-6)
}

func TestEnvelopeRisingEdgeRestartsFromAnyStage(t *testing.T) {
	m, err := NewEnvelope(44100, []float32{0.01, 0.01})
	require.NoError(t, err)
	out := NewOutputMap(m.Ports())

	m.Process(PortValues{"gate": 1}, out)
	for i := 0; i < 100; i++ {
		m.Process(PortValues{"gate": 0}, out)
	}
	// 101 samples into the 441-sample attack, a fresh rising edge must
	// restart attack from zero progress
	m.Process(PortValues{"gate": 1}, out)
	firstAfterRestart := out["out"]
	assert.Less(t, firstAfterRestart, float32(1.0))
}
