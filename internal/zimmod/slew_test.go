package zimmod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlewRisesAndFiresEor(t *testing.T) {
	const sampleRate = 1000.0
	m, err := NewSlew(sampleRate, []float32{0.1, 0.1}) // 100-sample rise/fall
	require.NoError(t, err)
	out := NewOutputMap(m.Ports())

	var sawEor bool
	for i := 0; i < 150; i++ {
		m.Process(PortValues{"in": 1}, out)
		if out["eor"] != 0 {
			sawEor = true
		}
	}
	assert.True(t, sawEor, "expected an eor pulse while rising toward target")
	assert.InDelta(t, 1.0, out["out"], 1e-6)
}

func TestSlewCompletesCycleWithEoc(t *testing.T) {
	const sampleRate = 1000.0
	m, err := NewSlew(sampleRate, []float32{0.05, 0.05})
	require.NoError(t, err)
	out := NewOutputMap(m.Ports())

	var sawEoc bool
	for i := 0; i < 60; i++ {
		m.Process(PortValues{"in": 1}, out)
	}
	for i := 0; i < 60; i++ {
		m.Process(PortValues{"in": 0}, out)
		if out["eoc"] != 0 {
			sawEoc = true
		}
	}
	assert.True(t, sawEoc, "expected an eoc pulse after rise-then-fall completed")
}
