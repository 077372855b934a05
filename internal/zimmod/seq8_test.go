package zimmod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSeq8StepsWrapAfterEightTicks mirrors SPEC_FULL.md §8 scenario S3:
// after 8 clock ticks, cv has taken all eight values in order; the 9th
// tick returns to the first value.
func TestSeq8StepsWrapAfterEightTicks(t *testing.T) {
	m, err := NewSeq8(44100, nil)
	require.NoError(t, err)
	s := m.(*Seq8)
	values := [8]float32{220, 247, 277, 311, 349, 392, 440, 494}
	for i, v := range values {
		s.steps[i] = v
	}
	out := NewOutputMap(m.Ports())

	var seen []float32
	clockHigh := false
	for tick := 0; tick < 9; tick++ {
		// rising edge
		clockHigh = true
		m.Process(PortValues{"clock": boolToF32(clockHigh), "reset": 0}, out)
		seen = append(seen, out["cv"])
		// falling edge between ticks
		clockHigh = false
		m.Process(PortValues{"clock": boolToF32(clockHigh), "reset": 0}, out)
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, values[i], seen[i])
	}
	assert.Equal(t, values[0], seen[8])
}

func boolToF32(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
