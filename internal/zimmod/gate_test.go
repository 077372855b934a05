package zimmod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// TestEdgeDetectorCountsTransitions verifies property 4 from
// SPEC_FULL.md §8: the number of rising edges recognised equals the
// number of <0.5 → ≥0.5 transitions in the input sequence.
func TestEdgeDetectorCountsTransitions(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seq := rapid.SliceOfN(rapid.Float32Range(-2, 2), 1, 500).Draw(rt, "seq")

		var want int
		prev := float32(0)
		for _, v := range seq {
			if prev < gateThreshold && v >= gateThreshold {
				want++
			}
			prev = v
		}

		var d edgeDetector
		var got int
		for _, v := range seq {
			if d.Rising(v) {
				got++
			}
		}
		assert.Equal(rt, want, got)
	})
}

func TestEdgeDetectorSimpleTransition(t *testing.T) {
	var d edgeDetector
	assert.False(t, d.Rising(0))
	assert.True(t, d.Rising(0.5))
	assert.False(t, d.Rising(0.9))
	assert.False(t, d.Rising(0.1))
	assert.True(t, d.Rising(0.5))
}
