package zimmod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryConstructsEveryRegisteredType(t *testing.T) {
	for name, factory := range Factories {
		m, err := factory(44100, nil)
		require.NoErrorf(t, err, "type %q", name)
		require.NotNilf(t, m, "type %q", name)
		out := NewOutputMap(m.Ports())
		assert.NotPanicsf(t, func() {
			m.Process(PortValues{}, out)
		}, "type %q", name)
	}
}

func TestNewUnknownType(t *testing.T) {
	_, err := New("nonexistent", 44100, nil)
	assert.Error(t, err)
}

func TestNewOutputMapExpandsStereoPorts(t *testing.T) {
	d := PortDescriptor{Outputs: []PortSpec{{Name: "out", Kind: Stereo}}}
	out := NewOutputMap(d)
	_, hasLeft := out["out.left"]
	_, hasRight := out["out.right"]
	assert.True(t, hasLeft)
	assert.True(t, hasRight)
}
