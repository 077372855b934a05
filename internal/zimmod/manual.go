package zimmod

import "sync/atomic"

// Manual is a gate source driven entirely by external PressGate/
// ReleaseGate commands rather than an input port. Grounded on the
// teacher's Player.Pause/Resume external control-surface methods
// (player.go) — non-real-time calls mutating state the audio context
// later reads — and on EQ5Band's atomic.Uint32 bit-cast-float32 pattern
// for a lock-free level the control context can flip without a mutex.
type Manual struct {
	level atomic.Uint32
}

func NewManual(sampleRateHz float64, args []float32) (Module, error) {
	return &Manual{}, nil
}

func (m *Manual) Ports() PortDescriptor {
	return PortDescriptor{
		Outputs: []PortSpec{{Name: "gate", Kind: Gate}},
	}
}

func (m *Manual) DefaultParam(name string) (float32, bool) {
	return 0, false
}

func (m *Manual) Process(in PortValues, out PortValues) {
	var v float32
	if m.level.Load() != 0 {
		v = 1
	}
	out["gate"] = v
}

// Press is called from the control context in response to a PressGate
// command.
func (m *Manual) Press() {
	m.level.Store(1)
}

// Release is called from the control context in response to a
// ReleaseGate command.
func (m *Manual) Release() {
	m.level.Store(0)
}
