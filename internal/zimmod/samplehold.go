package zimmod

// SampleHold latches signal on each rising edge of gate. Grounded on the
// shared edgeDetector idiom (gate.go) used throughout the module
// library for rising-edge-triggered behavior.
type SampleHold struct {
	held float32
	edge edgeDetector
}

func NewSampleHold(sampleRateHz float64, args []float32) (Module, error) {
	return &SampleHold{}, nil
}

func (s *SampleHold) Ports() PortDescriptor {
	return PortDescriptor{
		Inputs: []PortSpec{
			{Name: "signal", Kind: Audio},
			{Name: "gate", Kind: Gate},
		},
		Outputs: []PortSpec{
			{Name: "out", Kind: Audio},
		},
	}
}

func (s *SampleHold) DefaultParam(name string) (float32, bool) {
	return 0, false
}

func (s *SampleHold) Process(in PortValues, out PortValues) {
	if s.edge.Rising(in["gate"]) {
		s.held = in["signal"]
	}
	out["out"] = s.held
}
