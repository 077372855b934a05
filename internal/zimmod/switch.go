package zimmod

const switchMaxChannels = 8

// Switch is a sequential selector: each rising edge on clock advances to
// the next of N inputs, which is passed through to out along with the
// clock gate itself. Grounded on the shared gate-edge idiom and the
// teacher's round-robin voice-slot advance in stealVoice.
type Switch struct {
	channels int
	index    int
	edge     edgeDetector
	inNames  []string
}

func NewSwitch(sampleRateHz float64, args []float32) (Module, error) {
	s := &Switch{channels: 4}
	if len(args) > 0 {
		n := int(args[0])
		if n >= 1 && n <= switchMaxChannels {
			s.channels = n
		}
	}
	s.inNames = numberedNames("in", s.channels)
	return s, nil
}

func (s *Switch) Ports() PortDescriptor {
	d := PortDescriptor{
		Inputs: []PortSpec{{Name: "clock", Kind: Gate}},
		Outputs: []PortSpec{
			{Name: "out", Kind: Audio},
			{Name: "gate", Kind: Gate},
		},
	}
	for i := 0; i < s.channels; i++ {
		d.Inputs = append(d.Inputs, PortSpec{Name: s.inNames[i], Kind: Audio})
	}
	return d
}

func (s *Switch) DefaultParam(name string) (float32, bool) {
	return 0, false
}

func (s *Switch) Process(in PortValues, out PortValues) {
	clock := in["clock"]
	if s.edge.Rising(clock) {
		s.index = (s.index + 1) % s.channels
	}
	out["out"] = in[s.inNames[s.index]]
	out["gate"] = clock
}
