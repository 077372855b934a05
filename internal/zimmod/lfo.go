package zimmod

import "math"

// Lfo is the sub-audio counterpart to Osc: same phase-accumulator shape at
// a lower default rate, plus a gate output high for the first half-cycle.
// Grounded on internal/lfo.LFO's phase-accumulator-with-wraparound
// structure (the teacher's single shared modulation source), retargeted
// here into an addressable graph module that emits all four waveforms
// plus a gate simultaneously from one phase, with a cv-rate freq input,
// since the teacher's LFO picks one waveform at Set time and has no
// notion of a graph-visible gate output.
type Lfo struct {
	sampleRate float64
	phase      float64
	freq       float32
}

func NewLfo(sampleRateHz float64, args []float32) (Module, error) {
	l := &Lfo{sampleRate: sampleRateHz, freq: 2}
	// Two args are (waveform code, frequency), as the parser emits for
	// `lfo sine 2`; a single arg is the frequency. The waveform code is
	// not used, since every shape is always output.
	switch {
	case len(args) > 1:
		l.freq = args[1]
	case len(args) == 1:
		l.freq = args[0]
	}
	return l, nil
}

func (l *Lfo) Ports() PortDescriptor {
	return PortDescriptor{
		Inputs: []PortSpec{
			{Name: "freq", Kind: CV},
		},
		Outputs: []PortSpec{
			{Name: "sine", Kind: Audio},
			{Name: "saw", Kind: Audio},
			{Name: "square", Kind: Audio},
			{Name: "triangle", Kind: Audio},
			{Name: "gate", Kind: Gate},
		},
	}
}

func (l *Lfo) DefaultParam(name string) (float32, bool) {
	if name == "freq" {
		return l.freq, true
	}
	return 0, false
}

func (l *Lfo) Process(in PortValues, out PortValues) {
	freq := float64(l.freq)
	if v, ok := in["freq"]; ok {
		freq = float64(v)
	}
	phi := l.phase
	var gate float32
	if phi < 0.5 {
		gate = 1
	}
	out["sine"] = float32(math.Sin(2 * math.Pi * phi))
	out["saw"] = float32(2*phi - 1)
	out["square"] = sign32(math.Sin(2 * math.Pi * phi))
	out["triangle"] = float32(4*math.Abs(phi-0.5) - 1)
	out["gate"] = gate

	l.phase += freq / l.sampleRate
	for l.phase >= 1 {
		l.phase -= 1
	}
	for l.phase < 0 {
		l.phase += 1
	}
}
