package zimmod

import "math"

// Osc is a phase-accumulator oscillator exposing all four standard
// waveforms simultaneously, so a patch can tap whichever shape it needs
// off the same instance. Grounded on internal/fm/engine.go's
// operator.phase advance (`phase += freq/sr`, wrapped at 2π) narrowed
// from FM operator phase math to a free-running audio-rate source; the
// saw/square/triangle expressions follow Lfo's (lfo.go) phase-to-shape
// mapping at audio rate instead of sub-audio rate.
type Osc struct {
	sampleRate float64
	phase      float64
	freq       float32
}

func NewOsc(sampleRateHz float64, args []float32) (Module, error) {
	o := &Osc{sampleRate: sampleRateHz, freq: 440}
	// Two args are (waveform code, frequency), as the parser emits for
	// `osc sine 440`; a single arg is the frequency. The waveform code is
	// not used, since every shape is always output.
	switch {
	case len(args) > 1:
		o.freq = args[1]
	case len(args) == 1:
		o.freq = args[0]
	}
	return o, nil
}

func (o *Osc) Ports() PortDescriptor {
	return PortDescriptor{
		Inputs: []PortSpec{
			{Name: "freq", Kind: CV},
		},
		Outputs: []PortSpec{
			{Name: "sine", Kind: Audio},
			{Name: "saw", Kind: Audio},
			{Name: "square", Kind: Audio},
			{Name: "triangle", Kind: Audio},
		},
	}
}

func (o *Osc) DefaultParam(name string) (float32, bool) {
	if name == "freq" {
		return o.freq, true
	}
	return 0, false
}

func (o *Osc) Process(in PortValues, out PortValues) {
	freq := float64(o.freq)
	if v, ok := in["freq"]; ok {
		freq = float64(v)
	}
	phi := o.phase
	out["sine"] = float32(math.Sin(2 * math.Pi * phi))
	out["saw"] = float32(2*phi - 1)
	out["square"] = sign32(math.Sin(2 * math.Pi * phi))
	out["triangle"] = float32(4*math.Abs(phi-0.5) - 1)

	o.phase += freq / o.sampleRate
	for o.phase >= 1 {
		o.phase -= 1
	}
	for o.phase < 0 {
		o.phase += 1
	}
}

func sign32(v float64) float32 {
	if v >= 0 {
		return 1
	}
	return -1
}
