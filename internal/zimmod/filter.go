package zimmod

import "math"

// Filter is a single-stage state-variable (Chamberlin/TPT) filter with
// simultaneous lowpass/highpass/bandpass outputs. Grounded on the
// topology-preserving-transform discussion in the retrieved Moog ladder
// filter (CWBudde-algo-dsp dsp-filter-moog-moog.go's VariantZDF), adapted
// down from a 4-pole ladder to the single-stage SVF this module needs.
type Filter struct {
	sampleRate float64
	cutoff     float32
	res        float32
	lp, bp     float64
}

func NewFilter(sampleRateHz float64, args []float32) (Module, error) {
	f := &Filter{sampleRate: sampleRateHz, cutoff: 1000, res: 0.3}
	if len(args) > 0 {
		f.cutoff = args[0]
	}
	if len(args) > 1 {
		f.res = args[1]
	}
	return f, nil
}

func (f *Filter) Ports() PortDescriptor {
	return PortDescriptor{
		Inputs: []PortSpec{
			{Name: "audio", Kind: Audio},
			{Name: "cutoff", Kind: CV},
			{Name: "res", Kind: CV},
		},
		Outputs: []PortSpec{
			{Name: "lp", Kind: Audio},
			{Name: "hp", Kind: Audio},
			{Name: "bp", Kind: Audio},
		},
	}
}

func (f *Filter) DefaultParam(name string) (float32, bool) {
	switch name {
	case "cutoff":
		return f.cutoff, true
	case "res":
		return f.res, true
	}
	return 0, false
}

func (f *Filter) Process(in PortValues, out PortValues) {
	audio := float64(in["audio"])
	cutoff := float64(f.cutoff)
	if v, ok := in["cutoff"]; ok {
		cutoff = float64(v)
	}
	res := float64(f.res)
	if v, ok := in["res"]; ok {
		res = float64(v)
	}
	lo := 20.0
	hi := f.sampleRate/2 - 100
	if cutoff < lo {
		cutoff = lo
	}
	if cutoff > hi {
		cutoff = hi
	}
	if res < 0 {
		res = 0
	}
	if res > 1 {
		res = 1
	}

	g := math.Tan(math.Pi * cutoff / f.sampleRate)
	k := 2 - 2*res

	f.lp += g * f.bp
	hp := audio - f.lp - k*f.bp
	f.bp += g * hp

	out["lp"] = float32(f.lp)
	out["hp"] = float32(hp)
	out["bp"] = float32(f.bp)
}
