package zimmod

// Vca is a voltage-controlled amplifier: audio times a controlling cv, or
// a constant default gain when cv is unconnected. Grounded on the
// teacher's per-voice velocity-to-gain multiply in applyAmpControls
// (internal/fm engine note-on velocity scaling), generalized here to a
// graph-visible amplitude multiplier module instead of an internal voice
// field.
type Vca struct {
	defaultGain float32
}

func NewVca(sampleRateHz float64, args []float32) (Module, error) {
	v := &Vca{defaultGain: 1}
	if len(args) > 0 {
		v.defaultGain = args[0]
	}
	return v, nil
}

func (v *Vca) Ports() PortDescriptor {
	return PortDescriptor{
		Inputs: []PortSpec{
			{Name: "audio", Kind: Audio},
			{Name: "cv", Kind: CV},
		},
		Outputs: []PortSpec{
			{Name: "out", Kind: Audio},
		},
	}
}

func (v *Vca) DefaultParam(name string) (float32, bool) {
	if name == "default_gain" {
		return v.defaultGain, true
	}
	return 0, false
}

func (v *Vca) Process(in PortValues, out PortValues) {
	gain := v.defaultGain
	if cv, ok := in["cv"]; ok {
		gain = cv
	}
	out["out"] = in["audio"] * gain
}
