package zimmod

const mixerChannels = 8

// Mixer is a mono summing bus: out = Σ inᵢ · levelᵢ. Grounded on
// internal/effects/effects.go's Chain/Effector summing idiom and the
// retrieval pack's mixer-summing shape (N-in, gain-per-input, accumulate).
type Mixer struct {
	levels   [mixerChannels]float32
	inNames  []string
	lvlNames []string
}

func NewMixer(sampleRateHz float64, args []float32) (Module, error) {
	m := &Mixer{
		inNames:  numberedNames("in", mixerChannels),
		lvlNames: numberedNames("level", mixerChannels),
	}
	for i := range m.levels {
		m.levels[i] = 1
	}
	return m, nil
}

func (m *Mixer) Ports() PortDescriptor {
	d := PortDescriptor{}
	for i := 0; i < mixerChannels; i++ {
		d.Inputs = append(d.Inputs, PortSpec{Name: m.inNames[i], Kind: Audio})
		d.Inputs = append(d.Inputs, PortSpec{Name: m.lvlNames[i], Kind: CV})
		d.Params = append(d.Params, ParamSpec{Name: m.lvlNames[i], Default: 1})
	}
	d.Outputs = []PortSpec{{Name: "out", Kind: Audio}}
	return d
}

func (m *Mixer) DefaultParam(name string) (float32, bool) {
	for i := 0; i < mixerChannels; i++ {
		if name == m.lvlNames[i] {
			return m.levels[i], true
		}
	}
	return 0, false
}

func (m *Mixer) Process(in PortValues, out PortValues) {
	var sum float32
	for i := 0; i < mixerChannels; i++ {
		level := m.levels[i]
		if v, ok := in[m.lvlNames[i]]; ok {
			level = v
		}
		sum += in[m.inNames[i]] * level
	}
	out["out"] = sum
}
