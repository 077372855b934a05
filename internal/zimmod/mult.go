package zimmod

const multMaxOutputs = 8

// Mult is pure fan-out: every output is an exact copy of input. Grounded
// on zikichombo-plug/packet.go's cmap copy-to-multiple-destinations
// idiom.
type Mult struct {
	outputs  int
	outNames []string
}

func NewMult(sampleRateHz float64, args []float32) (Module, error) {
	m := &Mult{outputs: 4}
	if len(args) > 0 {
		n := int(args[0])
		if n >= 1 && n <= multMaxOutputs {
			m.outputs = n
		}
	}
	m.outNames = numberedNames("out", m.outputs)
	return m, nil
}

func (m *Mult) Ports() PortDescriptor {
	d := PortDescriptor{
		Inputs: []PortSpec{{Name: "input", Kind: Audio}},
	}
	for i := 0; i < m.outputs; i++ {
		d.Outputs = append(d.Outputs, PortSpec{Name: m.outNames[i], Kind: Audio})
	}
	return d
}

func (m *Mult) DefaultParam(name string) (float32, bool) {
	return 0, false
}

func (m *Mult) Process(in PortValues, out PortValues) {
	v := in["input"]
	for i := 0; i < m.outputs; i++ {
		out[m.outNames[i]] = v
	}
}
