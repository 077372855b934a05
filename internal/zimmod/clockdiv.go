package zimmod

// Clockdiv emits a rising edge for every N'th rising edge on its input,
// mirroring the input's pulse width. Grounded on the shared gate-edge
// idiom used throughout the module library.
type Clockdiv struct {
	n     int
	count int
	edge  edgeDetector
	high  bool
}

func NewClockdiv(sampleRateHz float64, args []float32) (Module, error) {
	c := &Clockdiv{n: 2}
	if len(args) > 0 && args[0] >= 1 {
		c.n = int(args[0])
	}
	return c, nil
}

func (c *Clockdiv) Ports() PortDescriptor {
	return PortDescriptor{
		Inputs:  []PortSpec{{Name: "clock", Kind: Gate}},
		Outputs: []PortSpec{{Name: "gate", Kind: Gate}},
	}
}

func (c *Clockdiv) DefaultParam(name string) (float32, bool) {
	return 0, false
}

func (c *Clockdiv) Process(in PortValues, out PortValues) {
	clock := in["clock"]
	if c.edge.Rising(clock) {
		c.count++
		if c.count >= c.n {
			c.count = 0
			c.high = true
		} else {
			c.high = false
		}
	} else if !isHigh(clock) {
		c.high = false
	}
	var gateOut float32
	if c.high {
		gateOut = 1
	}
	out["gate"] = gateOut
}
