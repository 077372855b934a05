package zimmod

import "math"

const stereomixMaxChannels = 8

// Stereomix pans and sums N mono channels to a stereo bus with an
// equal-power law. Grounded on internal/effects/eq5band.go's summing
// idiom generalized to per-channel gain, and on the same file's
// one-pole-coefficient-from-time-constant computation, reused here to
// smooth per-channel pan at a ≈5ms time constant — resolving
// SPEC_FULL.md's open question about audio-rate pan zipper noise.
type Stereomix struct {
	sampleRate float64
	channels   int
	levels     [stereomixMaxChannels]float32
	pans       [stereomixMaxChannels]float32
	smoothed   [stereomixMaxChannels]float64
	alpha      float64

	inNames  []string
	panNames []string
	lvlNames []string
}

func NewStereomix(sampleRateHz float64, args []float32) (Module, error) {
	s := &Stereomix{sampleRate: sampleRateHz, channels: 4}
	if len(args) > 0 {
		n := int(args[0])
		if n >= 1 && n <= stereomixMaxChannels {
			s.channels = n
		}
	}
	for i := 0; i < s.channels; i++ {
		s.levels[i] = 1
	}
	timeConstant := 0.005
	dt := 1.0 / sampleRateHz
	s.alpha = dt / (timeConstant + dt)
	s.inNames = numberedNames("in", s.channels)
	s.panNames = numberedNames("pan", s.channels)
	s.lvlNames = numberedNames("level", s.channels)
	return s, nil
}

func (s *Stereomix) Ports() PortDescriptor {
	d := PortDescriptor{}
	for i := 0; i < s.channels; i++ {
		d.Inputs = append(d.Inputs, PortSpec{Name: s.inNames[i], Kind: Audio})
		d.Inputs = append(d.Inputs, PortSpec{Name: s.panNames[i], Kind: CV})
		d.Inputs = append(d.Inputs, PortSpec{Name: s.lvlNames[i], Kind: CV})
		d.Params = append(d.Params, ParamSpec{Name: s.panNames[i], Default: 0})
		d.Params = append(d.Params, ParamSpec{Name: s.lvlNames[i], Default: 1})
	}
	d.Outputs = []PortSpec{
		{Name: "left", Kind: Audio},
		{Name: "right", Kind: Audio},
	}
	return d
}

func (s *Stereomix) DefaultParam(name string) (float32, bool) {
	for i := 0; i < s.channels; i++ {
		if name == s.panNames[i] {
			return s.pans[i], true
		}
		if name == s.lvlNames[i] {
			return s.levels[i], true
		}
	}
	return 0, false
}

func (s *Stereomix) Process(in PortValues, out PortValues) {
	var left, right float64
	for i := 0; i < s.channels; i++ {
		pan := s.pans[i]
		if v, ok := in[s.panNames[i]]; ok {
			pan = v
		}
		level := s.levels[i]
		if v, ok := in[s.lvlNames[i]]; ok {
			level = v
		}
		s.smoothed[i] += s.alpha * (float64(pan) - s.smoothed[i])

		angle := (s.smoothed[i] + 1) * math.Pi / 4
		lg := math.Cos(angle)
		rg := math.Sin(angle)

		sig := float64(in[s.inNames[i]]) * float64(level)
		left += sig * lg
		right += sig * rg
	}
	out["left"] = float32(left)
	out["right"] = float32(right)
}
