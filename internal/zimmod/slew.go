package zimmod

// Slew is a rise/fall rate limiter with end-of-rise and end-of-cycle
// pulse outputs. Grounded on the teacher's portamento glide
// (voice.portamentoStep / portamentoFrames countdown in
// internal/fm/engine.go) for the per-sample bounded-step-toward-target
// mechanics, generalized to a standalone module with its own
// cycle-completion pulses rather than a pitch-only glide.
type Slew struct {
	sampleRate float64
	riseSec    float32
	fallSec    float32

	out        float64
	rising     bool
	firedEor   bool
	cycleFloor float64
	inCycle    bool
}

func NewSlew(sampleRateHz float64, args []float32) (Module, error) {
	s := &Slew{sampleRate: sampleRateHz, riseSec: 0.01, fallSec: 0.01}
	if len(args) > 0 {
		s.riseSec = args[0]
	}
	if len(args) > 1 {
		s.fallSec = args[1]
	}
	return s, nil
}

func (s *Slew) Ports() PortDescriptor {
	return PortDescriptor{
		Inputs: []PortSpec{
			{Name: "in", Kind: Audio},
			{Name: "rise", Kind: CV},
			{Name: "fall", Kind: CV},
		},
		Outputs: []PortSpec{
			{Name: "out", Kind: Audio},
			{Name: "eor", Kind: Gate},
			{Name: "eoc", Kind: Gate},
		},
	}
}

func (s *Slew) DefaultParam(name string) (float32, bool) {
	switch name {
	case "rise":
		return s.riseSec, true
	case "fall":
		return s.fallSec, true
	}
	return 0, false
}

func (s *Slew) Process(in PortValues, out PortValues) {
	target := float64(in["in"])
	riseSec := s.riseSec
	if v, ok := in["rise"]; ok {
		riseSec = v
	}
	fallSec := s.fallSec
	if v, ok := in["fall"]; ok {
		fallSec = v
	}

	var eor, eoc float32
	if target > s.out {
		if !s.inCycle {
			s.inCycle = true
			s.cycleFloor = s.out
			s.firedEor = false
		}
		maxStep := 1.0 / (float64(riseSec) * s.sampleRate)
		s.out += maxStep
		if s.out >= target {
			s.out = target
			if !s.firedEor {
				eor = 1
				s.firedEor = true
			}
		}
	} else if target < s.out {
		maxStep := 1.0 / (float64(fallSec) * s.sampleRate)
		s.out -= maxStep
		if s.out <= target {
			s.out = target
		}
	}

	if s.inCycle && s.firedEor && s.out <= s.cycleFloor {
		eoc = 1
		s.inCycle = false
	}

	out["out"] = float32(s.out)
	out["eor"] = eor
	out["eoc"] = eoc
}
