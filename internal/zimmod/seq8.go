package zimmod

import "fmt"

const seq8Steps = 8

// Seq8 is an 8-step CV/gate sequencer. Rising edges on clock advance the
// index modulo length; a rising edge on reset snaps the index to 0 and
// forces the next clock edge to emit step 1. Grounded on the teacher's
// per-track runtimeState parameter bag shape (many named scalar knobs on
// one struct, defaulted in a constructor) for the step/gate-length/
// enable-flag parameter set, and on the shared gate-edge idiom for clock
// and reset handling.
type Seq8 struct {
	sampleRate float64
	steps      [seq8Steps]float32
	gates      [seq8Steps]float32
	length     float32
	gateLength float32

	index         int
	forceFirst    bool
	samplesInStep float64
	lastStepLen   float64

	clockEdge edgeDetector
	resetEdge edgeDetector

	stepNames []string
	gateNames []string
}

func NewSeq8(sampleRateHz float64, args []float32) (Module, error) {
	s := &Seq8{sampleRate: sampleRateHz, length: seq8Steps, gateLength: 0.5}
	for i := range s.gates {
		s.gates[i] = 1
	}
	s.lastStepLen = sampleRateHz * 0.5 // arbitrary guess until a clock edge measures one
	s.forceFirst = true                // first clock edge establishes step 1 rather than advancing past it
	s.stepNames = numberedNames("step", seq8Steps)
	s.gateNames = numberedNames("gate", seq8Steps)
	return s, nil
}

func (s *Seq8) Ports() PortDescriptor {
	d := PortDescriptor{
		Inputs: []PortSpec{
			{Name: "clock", Kind: Gate},
			{Name: "reset", Kind: Gate},
		},
		Outputs: []PortSpec{
			{Name: "cv", Kind: CV},
			{Name: "gate", Kind: Gate},
		},
		Params: []ParamSpec{
			{Name: "length", Default: seq8Steps},
			{Name: "gate_length", Default: 0.5},
		},
	}
	for i := 1; i <= seq8Steps; i++ {
		d.Params = append(d.Params, ParamSpec{Name: fmt.Sprintf("step%d", i), Default: 0})
		d.Params = append(d.Params, ParamSpec{Name: fmt.Sprintf("gate%d", i), Default: 1})
	}
	return d
}

func (s *Seq8) DefaultParam(name string) (float32, bool) {
	switch name {
	case "length":
		return s.length, true
	case "gate_length":
		return s.gateLength, true
	}
	for i := 0; i < seq8Steps; i++ {
		if name == fmt.Sprintf("step%d", i+1) {
			return s.steps[i], true
		}
		if name == fmt.Sprintf("gate%d", i+1) {
			return s.gates[i], true
		}
	}
	return 0, false
}

func (s *Seq8) Process(in PortValues, out PortValues) {
	lengthF := s.length
	if v, ok := in["length"]; ok {
		lengthF = v
	}
	length := int(lengthF)
	if length < 1 {
		length = 1
	}
	if length > seq8Steps {
		length = seq8Steps
	}

	if s.resetEdge.Rising(in["reset"]) {
		s.index = 0
		s.forceFirst = true
		s.samplesInStep = 0
	}

	if s.clockEdge.Rising(in["clock"]) {
		if s.samplesInStep > 0 {
			s.lastStepLen = s.samplesInStep
		}
		if s.forceFirst {
			s.index = 0
			s.forceFirst = false
		} else {
			s.index = (s.index + 1) % length
		}
		s.samplesInStep = 0
	} else {
		s.samplesInStep++
	}

	cv := s.steps[s.index]
	if v, ok := in[s.stepNames[s.index]]; ok {
		cv = v
	}
	gateEnable := s.gates[s.index]
	if v, ok := in[s.gateNames[s.index]]; ok {
		gateEnable = v
	}
	enabled := gateEnable >= gateThreshold
	gateLen := s.gateLength
	if v, ok := in["gate_length"]; ok {
		gateLen = v
	}
	if gateLen <= 0 {
		gateLen = 0.001
	}
	if gateLen > 1 {
		gateLen = 1
	}

	var gateOut float32
	if enabled && s.samplesInStep < s.lastStepLen*float64(gateLen) {
		gateOut = 1
	}
	out["cv"] = cv
	out["gate"] = gateOut
}
