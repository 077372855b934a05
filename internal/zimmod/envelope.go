package zimmod

import "math"

type envShape int

const (
	shapeLinear envShape = iota
	shapeExponential
	shapeLogarithmic
)

type envStage int

const (
	envIdle envStage = iota
	envAttackStage
	envDecayStage
)

// Envelope is a two-stage attack-decay generator: a rising edge on gate
// always restarts at Attack regardless of stage, and falling gate does
// not abort the cycle (AD, not ADSR). Grounded on internal/fm/engine.go's
// envAttack/envDecay/envSustain/envRelease state machine, narrowed to the
// spec's two-stage law; the teacher's envelope advances env by a fixed
// per-sample step (implicit multiplicative decay), while this module
// tracks elapsed progress in [0,1] and applies an explicit curve shape —
// an intentional redesign called for by SPEC_FULL.md's REDESIGN FLAGS.
type Envelope struct {
	sampleRate float64
	attackSec  float32
	decaySec   float32
	attackShp  float32
	decayShp   float32

	stage    envStage
	progress float64
	edge     edgeDetector
}

func NewEnvelope(sampleRateHz float64, args []float32) (Module, error) {
	e := &Envelope{sampleRate: sampleRateHz, attackSec: 0.01, decaySec: 0.1}
	if len(args) > 0 {
		e.attackSec = args[0]
	}
	if len(args) > 1 {
		e.decaySec = args[1]
	}
	return e, nil
}

func (e *Envelope) Ports() PortDescriptor {
	return PortDescriptor{
		Inputs: []PortSpec{
			{Name: "gate", Kind: Gate},
		},
		Outputs: []PortSpec{
			{Name: "out", Kind: Audio},
		},
		Params: []ParamSpec{
			{Name: "attack_shape", Default: 0},
			{Name: "decay_shape", Default: 0},
		},
	}
}

func (e *Envelope) DefaultParam(name string) (float32, bool) {
	switch name {
	case "attack_shape":
		return e.attackShp, true
	case "decay_shape":
		return e.decayShp, true
	}
	return 0, false
}

func (e *Envelope) Process(in PortValues, out PortValues) {
	gate := in["gate"]
	if e.edge.Rising(gate) {
		e.stage = envAttackStage
		e.progress = 0
	}

	attackShp := e.attackShp
	if v, ok := in["attack_shape"]; ok {
		attackShp = v
	}
	decayShp := e.decayShp
	if v, ok := in["decay_shape"]; ok {
		decayShp = v
	}

	dt := 1.0 / e.sampleRate
	var v float64
	switch e.stage {
	case envIdle:
		v = 0
	case envAttackStage:
		dur := float64(e.attackSec)
		if dur <= 0 {
			dur = 1.0 / e.sampleRate
		}
		if e.progress >= 1 {
			e.progress = 0
			e.stage = envDecayStage
			v = 1
		} else {
			v = applyShape(e.progress, envShape(attackShp))
			e.progress += dt / dur
		}
	case envDecayStage:
		dur := float64(e.decaySec)
		if dur <= 0 {
			dur = 1.0 / e.sampleRate
		}
		e.progress += dt / dur
		if e.progress >= 1 {
			e.progress = 0
			e.stage = envIdle
			v = 0
		} else {
			v = 1 - applyShape(e.progress, envShape(decayShp))
		}
	}
	out["out"] = float32(v)
}

func applyShape(progress float64, shape envShape) float64 {
	switch shape {
	case shapeExponential:
		return math.Pow(progress, 2)
	case shapeLogarithmic:
		return math.Sqrt(progress)
	default:
		return progress
	}
}
