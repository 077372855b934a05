package zimmod

import "math/rand"

// Noise produces five colors from one seeded source. Grounded on
// internal/fm/engine.go's per-instance math/rand usage (seeded per
// instance, mirroring the teacher's nextID-based per-voice bookkeeping)
// for the white source; pink via Voss-McCartney summation across five
// octave bands, a standard construction supplementing the distilled
// spec; brown via a leaky integrator with the one-pole coefficient shape
// from internal/effects/eq5band.go's crossover filters; blue/violet as
// first differences of white/blue.
type Noise struct {
	rng       *rand.Rand
	voss      [5]float64
	vossIdx   uint64
	brown     float64
	prevBlue  float64
	prevWhite float64
}

var noiseInstanceCount int

func NewNoise(sampleRateHz float64, args []float32) (Module, error) {
	seed := int64(noiseInstanceCount + 1)
	noiseInstanceCount++
	return &Noise{rng: rand.New(rand.NewSource(seed))}, nil
}

func (n *Noise) Ports() PortDescriptor {
	return PortDescriptor{
		Outputs: []PortSpec{
			{Name: "white", Kind: Audio},
			{Name: "pink", Kind: Audio},
			{Name: "brown", Kind: Audio},
			{Name: "blue", Kind: Audio},
			{Name: "violet", Kind: Audio},
		},
	}
}

func (n *Noise) DefaultParam(name string) (float32, bool) {
	return 0, false
}

func (n *Noise) Process(in PortValues, out PortValues) {
	white := n.rng.Float64()*2 - 1

	n.vossIdx++
	pink := 0.0
	for i := range n.voss {
		if n.vossIdx&(1<<uint(i)) == 0 {
			continue
		}
		n.voss[i] = n.rng.Float64()*2 - 1
	}
	for _, v := range n.voss {
		pink += v
	}
	pink /= float64(len(n.voss))

	n.brown = n.brown*0.99 + white*0.01
	if n.brown > 1 {
		n.brown = 1
	}
	if n.brown < -1 {
		n.brown = -1
	}

	blue := white - n.prevWhite
	violet := blue - n.prevBlue

	n.prevWhite = white
	n.prevBlue = blue

	out["white"] = float32(white)
	out["pink"] = float32(pink)
	out["brown"] = float32(n.brown)
	out["blue"] = float32(clampUnit(blue))
	out["violet"] = float32(clampUnit(violet))
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
