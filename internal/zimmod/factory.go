package zimmod

import "fmt"

// Factories maps a patch-language type name to its constructor. Grounded
// on the dispatch-by-tag style the teacher uses for program/algorithm
// selection (e.g. fm.Engine's decodeProgram), generalized here into an
// explicit type-name registry rather than a numeric code.
var Factories = map[string]Factory{
	"osc":        NewOsc,
	"lfo":        NewLfo,
	"filter":     NewFilter,
	"envelope":   NewEnvelope,
	"vca":        NewVca,
	"noise":      NewNoise,
	"mixer":      NewMixer,
	"stereomix":  NewStereomix,
	"samplehold": NewSampleHold,
	"seq8":       NewSeq8,
	"slew":       NewSlew,
	"clockdiv":   NewClockdiv,
	"switch":     NewSwitch,
	"mult":       NewMult,
	"manual":     NewManual,
}

// New constructs a module instance of the named type, or reports an
// unknown-type error for the graph builder to surface.
func New(typeName string, sampleRateHz float64, args []float32) (Module, error) {
	factory, ok := Factories[typeName]
	if !ok {
		return nil, fmt.Errorf("unknown module type %q", typeName)
	}
	return factory(sampleRateHz, args)
}

// NewOutputMap allocates the reusable per-instance output PortValues map
// that the runtime engine passes to Module.Process on every frame,
// pre-populated with a zero entry for each declared output so Process
// implementations never insert a new key at steady state.
func NewOutputMap(d PortDescriptor) PortValues {
	out := make(PortValues, len(d.Outputs))
	for _, p := range d.Outputs {
		if p.Kind == Stereo {
			out[p.Name+".left"] = 0
			out[p.Name+".right"] = 0
		} else {
			out[p.Name] = 0
		}
	}
	return out
}
