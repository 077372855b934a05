// Package zimmod implements the Zim-DSP module library: the typed,
// per-frame processing units that a compiled patch graph wires together.
//
// Every module satisfies the same small interface regardless of its port
// shape, mirroring the way zikichombo-plug couples a static shape
// descriptor (Processor.ChannelMode/NextFrames) with a per-call processing
// function in proc.go — here the "shape" is a PortDescriptor naming typed
// ports instead of a channel count, because the engine drives a single
// sample at a time rather than pulling fixed-size blocks.
package zimmod

// PortKind identifies the signal type carried on a port.
type PortKind int

const (
	Audio PortKind = iota
	CV
	Gate
	Stereo
)

func (k PortKind) String() string {
	switch k {
	case Audio:
		return "audio"
	case CV:
		return "cv"
	case Gate:
		return "gate"
	case Stereo:
		return "stereo"
	default:
		return "unknown"
	}
}

// Compatible reports whether a value produced on kind `from` may be
// written into a port of kind `to`. Audio and CV are numerically
// interchangeable (both are plain float32 signals); Gate is compatible
// with itself and with CV/Audio read as a 0/1 level; Stereo sinks accept
// mono sources (duplicated L=R) and mono sinks accept a Stereo source's
// left channel, per SPEC_FULL.md §4.5.
func (to PortKind) Compatible(from PortKind) bool {
	if to == from {
		return true
	}
	switch to {
	case Audio, CV, Gate:
		return from == Audio || from == CV || from == Gate || from == Stereo
	case Stereo:
		return from == Audio || from == CV || from == Gate
	}
	return false
}

// PortSpec describes one named port on a module.
type PortSpec struct {
	Name string
	Kind PortKind
}

// ParamSpec describes a named scalar parameter with its default value.
type ParamSpec struct {
	Name    string
	Default float32
}

// PortDescriptor is the static shape of a module: its named input ports,
// output ports, and parameters. It does not change once a module instance
// is created.
type PortDescriptor struct {
	Inputs  []PortSpec
	Outputs []PortSpec
	Params  []ParamSpec
}

// InputKind returns the kind of the named input port and whether it exists.
func (d PortDescriptor) InputKind(name string) (PortKind, bool) {
	for _, p := range d.Inputs {
		if p.Name == name {
			return p.Kind, true
		}
	}
	return 0, false
}

// OutputKind returns the kind of the named output port and whether it exists.
func (d PortDescriptor) OutputKind(name string) (PortKind, bool) {
	for _, p := range d.Outputs {
		if p.Name == name {
			return p.Kind, true
		}
	}
	return 0, false
}

// PortValues is a named bag of per-frame float32 samples passed into and
// out of Module.Process. A stereo port occupies two entries,
// name+".left" and name+".right", as laid out by NewOutputMap.
type PortValues map[string]float32

// Module is the uniform processing contract every DSP unit in the library
// implements. The audio-context engine calls Process exactly once per
// frame per module instance, in topological order.
//
// Process takes the pre-resolved input frame in in and writes this
// frame's outputs into out, a map the engine allocates once per module
// instance at patch-compile time and reuses on every call. out already
// holds an entry for every name in Ports().Outputs, so implementations
// only ever overwrite existing keys — never insert new ones — keeping
// the steady-state call allocation-free as SPEC_FULL.md §5 requires.
type Module interface {
	Process(in PortValues, out PortValues)

	// DefaultParam returns the module's built-in value for a named
	// parameter or input. The engine does not call it; it seeds unbound
	// parameters from Ports().Params defaults instead.
	DefaultParam(name string) (float32, bool)

	// Ports returns the module's static port/parameter shape.
	Ports() PortDescriptor
}

// Factory constructs a new Module instance for a given sample rate and
// patch-supplied constructor arguments (already parsed into float32s by
// internal/zimparse).
type Factory func(sampleRateHz float64, args []float32) (Module, error)
