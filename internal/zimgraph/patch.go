// Package zimgraph turns a parsed command list into a compiled, typed
// module graph: it instantiates modules via zimmod's factory registry,
// resolves and validates every port reference, detects cycles, computes
// a deterministic topological evaluation order, and binds the output
// bus. Grounded on zikichombo-plug's Processor/shape-descriptor split
// (proc.go, io.go) generalized from a fixed channel-count shape to a
// named, typed port descriptor.
package zimgraph

import "github.com/navicore/zimdsp/internal/zimmod"

// OutputRouting names how the compiled patch's output bus is wired to
// module outputs. Exactly one of the three shapes below is active.
type OutputRouting struct {
	Mode OutputMode
	Left Endpoint
	// Right is unused in Mono and LeftOnly mode.
	Right Endpoint
}

type OutputMode int

const (
	NoOutput OutputMode = iota
	Mono
	Stereo
	LeftOnly
)

// Endpoint is a resolved reference to one module output port.
type Endpoint struct {
	Instance *ModuleInstance
	Port     string
}

// BoundInput is a resolved, affine-annotated connection into one input
// port or parameter slot.
type BoundInput struct {
	Source Endpoint
	Scale  float32
	Offset float32

	// IsLiteral connections have no Source; Literal is used directly.
	IsLiteral bool
	Literal   float32
}

// ModuleInstance wraps a zimmod.Module with its declaration identity and
// resolved port bindings, generalizing the teacher's single fixed
// VoiceEngine into a per-instance capability table (per SPEC_FULL.md §3).
type ModuleInstance struct {
	Name   string
	Type   string
	LineNo int

	Module zimmod.Module
	Ports  zimmod.PortDescriptor

	// Output is the reusable per-frame output map passed to
	// Module.Process every call (see zimmod.NewOutputMap).
	Output zimmod.PortValues

	// Inputs maps input-port or parameter name to its resolved binding.
	// A name absent here is unbound: the engine seeds each declared
	// parameter with its ParamSpec default and leaves other unbound input
	// ports out of the module's input map, where the module applies its
	// own default or reads zero.
	Inputs map[string]BoundInput
}

// Patch is the immutable compiled artifact returned by Build: an ordered
// module list, its topological evaluation order, and the output
// routing. Once built a Patch is read-only and safe to share between
// the control context and the audio engine across a pointer swap.
type Patch struct {
	Modules         []*ModuleInstance
	EvaluationOrder []*ModuleInstance
	Output          OutputRouting

	// ByName indexes Modules for SetParam/PressGate/ReleaseGate lookups.
	ByName map[string]*ModuleInstance
}
