// Package zimrt is the audio-context runtime: it compiles a
// *zimgraph.Patch into a flat, allocation-free evaluation program and
// drives it from a pull callback, the same dst []float32 shape as the
// teacher's audio.SampleSource (internal/audio/stream.go) — Engine.Process,
// a one-line alias of Engine.Fill, lets the engine plug into the
// teacher's ebiten-backed player.
package zimrt

import (
	"math"

	"github.com/navicore/zimdsp/internal/zimgraph"
	"github.com/navicore/zimdsp/internal/zimmod"
)

// inputUpdate refreshes one entry of a module's persistent input map
// from another module's cached output, once per frame. Grounded on
// SPEC_FULL.md §4.3 step 1a: "resolve the bound source endpoint's cached
// output... apply scale·v+offset".
type inputUpdate struct {
	key           string
	sourceOutputs zimmod.PortValues
	sourceKey     string
	scale, offset float32
}

// runtimeModule is one module instance's scratch state for the frame
// loop: its persistent input map (literal entries set once, connection
// entries refreshed every frame) and its pre-resolved output map.
type runtimeModule struct {
	name    string
	module  zimmod.Module
	in      zimmod.PortValues
	out     zimmod.PortValues
	updates []inputUpdate

	nanLogged bool
}

// outputTap resolves the compiled patch's output routing to a pair of
// concrete (map, key) reads, avoiding any per-frame branching on the
// routing mode beyond the one switch at Fill time.
type outputTap struct {
	mode                    zimgraph.OutputMode
	leftOut, rightOut       zimmod.PortValues
	leftKey, rightKey       string
}

// program is the compiled, allocation-free form of a zimgraph.Patch:
// modules in evaluation order plus the resolved output tap. Building a
// program allocates; the engine builds one when it applies a LoadPatch
// command, which happens inside Engine.Fill on the audio thread, so the
// frame that applies a patch load allocates. Running a built program
// (evalFrame) does not allocate.
type program struct {
	modules []*runtimeModule
	byName  map[string]*runtimeModule
	output  outputTap
}

// compile turns a validated *zimgraph.Patch into a program. Grounded on
// the teacher's Player.Play rebuilding engine state wholesale on every
// patch swap (player.go) rather than mutating a live graph in place.
func compile(patch *zimgraph.Patch) *program {
	byInstance := make(map[*zimgraph.ModuleInstance]*runtimeModule, len(patch.Modules))
	modules := make([]*runtimeModule, 0, len(patch.EvaluationOrder))

	for _, inst := range patch.Modules {
		rm := &runtimeModule{
			name:   inst.Name,
			module: inst.Module,
			in:     make(zimmod.PortValues, len(inst.Inputs)),
			out:    inst.Output,
		}
		byInstance[inst] = rm
	}

	for _, inst := range patch.Modules {
		rm := byInstance[inst]

		// Pre-seed every declared parameter (not every plain signal
		// input) with its built-in default, so a later SetParam command
		// can always write into an already-existing map entry instead of
		// inserting a new key on the audio thread. Signal ports with no
		// Param entry are deliberately left absent when unbound, so
		// modules can still distinguish "unbound" from "bound to zero"
		// via comma-ok (vca.cv, filter.cutoff, etc).
		for _, p := range inst.Ports.Params {
			rm.in[p.Name] = p.Default
		}

		for port, bound := range inst.Inputs {
			if bound.IsLiteral {
				rm.in[port] = bound.Literal
				continue
			}
			srcRM := byInstance[bound.Source.Instance]
			rm.in[port] = 0
			rm.updates = append(rm.updates, inputUpdate{
				key:           port,
				sourceOutputs: srcRM.out,
				sourceKey:     bound.Source.Port,
				scale:         bound.Scale,
				offset:        bound.Offset,
			})
		}
	}

	byName := make(map[string]*runtimeModule, len(patch.Modules))
	for _, inst := range patch.EvaluationOrder {
		rm := byInstance[inst]
		modules = append(modules, rm)
		byName[inst.Name] = rm
	}

	tap := outputTap{mode: patch.Output.Mode}
	if patch.Output.Left.Instance != nil {
		tap.leftOut = byInstance[patch.Output.Left.Instance].out
		tap.leftKey = patch.Output.Left.Port
	}
	if patch.Output.Right.Instance != nil {
		tap.rightOut = byInstance[patch.Output.Right.Instance].out
		tap.rightKey = patch.Output.Right.Port
	}

	return &program{modules: modules, byName: byName, output: tap}
}

// evalFrame advances every module one sample and returns the routed
// stereo output. onNaN, if non-nil, is called at most once per module
// instance for the lifetime of the program — it must not allocate or
// block; the engine wires it to a non-blocking diagnostics send, since
// the audio context itself never logs (SPEC_FULL.md §2 AMBIENT STACK).
func (p *program) evalFrame(onNaN func(moduleName string)) (left, right float32) {
	for _, rm := range p.modules {
		for _, u := range rm.updates {
			rm.in[u.key] = u.sourceOutputs[u.sourceKey]*u.scale + u.offset
		}
		rm.module.Process(rm.in, rm.out)

		for k, v := range rm.out {
			if !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0) {
				continue
			}
			rm.out[k] = 0
			if !rm.nanLogged {
				rm.nanLogged = true
				if onNaN != nil {
					onNaN(rm.name)
				}
			}
		}
	}

	switch p.output.mode {
	case zimgraph.Mono:
		v := p.output.leftOut[p.output.leftKey]
		return v, v
	case zimgraph.Stereo:
		return p.output.leftOut[p.output.leftKey], p.output.rightOut[p.output.rightKey]
	case zimgraph.LeftOnly:
		v := p.output.leftOut[p.output.leftKey]
		return v, v
	default:
		return 0, 0
	}
}
