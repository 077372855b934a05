package zimgraph

import (
	"github.com/navicore/zimdsp/internal/zimmod"
	"github.com/navicore/zimdsp/internal/zimparse"
)

// Build consumes the parser's ordered command list and produces a
// compiled Patch, or the first structured error encountered. Grounded on
// the builder described in SPEC_FULL.md §4.2, itself a generalization of
// the teacher's sequencer/dispatch step into a full graph compiler.
//
// DirectiveCmd (`start`/`stop`) lines are not part of graph compilation;
// they are the REPL/runtime's concern and are skipped here.
func Build(cmds []zimparse.Command, sampleRateHz float64) (*Patch, error) {
	b := &builder{
		sampleRateHz: sampleRateHz,
		byName:       map[string]*ModuleInstance{},
	}
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case zimparse.ModuleDecl:
			if err := b.declareModule(c); err != nil {
				return nil, err
			}
		case zimparse.ConnectCmd:
			if err := b.resolveConnect(c); err != nil {
				return nil, err
			}
		case zimparse.DirectiveCmd:
			// handled by the runtime control surface, not compilation.
		}
	}

	order, err := b.topoSort()
	if err != nil {
		return nil, err
	}

	return &Patch{
		Modules:         b.modules,
		EvaluationOrder: order,
		Output:          b.output,
		ByName:          b.byName,
	}, nil
}

type builder struct {
	sampleRateHz float64

	modules []*ModuleInstance
	byName  map[string]*ModuleInstance
	index   map[*ModuleInstance]int

	// outEdges[i] lists indices of modules that depend on modules[i]'s
	// output (i.e. modules[i] must evaluate first).
	outEdges [][]int

	output       OutputRouting
	outputLineNo int
	outputSet    bool
}

func (b *builder) declareModule(c zimparse.ModuleDecl) error {
	if first, ok := b.byName[c.Name]; ok {
		return &DuplicateModuleError{LineNo: c.LineNo, Name: c.Name, FirstDef: first.LineNo}
	}
	mod, err := zimmod.New(c.Type, b.sampleRateHz, c.Args)
	if err != nil {
		return &ArityError{LineNo: c.LineNo, Module: c.Name, Reason: err.Error()}
	}
	inst := &ModuleInstance{
		Name:   c.Name,
		Type:   c.Type,
		LineNo: c.LineNo,
		Module: mod,
		Ports:  mod.Ports(),
		Output: zimmod.NewOutputMap(mod.Ports()),
		Inputs: map[string]BoundInput{},
	}
	if b.index == nil {
		b.index = map[*ModuleInstance]int{}
	}
	b.index[inst] = len(b.modules)
	b.byName[c.Name] = inst
	b.modules = append(b.modules, inst)
	b.outEdges = append(b.outEdges, nil)
	return nil
}

func (b *builder) resolveConnect(c zimparse.ConnectCmd) error {
	if c.Sink.Module == "" {
		return b.bindOutput(c)
	}

	sinkInst, ok := b.byName[c.Sink.Module]
	if !ok {
		return &UnknownModuleError{LineNo: c.LineNo, Name: c.Sink.Module}
	}

	sinkKind, isPort := sinkInst.Ports.InputKind(c.Sink.Port)
	if !isPort {
		if !hasParam(sinkInst.Ports, c.Sink.Port) {
			return &UnknownPortError{LineNo: c.LineNo, Module: c.Sink.Module, Port: c.Sink.Port}
		}
	}

	if _, already := sinkInst.Inputs[c.Sink.Port]; already {
		return &MultipleConnectionError{
			LineNo: c.LineNo, Module: c.Sink.Module, Port: c.Sink.Port,
			FirstDef: sinkInst.LineNo,
		}
	}

	if c.Src.IsLiteral {
		sinkInst.Inputs[c.Sink.Port] = BoundInput{IsLiteral: true, Literal: c.Src.Literal}
		return nil
	}

	srcInst, ok := b.byName[c.Src.Source.Module]
	if !ok {
		return &UnknownModuleError{LineNo: c.LineNo, Name: c.Src.Source.Module}
	}
	srcKind, srcIsPort := srcInst.Ports.OutputKind(c.Src.Source.Port)
	if !srcIsPort {
		return &UnknownPortError{LineNo: c.LineNo, Module: c.Src.Source.Module, Port: c.Src.Source.Port}
	}

	if isPort && !sinkKind.Compatible(srcKind) {
		return &IncompatiblePortError{LineNo: c.LineNo, SinkKind: sinkKind.String(), SrcKind: srcKind.String()}
	}

	srcInstIdx := b.indexOf(srcInst)
	sinkInstIdx := b.indexOf(sinkInst)
	b.outEdges[srcInstIdx] = append(b.outEdges[srcInstIdx], sinkInstIdx)

	sinkInst.Inputs[c.Sink.Port] = BoundInput{
		Source: Endpoint{Instance: srcInst, Port: resolvedOutputKey(c.Src.Source.Port, srcKind)},
		Scale:  c.Src.Scale,
		Offset: c.Src.Offset,
	}
	return nil
}

// resolvedOutputKey maps a declared stereo output's bare port name to
// the concrete key under which its left channel is cached, since a
// mono sink reading a stereo source picks the left channel per
// SPEC_FULL.md §4.5. Outputs that are already separate mono ports
// (stereomix's left and right) are passed through unchanged.
func resolvedOutputKey(port string, kind zimmod.PortKind) string {
	if kind == zimmod.Stereo {
		return port + ".left"
	}
	return port
}

func (b *builder) bindOutput(c zimparse.ConnectCmd) error {
	if c.Src.IsLiteral {
		return &ArityError{LineNo: c.LineNo, Module: "out", Reason: "output bus cannot be bound to a literal"}
	}
	srcInst, ok := b.byName[c.Src.Source.Module]
	if !ok {
		return &UnknownModuleError{LineNo: c.LineNo, Name: c.Src.Source.Module}
	}
	srcKind, srcIsPort := srcInst.Ports.OutputKind(c.Src.Source.Port)
	if !srcIsPort {
		return &UnknownPortError{LineNo: c.LineNo, Module: c.Src.Source.Module, Port: c.Src.Source.Port}
	}

	switch c.Sink.Port {
	case "out":
		if b.outputSet && b.output.Mode != Mono {
			return &OutputConflictError{LineNo: c.LineNo}
		}
		b.output = OutputRouting{Mode: Mono, Left: Endpoint{Instance: srcInst, Port: resolvedOutputKey(c.Src.Source.Port, srcKind)}}
		b.outputSet = true
	case "out.left":
		if b.outputSet && b.output.Mode == Mono {
			return &OutputConflictError{LineNo: c.LineNo}
		}
		if b.output.Mode == Stereo {
			b.output = OutputRouting{Mode: Stereo, Left: Endpoint{Instance: srcInst, Port: resolvedOutputKey(c.Src.Source.Port, srcKind)}, Right: b.output.Right}
		} else {
			b.output = OutputRouting{Mode: LeftOnly, Left: Endpoint{Instance: srcInst, Port: resolvedOutputKey(c.Src.Source.Port, srcKind)}}
		}
		b.outputSet = true
	case "out.right":
		if b.outputSet && b.output.Mode == Mono {
			return &OutputConflictError{LineNo: c.LineNo}
		}
		right := Endpoint{Instance: srcInst, Port: resolvedOutputKey(c.Src.Source.Port, srcKind)}
		if b.output.Mode == LeftOnly {
			b.output = OutputRouting{Mode: Stereo, Left: b.output.Left, Right: right}
		} else {
			b.output = OutputRouting{Mode: Stereo, Right: right}
		}
		b.outputSet = true
	default:
		return &UnknownPortError{LineNo: c.LineNo, Module: "out", Port: c.Sink.Port}
	}
	return nil
}

func hasParam(d zimmod.PortDescriptor, name string) bool {
	for _, p := range d.Params {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (b *builder) indexOf(inst *ModuleInstance) int {
	return b.index[inst]
}
