package zimrt

import "github.com/navicore/zimdsp/internal/zimgraph"

// commandKind tags the variant carried by a queued Command, mirroring
// the teacher's EventKind/TriggerEvent tagged-union style in
// internal/sequencer rather than introducing a Command interface per
// verb — the audio thread switches on a fixed small set.
type commandKind int

const (
	cmdStart commandKind = iota
	cmdStop
	cmdLoadPatch
	cmdSetParam
	cmdPressGate
	cmdReleaseGate
)

// Command is a control-context request queued to the audio thread and
// applied at the next frame boundary, per SPEC_FULL.md §4.3 "Control
// surface". Build one with the constructors below rather than
// populating the struct directly.
type Command struct {
	kind   commandKind
	patch  *zimgraph.Patch
	module string
	param  string
	value  float32
}

func StartCommand() Command { return Command{kind: cmdStart} }
func StopCommand() Command  { return Command{kind: cmdStop} }

func LoadPatchCommand(patch *zimgraph.Patch) Command {
	return Command{kind: cmdLoadPatch, patch: patch}
}

func SetParamCommand(module, param string, value float32) Command {
	return Command{kind: cmdSetParam, module: module, param: param, value: value}
}

func PressGateCommand(module string) Command {
	return Command{kind: cmdPressGate, module: module}
}

func ReleaseGateCommand(module string) Command {
	return Command{kind: cmdReleaseGate, module: module}
}
