// Package zimdsp is the text-driven modular synthesizer's public
// facade: Compile turns patch text into a validated graph, NewEngine
// wraps it in a running audio-context engine. Grounded on the teacher's
// root-package Player facade (player.go) — PlayerOption/NewPlayer here
// become EngineOption/NewEngine, generalized from a fixed MML/voice-engine
// pairing to an arbitrary compiled patch graph.
package zimdsp

import (
	"fmt"

	"github.com/navicore/zimdsp/internal/zimgraph"
	"github.com/navicore/zimdsp/internal/zimparse"
	"github.com/navicore/zimdsp/internal/zimrt"
)

// DefaultSampleRateHz is used when an EngineOption does not override it,
// matching SPEC_FULL.md §6's stated default.
const DefaultSampleRateHz = 44100

// Compile parses and builds patch text into a validated, compiled
// Patch, or the first structured zimparse/zimgraph error encountered.
func Compile(patchText string, sampleRateHz float64) (*zimgraph.Patch, error) {
	cmds, err := zimparse.Parse(patchText)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	patch, err := zimgraph.Build(cmds, sampleRateHz)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	return patch, nil
}

// EngineOption configures NewEngine, in the teacher's functional-options
// style (PlayerOption in player.go).
type EngineOption func(*engineConfig)

type engineConfig struct {
	sampleRateHz float64
}

func defaultEngineConfig() engineConfig {
	return engineConfig{sampleRateHz: DefaultSampleRateHz}
}

// WithSampleRateHz overrides the rendering sample rate.
func WithSampleRateHz(hz float64) EngineOption {
	return func(cfg *engineConfig) { cfg.sampleRateHz = hz }
}

// NewEngine constructs a stopped *zimrt.Engine ready to receive a
// LoadPatchCommand and Start. It does not compile or load any patch
// text itself — pair with Compile and Engine.Enqueue(LoadPatchCommand).
func NewEngine(opts ...EngineOption) *zimrt.Engine {
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return zimrt.NewEngine(cfg.sampleRateHz)
}

// CompileAndLoad is a convenience wrapper: compiles patchText at the
// engine's configured sample rate and enqueues LoadPatch + Start.
func CompileAndLoad(e *zimrt.Engine, patchText string) error {
	patch, err := Compile(patchText, e.SampleRateHz())
	if err != nil {
		return err
	}
	e.Enqueue(zimrt.LoadPatchCommand(patch))
	e.Enqueue(zimrt.StartCommand())
	return nil
}
