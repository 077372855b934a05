package zimrt

import (
	"sync/atomic"

	"github.com/navicore/zimdsp/internal/zimmod"
)

// commandQueueLen bounds the single-producer/single-consumer command
// channel; a control context that outruns this is misusing the API
// (patch loads and parameter tweaks are not a hot path).
const commandQueueLen = 64

// diagQueueLen bounds the non-blocking diagnostics channel the audio
// context uses to report NaN clamps without logging directly.
const diagQueueLen = 16

// Engine owns the live compiled program and drives it from Fill, the
// audio driver's pull callback (named per spec.md §6's `fill`). Process
// is a one-line alias satisfying internal/audio.SampleSource unchanged.
// Grounded on the teacher's Player single control-context/audio-context
// split (player.go), generalized here from a mutex-guarded struct into
// an atomic-pointer-swapped program plus a lock-free command channel,
// since the callback itself must never block on a mutex.
type Engine struct {
	sampleRateHz float64

	current atomic.Pointer[program]
	running atomic.Bool

	commands chan Command
	diag     chan string
}

// NewEngine constructs a stopped engine with no loaded patch; Fill
// produces silence until Start and LoadPatch have both been applied.
func NewEngine(sampleRateHz float64) *Engine {
	return &Engine{
		sampleRateHz: sampleRateHz,
		commands:     make(chan Command, commandQueueLen),
		diag:         make(chan string, diagQueueLen),
	}
}

// Enqueue submits a control-context command for application at the next
// frame boundary. It blocks only if the queue is full, which signals a
// control-context bug (commands should arrive far slower than frames).
func (e *Engine) Enqueue(cmd Command) {
	e.commands <- cmd
}

// Diagnostics returns the channel the control context should drain to
// log NaN-clamp events; sends to it from the audio thread are
// non-blocking and drop under backpressure rather than stall playback.
func (e *Engine) Diagnostics() <-chan string {
	return e.diag
}

func (e *Engine) drainCommands() {
	for {
		select {
		case cmd := <-e.commands:
			e.apply(cmd)
		default:
			return
		}
	}
}

func (e *Engine) apply(cmd Command) {
	switch cmd.kind {
	case cmdStart:
		e.running.Store(true)
	case cmdStop:
		e.running.Store(false)
	case cmdLoadPatch:
		e.current.Store(compile(cmd.patch))
	case cmdSetParam:
		if prog := e.current.Load(); prog != nil {
			if rm, ok := prog.byName[cmd.module]; ok {
				if _, bound := rm.in[cmd.param]; bound {
					rm.in[cmd.param] = cmd.value
				}
			}
		}
	case cmdPressGate:
		e.setManualLevel(cmd.module, true)
	case cmdReleaseGate:
		e.setManualLevel(cmd.module, false)
	}
}

func (e *Engine) setManualLevel(moduleName string, pressed bool) {
	prog := e.current.Load()
	if prog == nil {
		return
	}
	rm, ok := prog.byName[moduleName]
	if !ok {
		return
	}
	manual, ok := rm.module.(*zimmod.Manual)
	if !ok {
		return
	}
	if pressed {
		manual.Press()
	} else {
		manual.Release()
	}
}

// Fill is the audio driver's pull callback: it writes interleaved
// stereo samples into dst (len(dst) a multiple of 2) at the engine's
// configured sample rate. It drains queued control commands once per
// sample-frame, exactly the granularity SPEC_FULL.md §4.3 describes,
// then evaluates the current program (or silence, if stopped or no
// patch is loaded) in topological order.
func (e *Engine) Fill(dst []float32) {
	for i := 0; i+1 < len(dst); i += 2 {
		e.drainCommands()

		if !e.running.Load() {
			dst[i] = 0
			dst[i+1] = 0
			continue
		}

		prog := e.current.Load()
		if prog == nil {
			dst[i] = 0
			dst[i+1] = 0
			continue
		}

		l, r := prog.evalFrame(e.reportNaN)
		dst[i] = l
		dst[i+1] = r
	}
}

// Process satisfies internal/audio.SampleSource.
func (e *Engine) Process(dst []float32) { e.Fill(dst) }

func (e *Engine) reportNaN(moduleName string) {
	select {
	case e.diag <- moduleName:
	default:
	}
}

// SampleRateHz reports the configured rendering rate.
func (e *Engine) SampleRateHz() float64 { return e.sampleRateHz }
