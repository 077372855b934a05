package zimmod

// gateThreshold is the level at or above which a signal reads as logical
// high, per SPEC_FULL.md §3 / GLOSSARY.
const gateThreshold = 0.5

// edgeDetector tracks the previous sample of a gate-carrying signal and
// reports rising edges. Grounded on the teacher's note-trigger voice
// engines (_examples/cbegin-mmlfm-go/internal/fm, /chiptune, /nesapu,
// /wavetable), each comparing a call's trigger state against the last one
// seen before invoking NoteOn/NoteOff — the same "remember state, compare,
// act only on change" idiom, generalized here to an explicit 0.5 threshold
// crossing shared by every gate-consuming module in this library.
type edgeDetector struct {
	prev float32
}

// Rising reports whether v is a rising edge relative to the last sample
// seen, then records v as the new previous sample.
func (d *edgeDetector) Rising(v float32) bool {
	rose := d.prev < gateThreshold && v >= gateThreshold
	d.prev = v
	return rose
}

func isHigh(v float32) bool {
	return v >= gateThreshold
}
