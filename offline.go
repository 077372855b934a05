package zimdsp

import (
	"encoding/binary"
	"math"

	"github.com/navicore/zimdsp/internal/zimrt"
)

// RenderSamples compiles patchText and runs it for the given duration
// in a single offline pass, returning interleaved stereo float32
// samples. It starts the engine itself (no external control surface is
// needed for a fixed-duration, non-interactive render). Grounded on the
// teacher's RenderSamples family (offline.go), generalized from a
// parsed MML Score driving one fixed synth engine to a compiled Patch
// driving the general-purpose zimrt runtime.
func RenderSamples(patchText string, sampleRateHz int, seconds float64) ([]float32, error) {
	patch, err := Compile(patchText, float64(sampleRateHz))
	if err != nil {
		return nil, err
	}
	e := NewEngine(WithSampleRateHz(float64(sampleRateHz)))
	e.Enqueue(zimrt.LoadPatchCommand(patch))
	e.Enqueue(zimrt.StartCommand())

	frames := int(float64(sampleRateHz) * seconds)
	out := make([]float32, frames*2)
	e.Fill(out)
	return out, nil
}

// EncodeWAVFloat32LE wraps raw interleaved float32 samples in a
// canonical 44-byte PCM-float WAV header, carried over verbatim from
// the teacher (offline.go) — a generic container format with no
// synthesis-domain logic of its own.
func EncodeWAVFloat32LE(samples []float32, sampleRate int, channels int) []byte {
	dataSize := len(samples) * 4
	byteRate := sampleRate * channels * 4
	blockAlign := channels * 4
	chunkSize := 36 + dataSize
	out := make([]byte, 44+dataSize)
	copy(out[0:], []byte("RIFF"))
	binary.LittleEndian.PutUint32(out[4:], uint32(chunkSize))
	copy(out[8:], []byte("WAVE"))
	copy(out[12:], []byte("fmt "))
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 3)
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], 32)
	copy(out[36:], []byte("data"))
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[44+i*4:], math.Float32bits(s))
	}
	return out
}
