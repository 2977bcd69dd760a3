package rms

import (
	"github.com/go-audio/audio"

	"github.com/cwbudde/algo-rms/dsp/sample"
)

const defaultBitDepth = 16

// UpdateBuffer feeds a go-audio buffer through the engine, taking the
// channel count and sample rate from its PCM format.
//
// *audio.IntBuffer data is normalised by SourceBitDepth (16 when unset),
// float buffers are used as-is. Other Buffer implementations go through
// AsFloatBuffer and must already be in the wave domain.
func (e *Engine) UpdateBuffer(buf audio.Buffer) error {
	var (
		format *audio.Format
		wave   []float64
	)

	switch b := buf.(type) {
	case nil:
		return audio.ErrInvalidBuffer
	case *audio.IntBuffer:
		if b == nil || b.Format == nil {
			return audio.ErrInvalidBuffer
		}

		depth := b.SourceBitDepth
		if depth == 0 {
			depth = defaultBitDepth
		}

		format = b.Format
		e.wave = sample.ConvertInts(e.wave, b.Data, depth)
		wave = e.wave
	case *audio.Float32Buffer:
		if b == nil || b.Format == nil {
			return audio.ErrInvalidBuffer
		}

		format = b.Format
		e.wave = sample.Convert(e.wave, b.Data)
		wave = e.wave
	case *audio.FloatBuffer:
		if b == nil || b.Format == nil {
			return audio.ErrInvalidBuffer
		}

		format = b.Format
		wave = b.Data
	default:
		fb := buf.AsFloatBuffer()
		if fb == nil || fb.Format == nil {
			return audio.ErrInvalidBuffer
		}

		format = fb.Format
		wave = fb.Data
	}

	if format.NumChannels <= 0 {
		return audio.ErrInvalidBuffer
	}

	channels := format.NumChannels
	frames := len(wave) / channels

	return e.Update(wave, channels, frames, float64(format.SampleRate))
}
