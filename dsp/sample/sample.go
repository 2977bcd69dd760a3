package sample

import "github.com/cwbudde/algo-rms/dsp/core"

// Type is the set of sample representations understood by ToWave.
type Type interface {
	int8 | int16 | int32 | uint8 | float32 | float64
}

const (
	int8Scale  = 1.0 / (1 << 7)
	int16Scale = 1.0 / (1 << 15)
	int32Scale = 1.0 / (1 << 31)
)

// ToWave converts a single sample into the wave domain.
func ToWave[S Type](s S) float64 {
	switch v := any(s).(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int16:
		return float64(v) * int16Scale
	case int32:
		return float64(v) * int32Scale
	case int8:
		return float64(v) * int8Scale
	case uint8:
		return (float64(v) - 128) * int8Scale
	}

	return 0
}

// Convert writes the wave representation of src into dst, reusing the
// capacity of dst when possible, and returns the resized dst.
func Convert[S Type](dst []float64, src []S) []float64 {
	dst = core.EnsureLen(dst, len(src))
	for i, s := range src {
		dst[i] = ToWave(s)
	}

	return dst
}

// FromInt converts an integer PCM value stored with the given bit depth.
// A depth of 8 is treated as unsigned offset binary, matching WAV. Depths
// outside [1, 32] yield 0.
func FromInt(v, bitDepth int) float64 {
	if bitDepth < 1 || bitDepth > 32 {
		return 0
	}

	full := float64(int64(1) << (bitDepth - 1))
	if bitDepth == 8 {
		return (float64(v) - full) / full
	}

	return float64(v) / full
}

// ConvertInts is the block form of FromInt.
func ConvertInts(dst []float64, src []int, bitDepth int) []float64 {
	dst = core.EnsureLen(dst, len(src))
	for i, v := range src {
		dst[i] = FromInt(v, bitDepth)
	}

	return dst
}
