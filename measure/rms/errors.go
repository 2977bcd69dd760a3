package rms

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrShapeMismatch is returned when a buffer does not hold exactly
	// channels*frames samples.
	ErrShapeMismatch = errors.New("rms: sample count does not match channels*frames")
	// ErrInvalidConfig is returned for negative or overflowing channel and
	// frame counts, and for timed windows whose sample rate or length is
	// unusable.
	ErrInvalidConfig = errors.New("rms: invalid stream configuration")
)

func validateShape(n, channels, frames int) error {
	if channels < 0 || frames < 0 {
		return fmt.Errorf("%w: channels=%d frames=%d", ErrInvalidConfig, channels, frames)
	}

	if frames != 0 && channels > math.MaxInt/frames {
		return fmt.Errorf("%w: %d channels x %d frames overflows int", ErrInvalidConfig, channels, frames)
	}

	if n != channels*frames {
		return fmt.Errorf("%w: got %d samples, want %d (%d channels x %d frames)",
			ErrShapeMismatch, n, channels*frames, channels, frames)
	}

	return nil
}

func validateSampleRate(size WindowSize, sampleRate float64) error {
	if !size.IsTimed() {
		return nil
	}

	if !(sampleRate > 0) || math.IsInf(sampleRate, 1) {
		return fmt.Errorf("%w: sample rate must be finite and > 0 for a %v window: %v",
			ErrInvalidConfig, size, sampleRate)
	}

	if samples := size.ms * sampleRate / 1000; !(samples < maxWindowSamples) {
		return fmt.Errorf("%w: a %v window at %v Hz spans too many samples",
			ErrInvalidConfig, size, sampleRate)
	}

	return nil
}

func frameOutOfRange(frame, frames int) string {
	return fmt.Sprintf("rms: frame index %d out of range [0,%d)", frame, frames)
}
