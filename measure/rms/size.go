package rms

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// WindowSize describes how many samples a Window spans. It is either a
// fixed sample count or a duration resolved against the stream's sample
// rate on every update.
type WindowSize struct {
	samples int
	ms      float64
	timed   bool
}

// Samples returns a fixed window of n samples. Negative n means 0.
func Samples(n int) WindowSize {
	return WindowSize{samples: max(n, 0)}
}

// Millis returns a window lasting ms milliseconds.
func Millis(ms float64) WindowSize {
	return WindowSize{ms: ms, timed: true}
}

// Duration returns a window lasting d.
func Duration(d time.Duration) WindowSize {
	return Millis(float64(d) / float64(time.Millisecond))
}

// IsTimed reports whether the size depends on the sample rate.
func (s WindowSize) IsTimed() bool {
	return s.timed
}

// Millis returns the window duration in milliseconds. ok is false for
// fixed sample-count windows.
func (s WindowSize) Millis() (ms float64, ok bool) {
	return s.ms, s.timed
}

// maxWindowSamples bounds the resolved length of a timed window so the
// conversion to int cannot overflow.
const maxWindowSamples = float64(math.MaxInt)

// Capacity resolves the size to a sample count at sampleRate Hz:
// round(ms*sampleRate/1000) for timed windows. Non-positive durations or
// sample rates resolve to 0, lengths beyond int saturate at math.MaxInt.
func (s WindowSize) Capacity(sampleRate float64) int {
	if !s.timed {
		return s.samples
	}

	if !(s.ms > 0) || !(sampleRate > 0) {
		return 0
	}

	n := math.Round(s.ms * sampleRate / 1000)
	if !(n < maxWindowSamples) {
		return math.MaxInt
	}

	return int(n)
}

func (s WindowSize) String() string {
	if s.timed {
		return strconv.FormatFloat(s.ms, 'g', -1, 64) + "ms"
	}

	return fmt.Sprintf("%d samples", s.samples)
}
