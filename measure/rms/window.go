package rms

import (
	"math"

	"github.com/cwbudde/algo-rms/dsp/core"
)

// Window is the squared-sample history of a single channel.
//
// The ring always holds exactly Capacity slots; head indexes the oldest.
type Window struct {
	squares []float64
	head    int
	sum     float64
}

// NewWindow returns a silent window spanning capacity samples.
// Negative capacities are treated as 0.
func NewWindow(capacity int) *Window {
	return &Window{squares: make([]float64, max(capacity, 0))}
}

// Capacity returns the number of samples averaged by the window.
func (w *Window) Capacity() int {
	return len(w.squares)
}

// Reset zeroes the history and the running sum. The capacity is unchanged.
func (w *Window) Reset() {
	core.Zero(w.squares)
	w.head = 0
	w.sum = 0
}

// MeanSquare returns sum/capacity of the current history, or 0 for an
// empty window.
func (w *Window) MeanSquare() float64 {
	if len(w.squares) == 0 {
		return 0
	}

	return w.sum / float64(len(w.squares))
}

// RMS returns the level of the current history without consuming a sample.
func (w *Window) RMS() float64 {
	return math.Sqrt(w.MeanSquare())
}

// LevelDB returns RMS in dBFS, or -Inf for silence and empty windows.
func (w *Window) LevelDB() float64 {
	return core.LinearPowerToDB(w.MeanSquare())
}

// NextRms evicts the oldest sample, appends x and returns the resulting
// RMS. A zero-capacity window returns 0 and is left untouched.
func (w *Window) NextRms(x float64) float64 {
	return w.nextSquare(x * x)
}

// nextSquare is NextRms for a sample that has already been squared.
func (w *Window) nextSquare(sq float64) float64 {
	n := len(w.squares)
	if n == 0 {
		return 0
	}

	w.sum = core.NonNegative(w.sum-w.squares[w.head]) + sq
	w.squares[w.head] = sq

	w.head++
	if w.head == n {
		w.head = 0
	}

	return math.Sqrt(w.sum / float64(n))
}

// Resize changes the capacity in place.
//
// Shrinking evicts the oldest samples. Growing inserts synthetic samples
// at the oldest end, each equal to the mean square at the time of
// insertion, which leaves the reported RMS unchanged.
func (w *Window) Resize(capacity int) {
	capacity = max(capacity, 0)

	n := len(w.squares)
	if capacity == n {
		return
	}

	ordered := make([]float64, capacity)

	if capacity < n {
		drop := n - capacity
		for i := range ordered {
			ordered[i] = w.squares[(w.head+drop+i)%n]
		}
	} else {
		pad := capacity - n
		fill := w.MeanSquare()

		for i := range pad {
			ordered[i] = fill
		}

		for i := range n {
			ordered[pad+i] = w.squares[(w.head+i)%n]
		}
	}

	// Re-summing here also discards drift accumulated by the running sum.
	var sum float64
	for _, sq := range ordered {
		sum += sq
	}

	w.squares = ordered
	w.head = 0
	w.sum = sum
}
