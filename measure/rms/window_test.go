package rms

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-rms/internal/testutil"
)

const tolerance = 1e-12

func feed(w *Window, signal []float64) []float64 {
	out := make([]float64, len(signal))
	for i, x := range signal {
		out[i] = w.NextRms(x)
	}

	return out
}

func TestWindowConstantConverges(t *testing.T) {
	for _, c := range []float64{0.5, -0.25, 1} {
		w := NewWindow(16)
		out := feed(w, testutil.DC(c, 40))

		for i := 15; i < len(out); i++ {
			testutil.RequireNearlyEqual(t, out[i], math.Abs(c), tolerance)
		}
	}
}

func TestWindowImpulseEntersAndDecays(t *testing.T) {
	const (
		capacity = 8
		amp      = 0.8
	)

	w := NewWindow(capacity)
	feed(w, testutil.DC(0, 100))

	out := feed(w, testutil.Impulse(capacity+4, 0, amp))
	want := math.Sqrt(amp * amp / capacity)

	for i := range capacity {
		testutil.RequireNearlyEqual(t, out[i], want, tolerance)
	}

	for i := capacity; i < len(out); i++ {
		if out[i] != 0 {
			t.Fatalf("out[%d] = %v, want 0 after eviction", i, out[i])
		}
	}
}

func TestWindowMatchesScenario(t *testing.T) {
	w := NewWindow(4)
	got := feed(w, []float64{0, 0, 0, 0, 2, 0, 0, 0})

	testutil.RequireSliceNearlyEqual(t, got, []float64{0, 0, 0, 0, 1, 1, 1, 1}, 0)
}

func TestWindowMatchesBruteForce(t *testing.T) {
	signal := testutil.DeterministicNoise(7, 1, 2000)
	w := NewWindow(37)

	diff, err := testutil.MaxAbsDiff(feed(w, signal), testutil.SlidingRMS(signal, 37))
	if err != nil {
		t.Fatal(err)
	}

	if diff > 1e-9 {
		t.Fatalf("max deviation from brute force = %g", diff)
	}
}

func TestWindowZeroCapacity(t *testing.T) {
	w := NewWindow(0)

	if got := w.NextRms(1); got != 0 {
		t.Fatalf("NextRms() = %v, want 0", got)
	}

	if w.Capacity() != 0 || w.MeanSquare() != 0 || w.RMS() != 0 {
		t.Fatalf("zero-capacity window changed: capacity=%d ms=%v", w.Capacity(), w.MeanSquare())
	}

	if NewWindow(-3).Capacity() != 0 {
		t.Fatal("negative capacity should clamp to 0")
	}
}

func TestWindowReset(t *testing.T) {
	w := NewWindow(4)
	feed(w, []float64{1, 1, 1})
	w.Reset()

	if w.Capacity() != 4 {
		t.Fatalf("Capacity() = %d, want 4", w.Capacity())
	}

	if w.MeanSquare() != 0 {
		t.Fatalf("MeanSquare() = %v, want 0 after Reset", w.MeanSquare())
	}

	testutil.RequireNearlyEqual(t, w.NextRms(2), 1, tolerance)
}

func TestWindowSumStaysNonNegative(t *testing.T) {
	w := NewWindow(64)
	loud := testutil.DeterministicNoise(3, 1, 10000)
	for i := range loud {
		loud[i] *= 1e3
	}

	feed(w, loud)
	out := feed(w, testutil.DC(1e-9, 64))

	testutil.RequireFinite(t, out)

	if w.MeanSquare() < 0 {
		t.Fatalf("MeanSquare() = %v, want >= 0", w.MeanSquare())
	}
}

func TestWindowResizeToSameCapacity(t *testing.T) {
	signal := testutil.DeterministicNoise(11, 1, 50)

	a := NewWindow(8)
	b := NewWindow(8)
	feed(a, signal)
	feed(b, signal)

	b.Resize(8)

	if got, want := b.NextRms(0.3), a.NextRms(0.3); got != want {
		t.Fatalf("after no-op resize NextRms() = %v, want %v", got, want)
	}
}

func TestWindowGrowPadsWithMeanSquare(t *testing.T) {
	w := NewWindow(4)
	feed(w, testutil.DC(0.5, 4))

	w.Resize(10)

	if w.Capacity() != 10 {
		t.Fatalf("Capacity() = %d, want 10", w.Capacity())
	}

	testutil.RequireNearlyEqual(t, w.RMS(), 0.5, tolerance)
	testutil.RequireNearlyEqual(t, w.NextRms(0.5), 0.5, tolerance)
}

func TestWindowGrowFromEmpty(t *testing.T) {
	w := NewWindow(0)
	w.Resize(4)

	if w.Capacity() != 4 || w.MeanSquare() != 0 {
		t.Fatalf("grow from empty: capacity=%d ms=%v", w.Capacity(), w.MeanSquare())
	}

	testutil.RequireNearlyEqual(t, w.NextRms(2), 1, tolerance)
}

func TestWindowShrinkDropsOldest(t *testing.T) {
	w := NewWindow(4)
	feed(w, []float64{1, 0, 0, 0})
	w.Resize(3)

	if w.MeanSquare() != 0 {
		t.Fatalf("MeanSquare() = %v, want 0 once the oldest sample is dropped", w.MeanSquare())
	}

	w = NewWindow(4)
	feed(w, []float64{0, 0, 0, 1})
	w.Resize(2)

	testutil.RequireNearlyEqual(t, w.RMS(), math.Sqrt(0.5), tolerance)

	w.Resize(0)

	if w.Capacity() != 0 || w.MeanSquare() != 0 {
		t.Fatalf("shrink to zero: capacity=%d ms=%v", w.Capacity(), w.MeanSquare())
	}
}

func TestWindowGrowThenShrinkRoundTrip(t *testing.T) {
	history := testutil.DeterministicNoise(5, 1, 30)
	after := testutil.DeterministicNoise(6, 1, 30)

	tests := []struct {
		name  string
		delay int // samples processed between grow and shrink
	}{
		{name: "immediate", delay: 0},
		{name: "after padding evicted", delay: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const k = 5

			ref := NewWindow(7)
			w := NewWindow(7)
			feed(ref, history)
			feed(w, history)

			w.Resize(7 + k)
			feed(ref, after[:tt.delay])
			feed(w, after[:tt.delay])
			w.Resize(7)

			if w.Capacity() != ref.Capacity() {
				t.Fatalf("Capacity() = %d, want %d", w.Capacity(), ref.Capacity())
			}

			testutil.RequireSliceNearlyEqual(t, feed(w, after[tt.delay:]), feed(ref, after[tt.delay:]), 1e-12)
		})
	}
}

func TestWindowLevelDB(t *testing.T) {
	w := NewWindow(4)
	if !math.IsInf(w.LevelDB(), -1) {
		t.Fatalf("silent LevelDB() = %v, want -Inf", w.LevelDB())
	}

	feed(w, testutil.DC(0.5, 4))
	testutil.RequireNearlyEqual(t, w.LevelDB(), 20*math.Log10(w.RMS()), 1e-9)

	if !math.IsInf(NewWindow(0).LevelDB(), -1) {
		t.Fatal("zero-capacity window must report -Inf")
	}
}
