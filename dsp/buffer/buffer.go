package buffer

// Buffer wraps a float64 slice with reuse-friendly semantics.
type Buffer struct {
	samples []float64
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	return &Buffer{samples: make([]float64, max(length, 0))}
}

// Samples returns the underlying slice.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the current number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Cap returns the current capacity of the backing slice.
func (b *Buffer) Cap() int {
	return cap(b.samples)
}

// Reserve grows the backing array to hold at least n samples without
// changing the length.
func (b *Buffer) Reserve(n int) {
	if n <= b.Cap() {
		return
	}

	s := make([]float64, len(b.samples), n)
	copy(s, b.samples)
	b.samples = s
}

// Resize sets the length to n. Existing values up to n are kept, new
// elements are zero, and the backing array is reused when it is large
// enough.
func (b *Buffer) Resize(n int) {
	n = max(n, 0)

	old := len(b.samples)
	if n == old {
		return
	}

	if n > cap(b.samples) {
		s := make([]float64, n)
		copy(s, b.samples)
		b.samples = s

		return
	}

	b.samples = b.samples[:n]

	// The reused tail may hold values from an earlier, longer length.
	for i := old; i < n; i++ {
		b.samples[i] = 0
	}
}

// CopyFrom resizes b to len(src) and copies src into it.
func (b *Buffer) CopyFrom(src []float64) {
	b.Resize(len(src))
	copy(b.samples, src)
}
