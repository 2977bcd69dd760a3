package buffer

import "sync"

// Pool recycles Buffers so that a real-time producer can hand copies of
// its state to a consumer goroutine without allocating per hand-off.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Buffer{}
			},
		},
	}
}

// Snapshot returns a pooled Buffer holding a copy of src.
// Callers return it via Put when done.
func (p *Pool) Snapshot(src []float64) *Buffer {
	b := p.pool.Get().(*Buffer)
	b.CopyFrom(src)

	return b
}

// Put returns a Buffer to the pool. The caller must not use it afterwards.
func (p *Pool) Put(b *Buffer) {
	if b == nil {
		return
	}

	p.pool.Put(b)
}
