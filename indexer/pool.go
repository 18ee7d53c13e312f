package indexer

import "sync"

const defaultBufCap = 16

// Pool recycles point-index buffers between rebuilds so that a steady-state
// tick allocates almost nothing.
type Pool struct {
	mu     sync.Mutex
	bufs   [][]int
	minCap int
	reused int
}

// NewPool creates a pool whose fresh buffers start with minCap capacity.
func NewPool(minCap int) *Pool {
	if minCap <= 0 {
		minCap = defaultBufCap
	}
	return &Pool{minCap: minCap}
}

// Get returns an empty buffer.
func (p *Pool) Get() []int {
	if p == nil {
		return make([]int, 0, defaultBufCap)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if n := len(p.bufs); n > 0 {
		b := p.bufs[n-1]
		p.bufs[n-1] = nil
		p.bufs = p.bufs[:n-1]
		p.reused++
		return b[:0]
	}
	return make([]int, 0, p.minCap)
}

// Put returns a buffer to the pool. Nil buffers are ignored.
func (p *Pool) Put(b []int) {
	if p == nil || b == nil {
		return
	}
	p.mu.Lock()
	p.bufs = append(p.bufs, b[:0])
	p.mu.Unlock()
}

// Idle returns the number of buffers waiting in the pool.
func (p *Pool) Idle() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.bufs)
}

// Reused returns how many Get calls were served from recycled buffers.
func (p *Pool) Reused() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reused
}

// Close drops all idle buffers.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bufs = nil
}
