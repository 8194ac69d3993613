package system

import (
	"sync"
)

// MaskPool reuses per-pixel boolean masks between calls to reduce GC pressure.
// Masks are keyed by length.
type MaskPool struct {
	pools map[int]*sync.Pool
	mu    sync.RWMutex
}

var globalMasks = &MaskPool{
	pools: make(map[int]*sync.Pool),
}

// GetMask returns a cleared mask of n entries.
func GetMask(n int) []bool {
	return globalMasks.Get(n)
}

// PutMask hands a mask back for reuse. The caller must not touch it afterwards.
func PutMask(mask []bool) {
	globalMasks.Put(mask)
}

// Get returns a mask of n entries, all false. The per-length pool is created on first use.
func (p *MaskPool) Get(n int) []bool {
	p.mu.RLock()
	pool, exists := p.pools[n]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		// another goroutine may have created it between the locks
		pool, exists = p.pools[n]
		if !exists {
			pool = &sync.Pool{
				New: func() interface{} {
					m := make([]bool, n)
					return &m
				},
			}
			p.pools[n] = pool
		}
		p.mu.Unlock()
	}

	m := *pool.Get().(*[]bool)
	clear(m)
	return m
}

// Put returns mask to the pool of its length. Masks of a length never requested
// through Get are dropped.
func (p *MaskPool) Put(mask []bool) {
	if mask == nil {
		return
	}
	p.mu.RLock()
	pool, exists := p.pools[len(mask)]
	p.mu.RUnlock()

	if exists {
		pool.Put(&mask)
	}
}
