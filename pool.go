package scanline

// DefaultPoolCapacity bounds how many recycled objects a pool keeps when no
// capacity is configured.
const DefaultPoolCapacity = 256

// PoolStats counts pool traffic since creation.
type PoolStats struct {
	Allocs int // objects created on the heap because the free list was empty
	Reuses int // objects handed out from the free list
	Drops  int // objects released to the GC because the pool was full
}

// Pool is a free-list allocator for *T. Objects are recycled rather than
// freed, which keeps the per-frame list traffic allocation-free once the
// free list reaches its high-water mark.
//
// A Pool is owned by a Scene; it is not safe for concurrent use.
type Pool[T any] struct {
	newFn    func() *T
	resetFn  func(*T)
	free     []*T
	capacity int
	stats    PoolStats
}

// NewPool creates a pool. newFn allocates a fresh object when the free list is
// empty; resetFn (optional) restores an object to defaults before it is put
// back. capacity <= 0 selects DefaultPoolCapacity.
func NewPool[T any](newFn func() *T, resetFn func(*T), capacity int) *Pool[T] {
	if newFn == nil {
		newFn = func() *T { return new(T) }
	}
	if capacity <= 0 {
		capacity = DefaultPoolCapacity
	}
	return &Pool[T]{newFn: newFn, resetFn: resetFn, capacity: capacity}
}

// Get returns a recycled object, or a new heap object when the pool is empty.
func (p *Pool[T]) Get() *T {
	if n := len(p.free); n > 0 {
		obj := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		p.stats.Reuses++
		return obj
	}
	p.stats.Allocs++
	return p.newFn()
}

// Put resets obj and returns it to the free list. Objects beyond the pool's
// capacity are dropped.
func (p *Pool[T]) Put(obj *T) {
	if obj == nil {
		return
	}
	if p.resetFn != nil {
		p.resetFn(obj)
	}
	if len(p.free) >= p.capacity {
		p.stats.Drops++
		return
	}
	p.free = append(p.free, obj)
}

// Len returns the number of objects waiting on the free list.
func (p *Pool[T]) Len() int {
	return len(p.free)
}

// Cap returns the maximum number of objects kept on the free list.
func (p *Pool[T]) Cap() int {
	return p.capacity
}

// Stats returns the pool's counters.
func (p *Pool[T]) Stats() PoolStats {
	return p.stats
}

// Drain empties the free list, leaving the objects to the GC.
func (p *Pool[T]) Drain() {
	clear(p.free)
	p.free = p.free[:0]
}
