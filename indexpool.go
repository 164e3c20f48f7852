package slotecs

import "github.com/rotisserie/eris"

// DefaultPoolSize is the ceiling of an IndexPool created with a non-positive
// initial size.
const DefaultPoolSize = 64

// IndexPool hands out small non-negative integers and takes them back for
// reuse. It tracks a watermark (minUnused: no slot at or above it has been
// issued) and a FIFO queue of freed slots below the watermark. Borrow prefers
// queued slots before extending the range; freeing the most recently issued
// slot just lowers the watermark, so stack-like usage never touches the queue.
//
// The ceiling is advisory: Borrow grows it by 1.5x when the watermark reaches
// it, and subscribers are told about every change so they can pre-size.
//
// An IndexPool is not safe for concurrent use.
type IndexPool struct {
	free      intQueue
	minUnused int
	ceiling   int
	bus       *eventBus
}

// NewIndexPool returns a pool whose ceiling starts at initial, or
// DefaultPoolSize when initial is not positive.
func NewIndexPool(initial int) *IndexPool {
	return newIndexPool(initial, &eventBus{})
}

func newIndexPool(initial int, bus *eventBus) *IndexPool {
	if initial <= 0 {
		initial = DefaultPoolSize
	}
	return &IndexPool{
		free:    newIntQueue(initial),
		ceiling: initial,
		bus:     bus,
	}
}

// Subscribe registers fn to be called after every ceiling change.
func (p *IndexPool) Subscribe(fn func(PoolResized)) {
	subscribe(p.bus, fn)
}

// Borrow returns a slot that is not currently issued.
func (p *IndexPool) Borrow() int {
	if p.free.len() > 0 {
		return p.free.pop()
	}
	if p.minUnused >= p.ceiling {
		p.resize(max(int(float64(p.ceiling)*growthFactor), p.ceiling+1))
	}
	slot := p.minUnused
	p.minUnused++
	return slot
}

// Free returns slot to the pool. Freeing a slot at or above the watermark, or
// a negative slot, fails with ErrIndexPoolMisuse. Freeing a queued slot twice
// is not detected.
func (p *IndexPool) Free(slot int) error {
	switch {
	case slot < 0 || slot >= p.minUnused:
		return eris.Wrapf(ErrIndexPoolMisuse, "cannot free slot %d: never issued (watermark %d)", slot, p.minUnused)
	case slot == p.minUnused-1:
		p.minUnused--
	default:
		p.free.push(slot)
	}
	return nil
}

// Grow raises the ceiling to size. Growing to less than the current ceiling
// fails with ErrIndexPoolMisuse.
func (p *IndexPool) Grow(size int) error {
	if size < p.ceiling {
		return eris.Wrapf(ErrIndexPoolMisuse, "cannot grow to %d: below ceiling %d", size, p.ceiling)
	}
	p.resize(size)
	return nil
}

// Shrink lowers the ceiling to size. Shrinking below the watermark or above
// the current ceiling fails with ErrIndexPoolMisuse.
func (p *IndexPool) Shrink(size int) error {
	if size < p.minUnused {
		return eris.Wrapf(ErrIndexPoolMisuse, "cannot shrink to %d: below watermark %d", size, p.minUnused)
	}
	if size > p.ceiling {
		return eris.Wrapf(ErrIndexPoolMisuse, "cannot shrink to %d: above ceiling %d", size, p.ceiling)
	}
	p.resize(size)
	return nil
}

// Ceiling returns the current capacity ceiling.
func (p *IndexPool) Ceiling() int { return p.ceiling }

// MinUnused returns the watermark: the lowest slot never issued since it was
// last reclaimed.
func (p *IndexPool) MinUnused() int { return p.minUnused }

// Available returns the number of freed slots waiting in the reuse queue.
func (p *IndexPool) Available() int { return p.free.len() }

// InUse returns the number of slots currently issued.
func (p *IndexPool) InUse() int { return p.minUnused - p.free.len() }

func (p *IndexPool) resize(size int) {
	p.ceiling = size
	publish(p.bus, PoolResized{MinUnused: p.minUnused, Ceiling: size})
}

// intQueue is a growable FIFO ring buffer of ints.
type intQueue struct {
	buf  []int
	head int
	n    int
}

func newIntQueue(capacity int) intQueue {
	return intQueue{buf: make([]int, max(capacity, 1))}
}

func (q *intQueue) len() int { return q.n }

func (q *intQueue) push(v int) {
	if q.n == len(q.buf) {
		nb := make([]int, grownLen(len(q.buf), len(q.buf)+1))
		// unroll the ring into the front of the new buffer
		k := copy(nb, q.buf[q.head:])
		copy(nb[k:], q.buf[:q.head])
		q.buf = nb
		q.head = 0
	}
	q.buf[(q.head+q.n)%len(q.buf)] = v
	q.n++
}

func (q *intQueue) pop() int {
	v := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.n--
	return v
}
