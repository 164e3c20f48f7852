package slotecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexPool(t *testing.T) {
	t.Run("Borrow in order", func(t *testing.T) {
		p := NewIndexPool(4)
		for want := 0; want < 4; want++ {
			assert.Equal(t, want, p.Borrow())
		}
		assert.Equal(t, 4, p.Ceiling())
	})

	t.Run("Free below watermark is queued", func(t *testing.T) {
		p := NewIndexPool(4)
		for i := 0; i < 4; i++ {
			p.Borrow()
		}
		require.NoError(t, p.Free(2))
		assert.Equal(t, 1, p.Available())
		assert.Equal(t, 4, p.MinUnused())
		assert.Equal(t, 2, p.Borrow())
		assert.Equal(t, 0, p.Available())
	})

	t.Run("Free last issued lowers watermark", func(t *testing.T) {
		p := NewIndexPool(4)
		for i := 0; i < 4; i++ {
			p.Borrow()
		}
		require.NoError(t, p.Free(3))
		assert.Equal(t, 0, p.Available())
		assert.Equal(t, 3, p.MinUnused())
		assert.Equal(t, 3, p.Borrow())
	})

	t.Run("Queue is FIFO", func(t *testing.T) {
		p := NewIndexPool(8)
		for i := 0; i < 6; i++ {
			p.Borrow()
		}
		require.NoError(t, p.Free(1))
		require.NoError(t, p.Free(4))
		require.NoError(t, p.Free(0))
		assert.Equal(t, 1, p.Borrow())
		assert.Equal(t, 4, p.Borrow())
		assert.Equal(t, 0, p.Borrow())
		assert.Equal(t, 6, p.Borrow())
	})

	t.Run("Free never issued", func(t *testing.T) {
		p := NewIndexPool(4)
		p.Borrow()
		requireKind(t, p.Free(1), ErrIndexPoolMisuse)
		requireKind(t, p.Free(7), ErrIndexPoolMisuse)
		requireKind(t, p.Free(-1), ErrIndexPoolMisuse)
	})

	t.Run("Borrow grows ceiling by half", func(t *testing.T) {
		p := NewIndexPool(4)
		var events []PoolResized
		p.Subscribe(func(ev PoolResized) { events = append(events, ev) })
		for i := 0; i < 5; i++ {
			p.Borrow()
		}
		assert.Equal(t, 6, p.Ceiling())
		require.Len(t, events, 1)
		assert.Equal(t, PoolResized{MinUnused: 4, Ceiling: 6}, events[0])
	})

	t.Run("Tiny pool still grows", func(t *testing.T) {
		p := NewIndexPool(1)
		p.Borrow()
		p.Borrow()
		assert.Equal(t, 2, p.Ceiling())
	})

	t.Run("Default size", func(t *testing.T) {
		assert.Equal(t, DefaultPoolSize, NewIndexPool(0).Ceiling())
	})

	t.Run("Grow and Shrink notify", func(t *testing.T) {
		p := NewIndexPool(4)
		var events []PoolResized
		p.Subscribe(func(ev PoolResized) { events = append(events, ev) })
		p.Borrow()
		p.Borrow()
		require.NoError(t, p.Grow(10))
		require.NoError(t, p.Shrink(2))
		assert.Equal(t, []PoolResized{
			{MinUnused: 2, Ceiling: 10},
			{MinUnused: 2, Ceiling: 2},
		}, events)
	})

	t.Run("Invalid resizes", func(t *testing.T) {
		p := NewIndexPool(8)
		for i := 0; i < 3; i++ {
			p.Borrow()
		}
		requireKind(t, p.Grow(7), ErrIndexPoolMisuse)
		requireKind(t, p.Shrink(2), ErrIndexPoolMisuse)
		requireKind(t, p.Shrink(9), ErrIndexPoolMisuse)
		assert.Equal(t, 8, p.Ceiling())
	})

	t.Run("InUse", func(t *testing.T) {
		p := NewIndexPool(4)
		for i := 0; i < 4; i++ {
			p.Borrow()
		}
		require.NoError(t, p.Free(0))
		require.NoError(t, p.Free(3))
		assert.Equal(t, 2, p.InUse())
	})
}

func TestIndexPoolNoDoubleOccupancy(t *testing.T) {
	p := NewIndexPool(2)
	issued := map[int]bool{}
	var order []int
	// deterministic churn mixing stack-like and out-of-order frees
	for round := 0; round < 200; round++ {
		for i := 0; i < 3; i++ {
			s := p.Borrow()
			require.False(t, issued[s], "slot %d issued twice", s)
			issued[s] = true
			order = append(order, s)
		}
		victim := order[(round*7)%len(order)]
		require.NoError(t, p.Free(victim))
		delete(issued, victim)
		order = removeValue(order, victim)
		if round%3 == 0 {
			last := order[len(order)-1]
			require.NoError(t, p.Free(last))
			delete(issued, last)
			order = order[:len(order)-1]
		}
	}
	assert.Equal(t, len(issued), p.InUse())
}

func TestIntQueueWraps(t *testing.T) {
	q := newIntQueue(2)
	q.push(1)
	q.push(2)
	assert.Equal(t, 1, q.pop())
	q.push(3)
	q.push(4) // forces growth while the ring is wrapped
	assert.Equal(t, 3, q.len())
	assert.Equal(t, 2, q.pop())
	assert.Equal(t, 3, q.pop())
	assert.Equal(t, 4, q.pop())
	assert.Equal(t, 0, q.len())
}

func removeValue(s []int, v int) []int {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
