package slotecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitset(t *testing.T) {
	t.Run("Set extends", func(t *testing.T) {
		var b bitset
		assert.False(t, b.test(200))
		b.set(200)
		assert.True(t, b.test(200))
		assert.False(t, b.test(199))
		assert.Len(t, b, 4)
	})

	t.Run("Unset past end", func(t *testing.T) {
		var b bitset
		b.unset(1000)
		assert.Equal(t, 0, b.count())
	})

	t.Run("Negative never set", func(t *testing.T) {
		var b bitset
		b.set(0)
		assert.False(t, b.test(-1))
	})

	t.Run("Each ascending", func(t *testing.T) {
		var b bitset
		for _, i := range []int{130, 3, 64, 0, 63} {
			b.set(i)
		}
		var got []int
		b.each(func(i int) { got = append(got, i) })
		assert.Equal(t, []int{0, 3, 63, 64, 130}, got)
		assert.Equal(t, 5, b.count())
	})

	t.Run("Clone is independent", func(t *testing.T) {
		var b bitset
		b.set(5)
		c := b.clone()
		c.set(6)
		b.unset(5)
		assert.True(t, c.test(5))
		assert.False(t, b.test(6))
	})

	t.Run("Regrow clears reused words", func(t *testing.T) {
		b := newBitset(256)
		b.set(70)
		b = b[:0]
		b.set(1)
		assert.False(t, b.test(70))
		assert.True(t, b.test(1))
	})
}
