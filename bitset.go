package slotecs

import "math/bits"

const (
	bitsPerWord = 64
	wordShift   = 6
	wordMask    = bitsPerWord - 1
)

// bitset is an auto-extending set of non-negative integers. Entities use it
// for component presence keyed by type-index and the universe tracks its live
// slots with one. Reads past the end report false; set grows the backing
// words on demand.
type bitset []uint64

// newBitset returns a bitset with room for n bits without reallocating.
func newBitset(n int) bitset {
	if n <= 0 {
		return nil
	}
	return make(bitset, 0, (n+wordMask)>>wordShift)
}

// set enables bit i, extending the set if needed.
func (b *bitset) set(i int) {
	w := i >> wordShift
	if w >= len(*b) {
		b.ensureWords(w + 1)
	}
	(*b)[w] |= uint64(1) << uint(i&wordMask)
}

// unset disables bit i. Bits past the end are already clear.
func (b bitset) unset(i int) {
	w := i >> wordShift
	if w >= len(b) {
		return
	}
	b[w] &^= uint64(1) << uint(i&wordMask)
}

// test reports whether bit i is set.
func (b bitset) test(i int) bool {
	if i < 0 {
		return false
	}
	w := i >> wordShift
	if w >= len(b) {
		return false
	}
	return b[w]&(uint64(1)<<uint(i&wordMask)) != 0
}

// count returns the number of set bits.
func (b bitset) count() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

// each calls fn for every set bit in ascending order.
func (b bitset) each(fn func(i int)) {
	for wi, w := range b {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			fn(wi<<wordShift + tz)
			w &= w - 1
		}
	}
}

// clone returns an independent copy.
func (b bitset) clone() bitset {
	if len(b) == 0 {
		return nil
	}
	nb := make(bitset, len(b))
	copy(nb, b)
	return nb
}

// ensureWords grows the set to at least n words, keeping existing bits.
func (b *bitset) ensureWords(n int) {
	*b = growSlice(*b, n)
}
