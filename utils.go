package slotecs

// growthFactor is the multiplicative growth used by the index pool ceiling and
// by component storages.
const growthFactor = 1.5

// grownLen returns the length a buffer of length cur grows to when at least
// need elements are required: cur*1.5, but never less than need.
func grownLen(cur, need int) int {
	return max(int(float64(cur)*growthFactor), need)
}

// growSlice returns s resized to at least n elements, reallocating with 1.5x
// headroom when the capacity is too small. Existing elements are preserved and
// new elements are zero.
func growSlice[T any](s []T, n int) []T {
	if n <= len(s) {
		return s
	}
	if n <= cap(s) {
		old := len(s)
		s = s[:n]
		clear(s[old:])
		return s
	}
	ns := make([]T, n, grownLen(cap(s), n))
	copy(ns, s)
	return ns
}
