// Package index normalizes signed guest-supplied indices into safe
// native offsets. Guest indices may be negative or larger than the
// container; rather than raising an error across the boundary, the
// helpers clamp to the nearest valid bound so container access never
// reads or writes out of range. Negative indices clamp — they do not
// count from the end.
package index

// SaturatingCast maps negative indices to 0 and passes non-negative
// indices through. No upper clamp; use where a separate bound check
// follows.
func SaturatingCast(x int64) int {
	if x < 0 {
		return 0
	}
	return int(x)
}

// CastOr maps negative indices, and indices exceeding or, to or.
// Everything else passes through. Use for closed-interval indices
// where the bound is the safe fallback.
func CastOr(x int64, or int) int {
	if x < 0 || x > int64(or) {
		return or
	}
	return int(x)
}

// Interval resolves a guest-supplied [start, end) pair against bound n
// into offsets satisfying 0 <= lo <= hi <= n. The start saturates at
// zero and clamps to n; the end defaults to n when out of range and is
// raised to the start when the interval would be inverted.
func Interval(start, end int64, n int) (lo, hi int) {
	lo = SaturatingCast(start)
	if lo > n {
		lo = n
	}
	hi = CastOr(end, n)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}
