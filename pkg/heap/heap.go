// Package heap implements in-place binary heap construction and heap sort
// over slices of ordered values.
//
// The heap is the implicit binary tree laid out in the slice: the children of
// index i live at 2i+1 and 2i+2. A single flag selects between a max-heap,
// where every parent is >= its children, and a min-heap, where every parent
// is <= its children.
package heap

import "cmp"

// Heapify sifts s[root] down until the subtree rooted at root satisfies the
// heap invariant. Only the first n elements of s are considered part of the
// heap; n must not exceed len(s). Both child subtrees of root must already be
// heaps.
//
// Equal elements are never swapped.
func Heapify[T cmp.Ordered](s []T, root int, maxHeap bool, n int) {
	if n <= 1 {
		return
	}

	for {
		extreme := root
		left := 2*root + 1
		if left >= n || left < 0 { // left < 0 after int overflow
			return
		}
		if moreExtreme(s[left], s[extreme], maxHeap) {
			extreme = left
		}
		if right := left + 1; right < n && moreExtreme(s[right], s[extreme], maxHeap) {
			extreme = right
		}
		if extreme == root {
			return
		}
		s[root], s[extreme] = s[extreme], s[root]
		root = extreme
	}
}

// MakeHeap reorders s in place into a max-heap or a min-heap.
// The complexity is O(n) where n = len(s).
func MakeHeap[T cmp.Ordered](s []T, maxHeap bool) {
	if len(s) <= 1 {
		return
	}
	buildHeap(s, maxHeap)
}

// Sort sorts s in place, in non-decreasing order when ascending is true and in
// non-increasing order otherwise. The sort is not stable.
//
// An ascending sort builds a max-heap and repeatedly moves the root to the end
// of the shrinking heap; a descending sort does the same with a min-heap.
func Sort[T cmp.Ordered](s []T, ascending bool) {
	if len(s) <= 1 {
		return
	}

	buildHeap(s, ascending)
	for end := len(s) - 1; end > 0; end-- {
		s[0], s[end] = s[end], s[0]
		Heapify(s, 0, ascending, end)
	}
}

// IsHeap reports whether s satisfies the max-heap or min-heap invariant.
// Elements are compared with cmp.Less, which orders NaN before every other
// value, so a NaN the sift-down could not place is reported as a violation.
func IsHeap[T cmp.Ordered](s []T, maxHeap bool) bool {
	for child := 1; child < len(s); child++ {
		if moreExtremeStrict(s[child], s[(child-1)/2], maxHeap) {
			return false
		}
	}
	return true
}

// IsSorted reports whether s is in non-decreasing (ascending) or
// non-increasing order, comparing with cmp.Less.
func IsSorted[T cmp.Ordered](s []T, ascending bool) bool {
	for i := 1; i < len(s); i++ {
		if moreExtremeStrict(s[i-1], s[i], ascending) {
			return false
		}
	}
	return true
}

func buildHeap[T cmp.Ordered](s []T, maxHeap bool) {
	n := len(s)
	for i := (n - 1) / 2; i >= 0; i-- {
		Heapify(s, i, maxHeap, n)
	}
}

func moreExtreme[T cmp.Ordered](a, b T, maxHeap bool) bool {
	if maxHeap {
		return a > b
	}
	return a < b
}

// moreExtremeStrict is moreExtreme with NaNs ordered before every other value.
func moreExtremeStrict[T cmp.Ordered](a, b T, maxHeap bool) bool {
	if maxHeap {
		return cmp.Less(b, a)
	}
	return cmp.Less(a, b)
}
