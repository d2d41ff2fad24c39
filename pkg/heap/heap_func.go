package heap

// The *Func variants below mirror the cmp.Ordered API for element types that
// are ordered by a comparison function, such as records sorted by a key.
// cmp(a, b) must return a negative number when a < b, zero when a == b and a
// positive number when a > b, and must describe a total order.

// HeapifyFunc is Heapify using cmp to order elements.
func HeapifyFunc[T any](s []T, root int, maxHeap bool, n int, cmp func(a, b T) int) {
	if n <= 1 {
		return
	}

	for {
		extreme := root
		left := 2*root + 1
		if left >= n || left < 0 { // left < 0 after int overflow
			return
		}
		if moreExtremeFunc(s[left], s[extreme], maxHeap, cmp) {
			extreme = left
		}
		if right := left + 1; right < n && moreExtremeFunc(s[right], s[extreme], maxHeap, cmp) {
			extreme = right
		}
		if extreme == root {
			return
		}
		s[root], s[extreme] = s[extreme], s[root]
		root = extreme
	}
}

// MakeHeapFunc is MakeHeap using cmp to order elements.
func MakeHeapFunc[T any](s []T, maxHeap bool, cmp func(a, b T) int) {
	n := len(s)
	if n <= 1 {
		return
	}
	for i := (n - 1) / 2; i >= 0; i-- {
		HeapifyFunc(s, i, maxHeap, n, cmp)
	}
}

// SortFunc is Sort using cmp to order elements. Elements comparing equal keep
// no particular relative order.
func SortFunc[T any](s []T, ascending bool, cmp func(a, b T) int) {
	if len(s) <= 1 {
		return
	}

	MakeHeapFunc(s, ascending, cmp)
	for end := len(s) - 1; end > 0; end-- {
		s[0], s[end] = s[end], s[0]
		HeapifyFunc(s, 0, ascending, end, cmp)
	}
}

// IsHeapFunc is IsHeap using cmp to order elements.
func IsHeapFunc[T any](s []T, maxHeap bool, cmp func(a, b T) int) bool {
	for child := 1; child < len(s); child++ {
		if moreExtremeFunc(s[child], s[(child-1)/2], maxHeap, cmp) {
			return false
		}
	}
	return true
}

func moreExtremeFunc[T any](a, b T, maxHeap bool, cmp func(a, b T) int) bool {
	if maxHeap {
		return cmp(a, b) > 0
	}
	return cmp(a, b) < 0
}
