package qsort

import "cmp"

// hybrid is the recursive quicksort controller. One instance is used per
// goroutine; the counters are not synchronised.
type hybrid[T cmp.Ordered] struct {
	threshold int
	alternate AlternateKind
	median    bool

	partitions int
	fallbacks  int
}

func newHybrid[T cmp.Ordered](cfg Config) *hybrid[T] {
	return &hybrid[T]{
		threshold: cfg.Threshold,
		alternate: cfg.Alternate,
		median:    cfg.MedianOfThree,
	}
}

// sort orders a[lo..hi] (inclusive) in place.
func (h *hybrid[T]) sort(a []T, lo, hi int) {
	for {
		size := hi - lo + 1
		switch {
		case size < 2:
			return
		case size == 2:
			if a[lo] > a[hi] {
				a[lo], a[hi] = a[hi], a[lo]
			}
			return
		case size <= h.threshold:
			h.fallbacks++
			if h.alternate == Insertion {
				insertionSort(a, lo, hi)
			} else {
				shellSort(a, lo, hi)
			}
			return
		}

		h.partitions++
		p := partition(a, lo, hi, h.median)

		// recurse into the smaller side, loop on the larger one
		if p-lo < hi-p {
			h.sort(a, lo, p-1)
			lo = p + 1
		} else {
			h.sort(a, p+1, hi)
			hi = p - 1
		}
	}
}

// medianOfThree leaves a[lo] <= a[mid] <= a[hi]; the pivot is read from a[lo].
func medianOfThree[T cmp.Ordered](a []T, lo, hi int) {
	mid := lo + (hi-lo)/2
	if a[lo] > a[mid] {
		a[lo], a[mid] = a[mid], a[lo]
	}
	if a[lo] > a[hi] {
		a[lo], a[hi] = a[hi], a[lo]
	}
	if a[mid] > a[hi] {
		a[mid], a[hi] = a[hi], a[mid]
	}
}

// partition splits a[lo..hi] around a[lo] (Hoare scheme) and returns the
// pivot's final index. Requires 0 <= lo < hi < len(a).
func partition[T cmp.Ordered](a []T, lo, hi int, median bool) int {
	if lo < 0 || lo >= hi || hi >= len(a) {
		raise("partition range [%d,%d] invalid for length %d", lo, hi, len(a))
	}
	if median {
		medianOfThree(a, lo, hi)
	}
	pivot := a[lo]
	i, j := lo, hi+1
	for {
		for {
			i++
			if i == hi || !(a[i] < pivot) {
				break
			}
		}
		// a[lo] holds the pivot, so the j scan stops at lo at the latest
		for {
			j--
			if !(a[j] > pivot) {
				break
			}
		}
		if i >= j {
			break
		}
		a[i], a[j] = a[j], a[i]
	}
	a[lo], a[j] = a[j], a[lo]
	return j
}

// insertionSort sorts a[lo..hi] by shifting.
func insertionSort[T cmp.Ordered](a []T, lo, hi int) {
	for i := lo + 1; i <= hi; i++ {
		key := a[i]
		j := i - 1
		for j >= lo && key < a[j] {
			a[j+1] = a[j]
			j--
		}
		a[j+1] = key
	}
}

// shellSort sorts a[lo..hi] with Hibbard gaps (2^k - 1).
func shellSort[T cmp.Ordered](a []T, lo, hi int) {
	size := hi - lo + 1
	k := 1
	for k <= size {
		k *= 2
	}
	for k = k/2 - 1; k > 0; k >>= 1 {
		for i := 0; i < size-k; i++ {
			for j := lo + i; j >= lo && a[j] > a[j+k]; j -= k {
				a[j], a[j+k] = a[j+k], a[j]
			}
		}
	}
}
