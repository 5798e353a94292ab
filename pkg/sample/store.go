package sample

import (
	"math"
	"sort"
)

// Store keeps one variant's measurements of a single quantity in two
// views of the same multiset: raw insertion order and a maintained
// non-decreasing mirror. Push is O(n); n is the iteration count, tens
// to hundreds, so keeping the mirror sorted is cheaper overall than
// re-sorting at every report.
type Store[T Number[T]] struct {
	raw    []T
	sorted []T
}

// Push appends v to the raw view and inserts it at its sorted position.
func (s *Store[T]) Push(v T) {
	s.raw = append(s.raw, v)
	i := sort.Search(len(s.sorted), func(i int) bool { return v.Less(s.sorted[i]) })
	s.sorted = append(s.sorted, v)
	copy(s.sorted[i+1:], s.sorted[i:])
	s.sorted[i] = v
}

// Clear empties both views.
func (s *Store[T]) Clear() {
	s.raw = s.raw[:0]
	s.sorted = s.sorted[:0]
}

func (s *Store[T]) Len() int {
	return len(s.raw)
}

// Raw returns the samples in insertion order. Callers must not mutate
// the returned slice.
func (s *Store[T]) Raw() []T {
	return s.raw
}

// Sorted returns the non-decreasing view. Callers must not mutate the
// returned slice.
func (s *Store[T]) Sorted() []T {
	return s.sorted
}

func (s *Store[T]) Min() (T, bool) {
	if len(s.sorted) == 0 {
		var zero T
		return zero, false
	}
	return s.sorted[0], true
}

func (s *Store[T]) Max() (T, bool) {
	if len(s.sorted) == 0 {
		var zero T
		return zero, false
	}
	return s.sorted[len(s.sorted)-1], true
}

func (s *Store[T]) Sum() T {
	var sum T
	for _, v := range s.raw {
		sum = sum.Add(v)
	}
	return sum
}

// Mean is the truncating integer mean.
func (s *Store[T]) Mean() (T, bool) {
	if len(s.raw) == 0 {
		var zero T
		return zero, false
	}
	return s.Sum().DivN(len(s.raw)), true
}

// Median is the middle element for odd lengths; for even lengths, the
// truncating mean of the two central elements.
func (s *Store[T]) Median() (T, bool) {
	n := len(s.sorted)
	if n == 0 {
		var zero T
		return zero, false
	}
	if n%2 == 1 {
		return s.sorted[n/2], true
	}
	return s.sorted[n/2-1].Add(s.sorted[n/2]).DivN(2), true
}

// StdDev is the Bessel-corrected sample standard deviation, accumulated
// in floating point around the truncated integer mean. Absent until the
// store holds at least two samples.
func (s *Store[T]) StdDev() (T, bool) {
	n := len(s.raw)
	if n < 2 {
		var zero T
		return zero, false
	}
	mean, _ := s.Mean()
	mu := mean.AsFloat()
	var acc float64
	for _, v := range s.raw {
		d := v.AsFloat() - mu
		acc += d * d
	}
	var zero T
	return zero.FromFloat(math.Sqrt(acc / float64(n-1))), true
}

// Distr is a fixed-width histogram of non-negative bucket counts.
type Distr struct {
	Counts []uint64
}

// Max returns the highest bucket count, 0 when all buckets are empty.
func (d Distr) Max() uint64 {
	var max uint64
	for _, c := range d.Counts {
		if c > max {
			max = c
		}
	}
	return max
}

// Distr buckets the raw samples into n fixed-width buckets spanning
// [min, max]. The rounding places samples into the first and last
// bucket only over a half-bucket width, so peaked unimodal data does
// not under-represent the extremes. A degenerate range (min == max)
// yields all-zero counts: a single distinct value plots nothing useful
// and the caller falls back to the half-resolution rendering.
func (s *Store[T]) Distr(n int, min, max T) Distr {
	counts := make([]uint64, n)
	if min != max {
		span := max.Sub(min).AsFloat()
		for _, v := range s.raw {
			p := v.Sub(min).AsFloat() / span
			b := int(math.RoundToEven(p * float64(n-1)))
			if b < 0 {
				b = 0
			}
			if b > n-1 {
				b = n - 1
			}
			counts[b]++
		}
	}
	return Distr{Counts: counts}
}
