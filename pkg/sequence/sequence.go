package sequence

import (
	"iter"
	"math"
)

// Iterator is a generic, immutable, chainable iterator for any type T.
type Iterator[T any] struct {
	seq iter.Seq[T]
}

// From creates a new Iterator from a slice of T.
func From[T any](data []T) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			for _, v := range data {
				if !yield(v) {
					return
				}
			}
		},
	}
}

// Steps yields start, start+step, ... up to and including end. Values are
// computed as start+i*step so no error accumulates along the range. A
// non-positive step or end < start yields nothing.
func Steps(start, end, step float64) *Iterator[float64] {
	n := StepCount(start, end, step)
	return &Iterator[float64]{
		seq: func(yield func(float64) bool) {
			for i := 0; i < n; i++ {
				if !yield(start + float64(i)*step) {
					return
				}
			}
		},
	}
}

// MaxSteps caps StepCount. Ranges with more values report MaxSteps.
const MaxSteps = 1 << 30

// StepCount is the number of values Steps yields, saturated at MaxSteps.
func StepCount(start, end, step float64) int {
	if !(step > 0) || end < start || math.IsInf(end-start, 0) {
		return 0
	}
	// tolerate end being off by rounding, e.g. 0.1+0.2
	q := math.Floor((end-start)/step + 1e-9)
	if !(q < MaxSteps-1) {
		return MaxSteps
	}
	return int(q) + 1
}

// Seq returns the underlying sequence function for the iterator.
func (i *Iterator[T]) Seq() iter.Seq[T] {
	return i.seq
}

// Pull pulls the next element from the iterator and returns it along with a boolean indicating whether the element was valid.
func (i *Iterator[T]) Pull() (next func() (T, bool), stop func()) {
	return iter.Pull(i.Seq())
}

// Collect exhausts the iterator and returns a slice of all elements.
func (i *Iterator[T]) Collect() []T {
	var out []T
	i.seq(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}
