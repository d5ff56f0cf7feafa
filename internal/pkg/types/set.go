package types

import (
	"iter"
	"maps"
	"slices"
)

// Set is a mutable hash set over comparable elements, backed by a
// map[T]struct{}.
type Set[T comparable] map[T]struct{}

// NewSet builds a Set seeded with the given elements. Duplicates collapse.
func NewSet[T comparable](data ...T) Set[T] {
	set := make(Set[T])
	set.Add(data...)
	return set
}

// Add inserts the elements into the set in place.
func (s Set[T]) Add(values ...T) {
	for _, val := range values {
		s[val] = struct{}{}
	}
}

// Delete removes the elements from the set in place.
func (s Set[T]) Delete(values ...T) {
	for _, val := range values {
		delete(s, val)
	}
}

// ToIter yields every element of the set.
func (s Set[T]) ToIter() iter.Seq[T] {
	return maps.Keys(s)
}

// ToSlice collects the elements into a fresh slice in unspecified order.
func (s Set[T]) ToSlice() []T {
	return slices.Collect(s.ToIter())
}
