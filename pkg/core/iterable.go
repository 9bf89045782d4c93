package core

import "iter"

// Iterable is the collection a repeated block iterates over: either a count
// (items are 0..n-1) or an explicit list of items.
//
// The zero value is an empty count.
type Iterable[T any] struct {
	count int
	items []T
	list  bool
	// fromInt converts a position to an item for count iterables.
	fromInt func(int) T
}

// IterInt returns an iterable over the integers 0..n-1. A negative n is empty.
func IterInt(n int) Iterable[int] {
	return Iterable[int]{count: max(n, 0), fromInt: func(i int) int { return i }}
}

// IterCount returns an iterable of n items produced by conv, the form used
// when a repeated block over a number binds a non-integer item type.
func IterCount[T any](n int, conv func(int) T) Iterable[T] {
	return Iterable[T]{count: max(n, 0), fromInt: conv}
}

// IterOf returns an iterable over a copy of items.
func IterOf[T any](items ...T) Iterable[T] {
	return Iterable[T]{items: append([]T(nil), items...), list: true}
}

// Len returns the number of items.
func (it Iterable[T]) Len() int {
	if it.list {
		return len(it.items)
	}
	return it.count
}

// At returns the item at i, or the zero value if i is out of range.
func (it Iterable[T]) At(i int) T {
	var zero T
	if i < 0 || i >= it.Len() {
		return zero
	}
	if it.list {
		return it.items[i]
	}
	if it.fromInt == nil {
		return zero
	}
	return it.fromInt(i)
}

// Set replaces the item at i. It does nothing for count iterables or when i
// is out of range.
func (it *Iterable[T]) Set(i int, v T) {
	if it.list && i >= 0 && i < len(it.items) {
		it.items[i] = v
	}
}

// All yields (position, item) pairs in order.
func (it Iterable[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := range it.Len() {
			if !yield(i, it.At(i)) {
				return
			}
		}
	}
}
