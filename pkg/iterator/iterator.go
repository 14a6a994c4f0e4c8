// Package iterator provides the traversal helper handed out by the guarded
// containers. Containers always iterate over a snapshot taken at creation
// time, never over live backing storage, so an iterator can outlive later
// inserts without observing them.
package iterator

import "fmt"

// Iterator walks a snapshot slice with an explicit read position.
//
//   - Cheap to create: take a fresh iterator instead of resetting shared state
//   - No lifecycle management: ready to use after construction
//   - Not goroutine-safe: use one iterator per goroutine
type Iterator[T any] struct {
	snapshot []T
	pos      int
}

// New creates an iterator over the given snapshot. The slice is used as-is;
// callers that hand out iterators must pass a copy if the source can change.
func New[T any](snapshot []T) *Iterator[T] {
	return &Iterator[T]{snapshot: snapshot}
}

// HasNext reports whether at least one more element remains.
func (it *Iterator[T]) HasNext() bool {
	return it.pos < len(it.snapshot)
}

// Next returns the next element and advances the position.
// Returns an error once the snapshot is exhausted.
func (it *Iterator[T]) Next() (T, error) {
	var zero T
	if it.pos >= len(it.snapshot) {
		return zero, fmt.Errorf("iterator exhausted after %d elements", len(it.snapshot))
	}

	element := it.snapshot[it.pos]
	it.pos++
	return element, nil
}

// Peek returns the next element without advancing the position.
func (it *Iterator[T]) Peek() (T, error) {
	var zero T
	if it.pos >= len(it.snapshot) {
		return zero, fmt.Errorf("iterator exhausted after %d elements", len(it.snapshot))
	}
	return it.snapshot[it.pos], nil
}

// Rewind resets the read position to the start of the snapshot.
func (it *Iterator[T]) Rewind() {
	it.pos = 0
}

// Len returns the total number of elements in the snapshot.
func (it *Iterator[T]) Len() int {
	return len(it.snapshot)
}
