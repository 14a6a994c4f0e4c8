// Package lockedlist provides a mutable list gated by a cooperative lock
// flag. While the flag is set, every read and write through the list API is
// rejected; while clear, the list behaves like an ordinary slice.
//
// The flag is plain state, not an OS mutex: it does not block goroutines and
// does not synchronize anything. It exists to catch calls made through the
// API at the wrong time. For a real blocking primitive with ownership, see
// package rlockedlist - the two are deliberately separate mechanisms.
package lockedlist

import (
	"safecoll/pkg/collerr"
	"safecoll/pkg/iterator"
	"safecoll/pkg/primitives"
)

const component = "LockedList"

// LockedList wraps an ordered sequence behind a binary locked/unlocked flag.
// The backing slice is private; snapshots are the only way elements leave in
// bulk, so unchecked mutation through an escaped reference is impossible.
//
// Not goroutine-safe. The flag guards call order, not concurrent access.
type LockedList[T any] struct {
	items  []T
	locked bool
}

// New creates an empty, unlocked list.
func New[T any]() *LockedList[T] {
	return &LockedList[T]{}
}

// NewLocked creates an empty list that starts out locked.
func NewLocked[T any]() *LockedList[T] {
	return &LockedList[T]{locked: true}
}

// FromSlice creates an unlocked list seeded with a copy of items.
func FromSlice[T any](items []T) *LockedList[T] {
	seed := make([]T, len(items))
	copy(seed, items)
	return &LockedList[T]{items: seed}
}

// Acquire sets the lock flag. It fails with CodeAlreadyLocked if the flag is
// already set; this variant has no notion of re-entrance.
func (l *LockedList[T]) Acquire() error {
	if l.locked {
		return collerr.New(collerr.CategoryConcurrency, collerr.CodeAlreadyLocked,
			"list is already locked").
			WithOperation("Acquire", component)
	}
	l.locked = true
	return nil
}

// Release clears the lock flag. It fails with CodeNotLocked if the flag is
// not set.
func (l *LockedList[T]) Release() error {
	if !l.locked {
		return collerr.New(collerr.CategoryConcurrency, collerr.CodeNotLocked,
			"list is not locked").
			WithOperation("Release", component)
	}
	l.locked = false
	return nil
}

// IsLocked reports the lock flag. Always permitted, locked or not.
func (l *LockedList[T]) IsLocked() bool {
	return l.locked
}

// guard rejects the named operation while the flag is set.
func (l *LockedList[T]) guard(operation string) error {
	if l.locked {
		return collerr.New(collerr.CategoryConcurrency, collerr.CodeListLocked,
			"list is locked").
			WithOperation(operation, component)
	}
	return nil
}

func (l *LockedList[T]) boundsCheck(index int, operation string) error {
	if index < 0 || index >= len(l.items) {
		return collerr.New(collerr.CategoryUsage, collerr.CodeIndexOutOfRange,
			"position not in list").
			WithDetail("index %d out of bounds [0, %d)", index, len(l.items)).
			WithOperation(operation, component)
	}
	return nil
}

// At returns the element at index.
func (l *LockedList[T]) At(index int) (T, error) {
	var zero T
	if err := l.guard("At"); err != nil {
		return zero, err
	}
	if err := l.boundsCheck(index, "At"); err != nil {
		return zero, err
	}
	return l.items[index], nil
}

// Set replaces the element at index.
func (l *LockedList[T]) Set(index int, value T) error {
	if err := l.guard("Set"); err != nil {
		return err
	}
	if err := l.boundsCheck(index, "Set"); err != nil {
		return err
	}
	l.items[index] = value
	return nil
}

// Append adds value at the end of the list.
func (l *LockedList[T]) Append(value T) error {
	if err := l.guard("Append"); err != nil {
		return err
	}
	l.items = append(l.items, value)
	return nil
}

// Insert places value at index, shifting later elements right. index may
// equal Len, which appends.
func (l *LockedList[T]) Insert(index int, value T) error {
	if err := l.guard("Insert"); err != nil {
		return err
	}
	if index < 0 || index > len(l.items) {
		return collerr.New(collerr.CategoryUsage, collerr.CodeIndexOutOfRange,
			"position not in list").
			WithDetail("index %d out of bounds [0, %d]", index, len(l.items)).
			WithOperation("Insert", component)
	}

	var zero T
	l.items = append(l.items, zero)
	copy(l.items[index+1:], l.items[index:])
	l.items[index] = value
	return nil
}

// RemoveAt removes and returns the element at index.
func (l *LockedList[T]) RemoveAt(index int) (T, error) {
	var zero T
	if err := l.guard("RemoveAt"); err != nil {
		return zero, err
	}
	if err := l.boundsCheck(index, "RemoveAt"); err != nil {
		return zero, err
	}

	removed := l.items[index]
	l.items = append(l.items[:index], l.items[index+1:]...)
	return removed, nil
}

// Len returns the number of elements. Like every other sequence operation it
// is rejected while the list is locked.
func (l *LockedList[T]) Len() (int, error) {
	if err := l.guard("Len"); err != nil {
		return 0, err
	}
	return len(l.items), nil
}

// Values returns a snapshot copy of the elements.
func (l *LockedList[T]) Values() ([]T, error) {
	if err := l.guard("Values"); err != nil {
		return nil, err
	}
	snapshot := make([]T, len(l.items))
	copy(snapshot, l.items)
	return snapshot, nil
}

// Iterator returns an iterator over a snapshot of the elements.
func (l *LockedList[T]) Iterator() (*iterator.Iterator[T], error) {
	snapshot, err := l.Values()
	if err != nil {
		return nil, err
	}
	return iterator.New(snapshot), nil
}

// TypeOf returns the capability tag for type-identity checks. LockedList has
// no emulation switch; it always reports its own distinct tag.
func (l *LockedList[T]) TypeOf() primitives.Kind {
	return primitives.KindLockedList
}
