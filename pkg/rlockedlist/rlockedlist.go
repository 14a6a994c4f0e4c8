// Package rlockedlist provides a mutable list guarded by a reentrant,
// owner-tracked lock. Unlike the cooperative flag in package lockedlist,
// this is a real synchronization primitive: acquiring while another owner
// holds the lock parks the caller on a condition variable until the holder
// fully releases.
//
// Ownership is keyed on an explicit *primitives.OwnerToken passed with each
// call, because goroutines carry no ambient identity of their own. One token
// typically maps to one thread of control.
package rlockedlist

import (
	"context"
	"sync"

	"safecoll/pkg/collerr"
	"safecoll/pkg/iterator"
	"safecoll/pkg/primitives"
)

const component = "RLockedList"

// RLockedList is an ordered sequence whose access is gated by a reentrant
// owner lock. The holder may acquire repeatedly (the hold count increments)
// and must release the same number of times before the list becomes
// available again. While held, every sequence operation from a non-owner is
// rejected; the holder operates freely, including reentrant internal calls.
//
// Waiters blocked in Acquire are woken when the hold count reaches zero.
// Wake order is unordered-but-fair; no strict FIFO promise is made.
type RLockedList[T any] struct {
	mu    sync.Mutex
	freed *sync.Cond // signaled when the hold count drops to zero

	owner *primitives.OwnerToken
	holds int
	items []T
}

// New creates an empty, unowned list.
func New[T any]() *RLockedList[T] {
	l := &RLockedList[T]{}
	l.freed = sync.NewCond(&l.mu)
	return l
}

// FromSlice creates an unowned list seeded with a copy of items.
func FromSlice[T any](items []T) *RLockedList[T] {
	l := New[T]()
	l.items = make([]T, len(items))
	copy(l.items, items)
	return l
}

func nilTokenErr(operation string) error {
	return collerr.New(collerr.CategoryUsage, collerr.CodeInvalidArgument,
		"owner token cannot be nil").
		WithOperation(operation, component)
}

// Acquire claims the lock for tok. If the list is free it becomes owned by
// tok with a hold count of one; if tok already owns it the count increments;
// if another token owns it the caller blocks until the holder fully releases
// and the lock can be claimed. Blocking is indefinite; use AcquireContext
// for a cancellable variant.
func (l *RLockedList[T]) Acquire(tok *primitives.OwnerToken) error {
	if tok == nil {
		return nilTokenErr("Acquire")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.owner != nil && l.owner.Equals(tok) {
		l.holds++
		return nil
	}

	for l.owner != nil {
		l.freed.Wait()
	}

	l.owner = tok
	l.holds = 1
	return nil
}

// AcquireContext is Acquire with cancellation. When ctx is never cancelled
// the behavior is identical to Acquire; when ctx ends first, the wait is
// abandoned and the context's error is returned wrapped with CodeListLocked
// context. A strict superset of the legacy indefinite-blocking contract.
func (l *RLockedList[T]) AcquireContext(ctx context.Context, tok *primitives.OwnerToken) error {
	if tok == nil {
		return nilTokenErr("AcquireContext")
	}
	if err := ctx.Err(); err != nil {
		return collerr.Wrap(err, collerr.CodeListLocked, "AcquireContext", component)
	}

	// The reentrant path never waits, so it is taken synchronously here;
	// once the waiter goroutine exists, a cancelled context must not be
	// able to leave a hold behind.
	l.mu.Lock()
	if l.owner != nil && l.owner.Equals(tok) {
		l.holds++
		l.mu.Unlock()
		return nil
	}
	l.mu.Unlock()

	// granted and cancelled are both decided under l.mu, so exactly one
	// side of the race wins.
	var granted, cancelled bool
	acquired := make(chan struct{})

	go func() {
		l.mu.Lock()
		for l.owner != nil && !cancelled {
			l.freed.Wait()
		}
		if cancelled {
			l.mu.Unlock()
			return
		}
		l.owner = tok
		l.holds = 1
		granted = true
		l.mu.Unlock()
		close(acquired)
	}()

	select {
	case <-acquired:
		return nil
	case <-ctx.Done():
		l.mu.Lock()
		if granted {
			// The waiter won the race before the context fired.
			l.mu.Unlock()
			return nil
		}
		cancelled = true
		l.mu.Unlock()
		l.freed.Broadcast()
		return collerr.Wrap(ctx.Err(), collerr.CodeListLocked, "AcquireContext", component)
	}
}

// TryAcquire claims the lock without blocking. It returns true when tok now
// holds the lock (fresh claim or reentrant increment) and false when another
// token holds it or tok is nil.
func (l *RLockedList[T]) TryAcquire(tok *primitives.OwnerToken) bool {
	if tok == nil {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.owner != nil {
		if l.owner.Equals(tok) {
			l.holds++
			return true
		}
		return false
	}
	l.owner = tok
	l.holds = 1
	return true
}

// Release drops one hold. It fails with CodeNotOwner unless tok is the
// current owner. When the count reaches zero the owner clears and blocked
// acquirers are woken.
func (l *RLockedList[T]) Release(tok *primitives.OwnerToken) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if tok == nil || l.owner == nil || !l.owner.Equals(tok) {
		return collerr.New(collerr.CategoryConcurrency, collerr.CodeNotOwner,
			"lock is not held by this owner").
			WithDetail("held by %v, release attempted by %v", l.owner, tok).
			WithOperation("Release", component)
	}

	l.holds--
	if l.holds == 0 {
		l.owner = nil
		l.freed.Broadcast()
	}
	return nil
}

// IsLocked reports whether any owner currently holds the lock.
func (l *RLockedList[T]) IsLocked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.owner != nil
}

// HoldCount returns the current reentrancy count, zero when free.
func (l *RLockedList[T]) HoldCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holds
}

// Owner returns the current owner token, nil when free.
func (l *RLockedList[T]) Owner() *primitives.OwnerToken {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.owner
}

// guard rejects the named operation when the list is held by someone other
// than tok. Callers must hold l.mu.
func (l *RLockedList[T]) guard(tok *primitives.OwnerToken, operation string) error {
	if l.owner != nil && !l.owner.Equals(tok) {
		return collerr.New(collerr.CategoryConcurrency, collerr.CodeListLocked,
			"list is locked by another owner").
			WithDetail("held by %v", l.owner).
			WithOperation(operation, component)
	}
	return nil
}

func (l *RLockedList[T]) boundsCheck(index int, operation string) error {
	if index < 0 || index >= len(l.items) {
		return collerr.New(collerr.CategoryUsage, collerr.CodeIndexOutOfRange,
			"position not in list").
			WithDetail("index %d out of bounds [0, %d)", index, len(l.items)).
			WithOperation(operation, component)
	}
	return nil
}

// At returns the element at index. Rejected with CodeListLocked when a
// different owner holds the lock.
func (l *RLockedList[T]) At(tok *primitives.OwnerToken, index int) (T, error) {
	var zero T
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.guard(tok, "At"); err != nil {
		return zero, err
	}
	if err := l.boundsCheck(index, "At"); err != nil {
		return zero, err
	}
	return l.items[index], nil
}

// Set replaces the element at index.
func (l *RLockedList[T]) Set(tok *primitives.OwnerToken, index int, value T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.guard(tok, "Set"); err != nil {
		return err
	}
	if err := l.boundsCheck(index, "Set"); err != nil {
		return err
	}
	l.items[index] = value
	return nil
}

// Append adds value at the end of the list.
func (l *RLockedList[T]) Append(tok *primitives.OwnerToken, value T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.guard(tok, "Append"); err != nil {
		return err
	}
	l.items = append(l.items, value)
	return nil
}

// RemoveAt removes and returns the element at index.
func (l *RLockedList[T]) RemoveAt(tok *primitives.OwnerToken, index int) (T, error) {
	var zero T
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.guard(tok, "RemoveAt"); err != nil {
		return zero, err
	}
	if err := l.boundsCheck(index, "RemoveAt"); err != nil {
		return zero, err
	}

	removed := l.items[index]
	l.items = append(l.items[:index], l.items[index+1:]...)
	return removed, nil
}

// Len returns the number of elements.
func (l *RLockedList[T]) Len(tok *primitives.OwnerToken) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.guard(tok, "Len"); err != nil {
		return 0, err
	}
	return len(l.items), nil
}

// Values returns a snapshot copy of the elements.
func (l *RLockedList[T]) Values(tok *primitives.OwnerToken) ([]T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.guard(tok, "Values"); err != nil {
		return nil, err
	}
	snapshot := make([]T, len(l.items))
	copy(snapshot, l.items)
	return snapshot, nil
}

// Iterator returns an iterator over a snapshot of the elements.
func (l *RLockedList[T]) Iterator(tok *primitives.OwnerToken) (*iterator.Iterator[T], error) {
	snapshot, err := l.Values(tok)
	if err != nil {
		return nil, err
	}
	return iterator.New(snapshot), nil
}

// TypeOf returns the capability tag for type-identity checks.
func (l *RLockedList[T]) TypeOf() primitives.Kind {
	return primitives.KindRLockedList
}
