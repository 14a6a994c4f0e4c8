// Package constdict provides a write-once mapping: entries may be added but
// never updated or removed, so anything read from it is permanent.
package constdict

import (
	"fmt"
	"strings"

	"safecoll/pkg/collerr"
	"safecoll/pkg/iterator"
	"safecoll/pkg/primitives"
)

const component = "ConstantDict"

// Entry is a single key/value pair as seen by iteration.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// ConstantDict is a mapping whose entries are permanent: once a key is
// present, both its value and its presence last for the lifetime of the
// instance. The backing store is fully encapsulated and no method returns a
// mutable reference to it, so the guarantee is structural rather than the
// convention it was in dynamically typed renditions of this container.
//
// Insertion order is preserved and determines iteration order.
//
// A populated ConstantDict is safe for concurrent reads. Concurrent
// insertion is not synchronized; populate from one goroutine.
type ConstantDict[K comparable, V any] struct {
	entries map[K]V
	order   []K
	asDict  bool
}

// New creates an empty ConstantDict.
func New[K comparable, V any]() *ConstantDict[K, V] {
	return &ConstantDict[K, V]{
		entries: make(map[K]V),
	}
}

// FromMap creates a ConstantDict seeded with the entries of m. The seed is
// copied; later changes to m do not reach the dict. Seed entries are inserted
// in Go's map range order, which is nondeterministic - callers that care
// about iteration order should Insert explicitly instead.
func FromMap[K comparable, V any](m map[K]V) *ConstantDict[K, V] {
	d := New[K, V]()
	for k, v := range m {
		d.entries[k] = v
		d.order = append(d.order, k)
	}
	return d
}

// Insert adds a key/value pair. It fails with CodeKeyConflict if the key is
// already present; the stored value is left untouched.
func (d *ConstantDict[K, V]) Insert(key K, value V) error {
	if existing, ok := d.entries[key]; ok {
		return collerr.New(collerr.CategoryImmutability, collerr.CodeKeyConflict,
			"cannot insert over existing key").
			WithDetail("value for %v is already %v", key, existing).
			WithOperation("Insert", component)
	}

	d.entries[key] = value
	d.order = append(d.order, key)
	return nil
}

// Set behaves like Insert for absent keys and fails with CodeImmutableEntry
// for present ones. It mirrors assignment on the container this type grew
// out of, where assigning an absent key inserted and assigning a present key
// was rejected as an overwrite.
func (d *ConstantDict[K, V]) Set(key K, value V) error {
	if existing, ok := d.entries[key]; ok {
		return collerr.New(collerr.CategoryImmutability, collerr.CodeImmutableEntry,
			"cannot overwrite existing entry").
			WithDetail("value for %v is already %v", key, existing).
			WithOperation("Set", component)
	}

	d.entries[key] = value
	d.order = append(d.order, key)
	return nil
}

// Remove always fails with CodeImmutableEntry. Written entries are permanent;
// the rejection is unconditional and does not depend on whether key exists.
func (d *ConstantDict[K, V]) Remove(key K) error {
	return collerr.New(collerr.CategoryImmutability, collerr.CodeImmutableEntry,
		"entries cannot be removed").
		WithOperation("Remove", component)
}

// Get returns the value stored under key and whether the key is present.
func (d *ConstantDict[K, V]) Get(key K) (V, bool) {
	v, ok := d.entries[key]
	return v, ok
}

// Contains reports whether key is present.
func (d *ConstantDict[K, V]) Contains(key K) bool {
	_, ok := d.entries[key]
	return ok
}

// Len returns the number of entries. It never decreases over the lifetime of
// the instance.
func (d *ConstantDict[K, V]) Len() int {
	return len(d.entries)
}

// Keys returns the keys in insertion order. The slice is a fresh copy.
func (d *ConstantDict[K, V]) Keys() []K {
	keys := make([]K, len(d.order))
	copy(keys, d.order)
	return keys
}

// Values returns the values in insertion order. The slice is a fresh copy.
func (d *ConstantDict[K, V]) Values() []V {
	values := make([]V, 0, len(d.order))
	for _, k := range d.order {
		values = append(values, d.entries[k])
	}
	return values
}

// Iterator returns an iterator over a snapshot of the entries in insertion
// order. Entries inserted after the call are not observed.
func (d *ConstantDict[K, V]) Iterator() *iterator.Iterator[Entry[K, V]] {
	snapshot := make([]Entry[K, V], 0, len(d.order))
	for _, k := range d.order {
		snapshot = append(snapshot, Entry[K, V]{Key: k, Value: d.entries[k]})
	}
	return iterator.New(snapshot)
}

// ActAsDict sets whether the dict emulates the generic mapping capability and
// returns the new flag value. While enabled, TypeOf reports KindMapping so
// "is-a mapping" checks succeed; while disabled, TypeOf reports the distinct
// KindConstantDict tag. The flag affects presentation only, never storage.
func (d *ConstantDict[K, V]) ActAsDict(enable bool) bool {
	d.asDict = enable
	return d.asDict
}

// TypeOf returns the capability tag callers should use for type-identity
// checks on this instance.
func (d *ConstantDict[K, V]) TypeOf() primitives.Kind {
	if d.asDict {
		return primitives.KindMapping
	}
	return primitives.KindConstantDict
}

// String renders the entries in insertion order, map-literal style.
func (d *ConstantDict[K, V]) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, k := range d.order {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(fmt.Sprintf("%v: %v", k, d.entries[k]))
	}
	b.WriteString("}")
	return b.String()
}
