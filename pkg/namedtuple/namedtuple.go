// Package namedtuple provides a fixed named record: an ordered run of values
// addressable both by position and by declared field name, frozen at
// construction.
package namedtuple

import (
	"fmt"
	"reflect"
	"strings"

	"safecoll/pkg/collerr"
	"safecoll/pkg/iterator"
	"safecoll/pkg/primitives"
)

const component = "NamedTuple"

// Field is a single named value passed to New. Argument order fixes the
// record's field order.
type Field struct {
	Name  string
	Value any
}

// F is shorthand for building a Field inline.
func F(name string, value any) Field {
	return Field{Name: name, Value: value}
}

// NamedTuple is a read-only record with a fixed set of named fields. Neither
// the names nor the values can change after construction; there is no
// mutation API at all. The backing storage is private and only copies or
// individual values ever leave the type.
//
// Safe for concurrent use once constructed.
type NamedTuple struct {
	names   []string
	values  []any
	index   map[string]int
	asTuple bool
}

// New builds a record from the given fields. Field order in the argument
// list becomes the record's positional order. It fails with
// CodeInvalidArgument on an empty field name and CodeKeyConflict on a
// duplicate one.
func New(fields ...Field) (*NamedTuple, error) {
	nt := &NamedTuple{
		names:  make([]string, 0, len(fields)),
		values: make([]any, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	for i, f := range fields {
		if f.Name == "" {
			return nil, collerr.New(collerr.CategoryUsage, collerr.CodeInvalidArgument,
				"field name cannot be empty").
				WithDetail("field at position %d", i).
				WithOperation("New", component)
		}
		if _, exists := nt.index[f.Name]; exists {
			return nil, collerr.New(collerr.CategoryUsage, collerr.CodeKeyConflict,
				"duplicate field name").
				WithDetail("field %q declared more than once", f.Name).
				WithOperation("New", component)
		}
		nt.index[f.Name] = i
		nt.names = append(nt.names, f.Name)
		nt.values = append(nt.values, f.Value)
	}

	return nt, nil
}

// Find returns the value of the named field. It fails with CodeKeyNotFound
// if the name was not declared at construction.
func (nt *NamedTuple) Find(name string) (any, error) {
	i, ok := nt.index[name]
	if !ok {
		return nil, collerr.New(collerr.CategoryUsage, collerr.CodeKeyNotFound,
			"field not in tuple").
			WithDetail("no field named %q", name).
			WithOperation("Find", component)
	}
	return nt.values[i], nil
}

// At returns the value at the given position. It fails with
// CodeIndexOutOfRange outside [0, Len).
func (nt *NamedTuple) At(index int) (any, error) {
	if index < 0 || index >= len(nt.values) {
		return nil, collerr.New(collerr.CategoryUsage, collerr.CodeIndexOutOfRange,
			"position not in tuple").
			WithDetail("index %d out of bounds [0, %d)", index, len(nt.values)).
			WithOperation("At", component)
	}
	return nt.values[index], nil
}

// AtName returns the value of the named field. It is the name-addressed
// counterpart of At and equivalent to Find.
func (nt *NamedTuple) AtName(name string) (any, error) {
	return nt.Find(name)
}

// Keys returns the field names in declared order. The slice is a fresh copy.
func (nt *NamedTuple) Keys() []string {
	keys := make([]string, len(nt.names))
	copy(keys, nt.names)
	return keys
}

// Items returns the field VALUES in declared order, not name/value pairs.
// The name is a historical misnomer inherited from the container this type
// reproduces; it is kept for compatibility. Use Keys for the names.
func (nt *NamedTuple) Items() []any {
	values := make([]any, len(nt.values))
	copy(values, nt.values)
	return values
}

// Len returns the number of fields.
func (nt *NamedTuple) Len() int {
	return len(nt.values)
}

// Contains reports whether any field holds the given value. Comparison uses
// reflect.DeepEqual so non-comparable values are handled.
func (nt *NamedTuple) Contains(value any) bool {
	for _, v := range nt.values {
		if reflect.DeepEqual(v, value) {
			return true
		}
	}
	return false
}

// Iterator returns an iterator over the values in declared order.
func (nt *NamedTuple) Iterator() *iterator.Iterator[any] {
	return iterator.New(nt.Items())
}

// ActAsTuple sets whether the record emulates the generic sequence capability
// and returns the new flag value. While enabled, TypeOf reports KindSequence;
// while disabled, the distinct KindNamedTuple tag. Presentation only.
func (nt *NamedTuple) ActAsTuple(enable bool) bool {
	nt.asTuple = enable
	return nt.asTuple
}

// TypeOf returns the capability tag callers should use for type-identity
// checks on this instance.
func (nt *NamedTuple) TypeOf() primitives.Kind {
	if nt.asTuple {
		return primitives.KindSequence
	}
	return primitives.KindNamedTuple
}

// String renders the record as (name=value, ...) with numeric values bare
// and everything else single-quoted.
func (nt *NamedTuple) String() string {
	var b strings.Builder
	b.WriteString("(")
	for i, name := range nt.names {
		if i > 0 {
			b.WriteString(", ")
		}
		v := nt.values[i]
		if isNumeric(v) {
			b.WriteString(fmt.Sprintf("%s=%v", name, v))
		} else {
			b.WriteString(fmt.Sprintf("%s='%v'", name, v))
		}
	}
	b.WriteString(")")
	return b.String()
}

// IsFloatLike reports whether value should be treated as floating-point.
// Classification is by dynamic type, not textual form: IsFloatLike(2.5) is
// true while IsFloatLike(2) and IsFloatLike("2.5") are both false.
func IsFloatLike(value any) bool {
	switch value.(type) {
	case float32, float64:
		return true
	default:
		return false
	}
}

func isNumeric(value any) bool {
	if IsFloatLike(value) {
		return true
	}
	switch value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	default:
		return false
	}
}
