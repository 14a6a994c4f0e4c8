package namedtuple

import (
	"testing"

	"safecoll/pkg/collerr"
	"safecoll/pkg/primitives"
)

func mustNew(t *testing.T, fields ...Field) *NamedTuple {
	t.Helper()
	nt, err := New(fields...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return nt
}

func sample(t *testing.T) *NamedTuple {
	return mustNew(t, F("a", 1), F("b", 2.5), F("c", "x"))
}

func TestKeysAndItems(t *testing.T) {
	nt := sample(t)

	expectedKeys := []string{"a", "b", "c"}
	keys := nt.Keys()
	if len(keys) != len(expectedKeys) {
		t.Fatalf("expected %d keys, got %d", len(expectedKeys), len(keys))
	}
	for i, k := range expectedKeys {
		if keys[i] != k {
			t.Errorf("key %d: expected %q, got %q", i, k, keys[i])
		}
	}

	// Items returns values in declared order, not pairs.
	expectedItems := []any{1, 2.5, "x"}
	items := nt.Items()
	if len(items) != len(expectedItems) {
		t.Fatalf("expected %d items, got %d", len(expectedItems), len(items))
	}
	for i, v := range expectedItems {
		if items[i] != v {
			t.Errorf("item %d: expected %v, got %v", i, v, items[i])
		}
	}
}

func TestPositionalAndNamedAccessAgree(t *testing.T) {
	nt := sample(t)

	byIndex, err := nt.At(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	byName, err := nt.AtName("b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if byIndex != 2.5 || byName != 2.5 {
		t.Errorf("At(1)=%v and AtName(b)=%v, both should be 2.5", byIndex, byName)
	}
}

func TestFind(t *testing.T) {
	nt := sample(t)

	v, err := nt.Find("c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "x" {
		t.Errorf("expected 'x', got %v", v)
	}

	_, err = nt.Find("z")
	if err == nil {
		t.Fatal("Find of undeclared field should fail")
	}
	if !collerr.HasCode(err, collerr.CodeKeyNotFound) {
		t.Errorf("expected KEY_NOT_FOUND, got %v", err)
	}
}

func TestAtBounds(t *testing.T) {
	nt := sample(t)

	tests := []struct {
		name  string
		index int
	}{
		{"negative", -1},
		{"past end", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := nt.At(tt.index)
			if err == nil {
				t.Fatal("out of bounds access should fail")
			}
			if !collerr.HasCode(err, collerr.CodeIndexOutOfRange) {
				t.Errorf("expected INDEX_OUT_OF_RANGE, got %v", err)
			}
		})
	}
}

func TestConstructionErrors(t *testing.T) {
	_, err := New(F("a", 1), F("a", 2))
	if err == nil {
		t.Fatal("duplicate field name should fail")
	}
	if !collerr.HasCode(err, collerr.CodeKeyConflict) {
		t.Errorf("expected KEY_CONFLICT, got %v", err)
	}

	_, err = New(F("", 1))
	if err == nil {
		t.Fatal("empty field name should fail")
	}
	if !collerr.HasCode(err, collerr.CodeInvalidArgument) {
		t.Errorf("expected INVALID_ARGUMENT, got %v", err)
	}
}

func TestEmptyTuple(t *testing.T) {
	nt := mustNew(t)

	if nt.Len() != 0 {
		t.Errorf("expected empty tuple, Len=%d", nt.Len())
	}
	if got := nt.String(); got != "()" {
		t.Errorf("empty tuple should render (), got %q", got)
	}
	if _, err := nt.At(0); err == nil {
		t.Error("At on empty tuple should fail")
	}
}

func TestContains(t *testing.T) {
	nt := sample(t)

	if !nt.Contains(2.5) {
		t.Error("tuple should contain 2.5")
	}
	if nt.Contains(99) {
		t.Error("tuple should not contain 99")
	}
}

func TestIsFloatLike(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected bool
	}{
		{"float64", 2.5, true},
		{"float32", float32(1.5), true},
		{"whole-valued float", 2.0, true},
		{"int", 2, false},
		{"string of a float", "2.5", false},
		{"nil", nil, false},
		{"bool", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFloatLike(tt.value); got != tt.expected {
				t.Errorf("IsFloatLike(%v) = %t, want %t", tt.value, got, tt.expected)
			}
		})
	}
}

func TestActAsTuple(t *testing.T) {
	nt := sample(t)

	if nt.TypeOf() != primitives.KindNamedTuple {
		t.Errorf("default typeof should be distinct, got %v", nt.TypeOf())
	}

	if got := nt.ActAsTuple(true); !got {
		t.Error("ActAsTuple(true) should return true")
	}
	if nt.TypeOf() != primitives.KindSequence {
		t.Errorf("emulating tuple should report KindSequence, got %v", nt.TypeOf())
	}

	nt.ActAsTuple(false)
	if nt.TypeOf() != primitives.KindNamedTuple {
		t.Errorf("disabled emulation should report distinct kind, got %v", nt.TypeOf())
	}
}

func TestString(t *testing.T) {
	nt := sample(t)

	if got := nt.String(); got != "(a=1, b=2.5, c='x')" {
		t.Errorf("unexpected rendering: %q", got)
	}
}

func TestItemsIsACopy(t *testing.T) {
	nt := sample(t)

	items := nt.Items()
	items[0] = "mutated"

	v, _ := nt.At(0)
	if v != 1 {
		t.Errorf("mutating the returned slice must not reach the record, got %v", v)
	}
}

func TestIterator(t *testing.T) {
	nt := sample(t)

	it := nt.Iterator()
	if it.Len() != 3 {
		t.Fatalf("expected 3 elements, got %d", it.Len())
	}

	first, err := it.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != 1 {
		t.Errorf("expected first value 1, got %v", first)
	}
}
