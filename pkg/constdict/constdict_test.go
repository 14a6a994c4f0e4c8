package constdict

import (
	"fmt"
	"testing"

	"safecoll/pkg/collerr"
	"safecoll/pkg/primitives"
)

func TestInsertAndGet(t *testing.T) {
	d := New[string, int]()

	if err := d.Insert("answer", 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, ok := d.Get("answer")
	if !ok {
		t.Fatal("inserted key should be present")
	}
	if v != 42 {
		t.Errorf("expected 42, got %d", v)
	}
	if !d.Contains("answer") {
		t.Error("Contains should report inserted key")
	}
	if d.Contains("missing") {
		t.Error("Contains should not report absent key")
	}
}

func TestInsertConflictKeepsValue(t *testing.T) {
	d := New[string, int]()
	if err := d.Insert("k", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := d.Insert("k", 2)
	if err == nil {
		t.Fatal("second insert of same key should fail")
	}
	if !collerr.HasCode(err, collerr.CodeKeyConflict) {
		t.Errorf("expected KEY_CONFLICT, got %v", err)
	}

	v, _ := d.Get("k")
	if v != 1 {
		t.Errorf("stored value must be unchanged, got %d", v)
	}
}

func TestSet(t *testing.T) {
	d := New[string, int]()

	// Absent key: behaves like insert.
	if err := d.Set("k", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Present key: rejected as an overwrite.
	err := d.Set("k", 2)
	if err == nil {
		t.Fatal("Set on existing key should fail")
	}
	if !collerr.HasCode(err, collerr.CodeImmutableEntry) {
		t.Errorf("expected IMMUTABLE_ENTRY, got %v", err)
	}
}

func TestRemoveAlwaysFails(t *testing.T) {
	d := New[string, int]()
	d.Insert("k", 1)

	tests := []struct {
		name string
		key  string
	}{
		{"existing key", "k"},
		{"absent key", "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.Remove(tt.key)
			if err == nil {
				t.Fatal("Remove should always fail")
			}
			if !collerr.HasCode(err, collerr.CodeImmutableEntry) {
				t.Errorf("expected IMMUTABLE_ENTRY, got %v", err)
			}
		})
	}

	if d.Len() != 1 {
		t.Errorf("Len changed after Remove attempts: %d", d.Len())
	}
}

func TestLenNeverDecreases(t *testing.T) {
	d := New[string, int]()

	maxSeen := 0
	ops := []func(){
		func() { d.Insert("a", 1) },
		func() { d.Insert("a", 2) }, // conflict
		func() { d.Remove("a") },    // rejected
		func() { d.Insert("b", 2) },
		func() { d.Set("a", 9) }, // rejected
		func() { d.Remove("z") }, // rejected
	}

	for i, op := range ops {
		op()
		if d.Len() < maxSeen {
			t.Fatalf("Len decreased after op %d: %d < %d", i, d.Len(), maxSeen)
		}
		maxSeen = d.Len()
	}
}

func TestInsertionOrder(t *testing.T) {
	d := New[string, int]()
	d.Insert("c", 3)
	d.Insert("a", 1)
	d.Insert("b", 2)

	expectedKeys := []string{"c", "a", "b"}
	keys := d.Keys()
	for i, k := range expectedKeys {
		if keys[i] != k {
			t.Errorf("key %d: expected %q, got %q", i, k, keys[i])
		}
	}

	expectedValues := []int{3, 1, 2}
	values := d.Values()
	for i, v := range expectedValues {
		if values[i] != v {
			t.Errorf("value %d: expected %d, got %d", i, v, values[i])
		}
	}
}

func TestFromMap(t *testing.T) {
	d := FromMap(map[string]int{"x": 1, "y": 2})

	if d.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", d.Len())
	}
	if v, _ := d.Get("x"); v != 1 {
		t.Errorf("expected x=1, got %d", v)
	}

	// Seeded entries are as permanent as inserted ones.
	if err := d.Insert("x", 9); err == nil {
		t.Error("insert over seeded key should fail")
	}
}

func TestIteratorSnapshot(t *testing.T) {
	d := New[string, int]()
	d.Insert("a", 1)
	d.Insert("b", 2)

	it := d.Iterator()
	d.Insert("c", 3)

	if it.Len() != 2 {
		t.Errorf("iterator should not observe later inserts, Len=%d", it.Len())
	}

	first, err := it.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Key != "a" || first.Value != 1 {
		t.Errorf("expected a=1 first, got %v=%v", first.Key, first.Value)
	}
}

func TestActAsDict(t *testing.T) {
	d := New[string, int]()

	if d.TypeOf() != primitives.KindConstantDict {
		t.Errorf("default typeof should be distinct, got %v", d.TypeOf())
	}

	if got := d.ActAsDict(true); !got {
		t.Error("ActAsDict(true) should return true")
	}
	if d.TypeOf() != primitives.KindMapping {
		t.Errorf("emulating dict should report KindMapping, got %v", d.TypeOf())
	}

	if got := d.ActAsDict(false); got {
		t.Error("ActAsDict(false) should return false")
	}
	if d.TypeOf() != primitives.KindConstantDict {
		t.Errorf("disabled emulation should report distinct kind, got %v", d.TypeOf())
	}
}

func TestString(t *testing.T) {
	d := New[string, int]()
	d.Insert("a", 1)
	d.Insert("b", 2)

	if got := d.String(); got != "{a: 1, b: 2}" {
		t.Errorf("unexpected rendering: %q", got)
	}

	empty := New[string, int]()
	if got := empty.String(); got != "{}" {
		t.Errorf("empty dict should render {}, got %q", got)
	}
}

func BenchmarkInsert(b *testing.B) {
	d := New[int, int]()
	for i := 0; i < b.N; i++ {
		d.Insert(i, i)
	}
}

func BenchmarkGet(b *testing.B) {
	d := New[string, int]()
	for i := 0; i < 1000; i++ {
		d.Insert(fmt.Sprintf("key-%d", i), i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Get("key-500")
	}
}
