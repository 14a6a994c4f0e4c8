package iterator

import "testing"

func TestIterator(t *testing.T) {
	it := New([]int{10, 20, 30})

	if it.Len() != 3 {
		t.Errorf("expected Len 3, got %d", it.Len())
	}

	var got []int
	for it.HasNext() {
		v, err := it.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, v)
	}

	expected := []int{10, 20, 30}
	for i, v := range expected {
		if got[i] != v {
			t.Errorf("element %d: expected %d, got %d", i, v, got[i])
		}
	}

	if it.HasNext() {
		t.Error("iterator should be exhausted")
	}
	if _, err := it.Next(); err == nil {
		t.Error("Next past the end should fail")
	}
}

func TestIteratorPeek(t *testing.T) {
	it := New([]string{"a", "b"})

	v, err := it.Peek()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "a" {
		t.Errorf("expected peek 'a', got %q", v)
	}

	// Peek does not advance.
	v, _ = it.Next()
	if v != "a" {
		t.Errorf("expected next 'a', got %q", v)
	}

	it.Next()
	if _, err := it.Peek(); err == nil {
		t.Error("Peek past the end should fail")
	}
}

func TestIteratorRewind(t *testing.T) {
	it := New([]int{1, 2})
	it.Next()
	it.Next()

	it.Rewind()
	if !it.HasNext() {
		t.Fatal("rewound iterator should have elements")
	}
	v, _ := it.Next()
	if v != 1 {
		t.Errorf("expected 1 after rewind, got %d", v)
	}
}

func TestIteratorEmpty(t *testing.T) {
	it := New[int](nil)

	if it.HasNext() {
		t.Error("empty iterator should have no elements")
	}
	if it.Len() != 0 {
		t.Errorf("expected Len 0, got %d", it.Len())
	}
	if _, err := it.Next(); err == nil {
		t.Error("Next on empty iterator should fail")
	}
}
