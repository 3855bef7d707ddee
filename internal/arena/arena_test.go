package arena

import "testing"

func TestAllocAndDeref(t *testing.T) {
	a := New[int]()
	h1 := a.Alloc(10)
	h2 := a.Alloc(20)

	if *a.Deref(h1) != 10 {
		t.Fatalf("expected 10, got %d", *a.Deref(h1))
	}
	if *a.Deref(h2) != 20 {
		t.Fatalf("expected 20, got %d", *a.Deref(h2))
	}
	if a.Len() != 2 {
		t.Fatalf("expected length 2, got %d", a.Len())
	}
}

func TestZeroHandleIsInvalid(t *testing.T) {
	var h Handle[int]
	if h.Valid() {
		t.Fatalf("zero handle must be invalid")
	}
}

func TestMutationThroughHandlePersists(t *testing.T) {
	type node struct{ n int }
	a := New[node]()
	h := a.Alloc(node{n: 1})
	a.Deref(h).n = 2
	if a.Deref(h).n != 2 {
		t.Fatalf("expected mutation to persist, got %d", a.Deref(h).n)
	}
}
