package alloc

import "testing"

// Concrete scenario from the spec: pool over 512 bytes of 32-byte slots.
// Allocate A, B, C. Free B. Allocate D. D must reuse B's slot (LIFO
// most-recently-freed reuse), and the pool's counts must return to the
// post-alloc-of-three state.
func TestPoolO1Reuse(t *testing.T) {
	buf := make([]byte, 512)
	p := NewPool(buf, 32)
	if p == nil {
		t.Fatal("expected non-nil pool")
	}

	a := p.Alloc(false)
	b := p.Alloc(false)
	c := p.Alloc(false)
	if a == nil || b == nil || c == nil {
		t.Fatal("expected three successful allocations")
	}
	_, checkedOut, total := p.Stats()
	if checkedOut != 3 {
		t.Fatalf("checkedOut = %d, want 3", checkedOut)
	}

	if !p.Free(b) {
		t.Fatal("expected Free(b) to succeed")
	}

	d := p.Alloc(false)
	if d != b {
		t.Fatalf("expected D to reuse B's slot: d=%p b=%p", d, b)
	}

	free, checkedOut, _ := p.Stats()
	if free != 512/32-3 || checkedOut != 3 {
		t.Fatalf("stats after reuse = (free=%d, checkedOut=%d), want (%d, 3)", free, checkedOut, 512/32-3)
	}
	if total != 512/32 {
		t.Fatalf("total = %d, want %d", total, 512/32)
	}
}

func TestPoolInvariantFreePlusCheckedOutEqualsTotal(t *testing.T) {
	buf := make([]byte, 1024)
	p := NewPool(buf, 64)
	var allocated []uintptr
	for i := 0; i < 10; i++ {
		ptr := p.Alloc(false)
		if ptr != nil {
			allocated = append(allocated, uintptrOf(ptr))
		}
		free, checkedOut, total := p.Stats()
		if free+checkedOut != total {
			t.Fatalf("free(%d)+checkedOut(%d) != total(%d)", free, checkedOut, total)
		}
	}
}

func TestPoolFreeRejectsInteriorPointer(t *testing.T) {
	buf := make([]byte, 256)
	p := NewPool(buf, 32)
	ptr := p.Alloc(false)
	interior := addOffset(ptr, 1)
	if p.Free(interior) {
		t.Fatal("expected Free to reject interior pointer")
	}
	free, checkedOut, _ := p.Stats()
	if checkedOut != 1 || free != 7 {
		t.Fatalf("state mutated on rejected free: free=%d checkedOut=%d", free, checkedOut)
	}
}

func TestPoolFreeRejectsWrongPool(t *testing.T) {
	bufA := make([]byte, 256)
	bufB := make([]byte, 256)
	pa := NewPool(bufA, 32)
	pb := NewPool(bufB, 32)
	ptr := pb.Alloc(false)
	if pa.Free(ptr) {
		t.Fatal("expected Free to reject a pointer from a different pool")
	}
}

func TestPoolFreeRejectsDoubleFree(t *testing.T) {
	buf := make([]byte, 256)
	p := NewPool(buf, 32)
	ptr := p.Alloc(false)
	if !p.Free(ptr) {
		t.Fatal("first free should succeed")
	}
	if p.Free(ptr) {
		t.Fatal("second free of the same pointer should fail")
	}
}

func TestPoolFreeAll(t *testing.T) {
	buf := make([]byte, 256)
	p := NewPool(buf, 32)
	for i := 0; i < 8; i++ {
		p.Alloc(false)
	}
	if !p.FreeAll() {
		t.Fatal("expected FreeAll to succeed")
	}
	free, checkedOut, total := p.Stats()
	if free != total || checkedOut != 0 {
		t.Fatalf("after FreeAll: free=%d checkedOut=%d total=%d", free, checkedOut, total)
	}
}

func TestPoolExhaustion(t *testing.T) {
	buf := make([]byte, 64)
	p := NewPool(buf, 32)
	if p.Alloc(false) == nil {
		t.Fatal("expected first alloc to succeed")
	}
	if p.Alloc(false) == nil {
		t.Fatal("expected second alloc to succeed")
	}
	if p.Alloc(false) != nil {
		t.Fatal("expected third alloc to fail: pool exhausted")
	}
}
