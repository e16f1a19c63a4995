package alloc

import (
	"testing"
	"unsafe"
)

func TestGrowingArenaSpansMultipleChunks(t *testing.T) {
	g := NewGrowingArena(256, 8)
	var last unsafe.Pointer
	for i := 0; i < 64; i++ {
		p := g.Allocate(32, 8, false)
		if p == nil {
			t.Fatalf("allocation %d failed", i)
		}
		last = p
	}
	if g.head == g.tail {
		t.Fatal("expected allocations to span more than one chunk")
	}
	_ = last
}

func TestGrowingArenaResetReusesChunks(t *testing.T) {
	g := NewGrowingArena(256, 8)
	for i := 0; i < 64; i++ {
		g.Allocate(32, 8, false)
	}
	g.Reset()
	if g.freeList == nil {
		t.Fatal("expected retired chunks to land on the free list after reset")
	}
	if g.head.next != nil {
		t.Fatal("expected only the head chunk to remain live after reset")
	}
}

func TestGrowingArenaReallocateInPlaceOnTail(t *testing.T) {
	g := NewGrowingArena(256, 8)
	p := g.Allocate(16, 8, false)
	b := unsafe.Slice((*byte)(p), 16)
	for i := range b {
		b[i] = byte(i)
	}
	grown := g.Reallocate(p, 32, 8)
	if grown != p {
		t.Fatal("expected in-place growth on tail chunk")
	}
}

func TestGrowingArenaLargeAllocationGetsSizedChunk(t *testing.T) {
	g := NewGrowingArena(64, 8)
	p := g.Allocate(10_000, 8, false)
	if p == nil {
		t.Fatal("expected large allocation to succeed via an oversized chunk")
	}
}
