package alloc

import "unsafe"

const poolSentinel = 0x4a534c50 // "JSLP"
const slotSentinel = 0x53534c4f // "SSLO"

// Pool vends fixed-size slots from a preallocated backing region with O(1)
// allocate/free via an intrusive doubly-linked free list and checked-out
// list. Unlike Arena and GrowingArena, Pool does not implement the
// Allocator interface: every slot is the same size, so there is no
// meaningful "bytes"/"alignment" parameter to accept, exactly as
// the original design notes observe ("specialized pools ... cannot
// reallocate an allocation to a different size").
//
// Slot headers are kept in a side array rather than interleaved with
// payload bytes; this is the idiomatic Go rendering of the same
// invariants (global + per-slot sentinel, payload back-reference, checked
// out vs free list membership) without requiring unsafe struct-in-bytes
// layout tricks for bookkeeping that is never handed to the caller.
type Pool struct {
	sentinel uint32
	payload  []byte
	base     unsafe.Pointer
	slotSize int
	align    int32
	headers  []slotHeader

	freeHead       int32
	checkedOutHead int32
	freeCount      int
	checkedOutCount int
}

type slotHeader struct {
	sentinel uint32
	inUse    bool
	prev     int32
	next     int32
}

const noSlot int32 = -1

// alignmentForSlotSize picks 8, 64, or 4096-byte alignment depending on
// the slot size, matching the tiers spec'd for the pool allocator.
func alignmentForSlotSize(slotSize int) int32 {
	switch {
	case slotSize >= 4096:
		return 4096
	case slotSize >= 64:
		return 64
	default:
		return 8
	}
}

// NewPool creates a pool of fixed-size slots over buf. slotSize must be a
// positive power of two; buf is carved into as many slots of that size as
// fit. Returns nil if slotSize is invalid or buf cannot hold at least one
// slot.
func NewPool(buf []byte, slotSize int) *Pool {
	if slotSize <= 0 || slotSize&(slotSize-1) != 0 {
		return nil
	}
	align := alignmentForSlotSize(slotSize)
	count := len(buf) / slotSize
	if count == 0 {
		return nil
	}

	p := &Pool{
		sentinel:       poolSentinel,
		payload:        buf,
		slotSize:       slotSize,
		align:          align,
		headers:        make([]slotHeader, count),
		freeHead:       noSlot,
		checkedOutHead: noSlot,
	}
	if len(buf) > 0 {
		p.base = unsafe.Pointer(&buf[0])
	}

	for i := count - 1; i >= 0; i-- {
		p.headers[i] = slotHeader{sentinel: slotSentinel, prev: noSlot, next: p.freeHead}
		if p.freeHead != noSlot {
			p.headers[p.freeHead].prev = int32(i)
		}
		p.freeHead = int32(i)
	}
	p.freeCount = count
	return p
}

func (p *Pool) valid() bool {
	return p != nil && p.sentinel == poolSentinel
}

func (p *Pool) slotPtr(i int32) unsafe.Pointer {
	return unsafe.Add(p.base, int(i)*p.slotSize)
}

// unlink removes slot i from the list whose head is *head.
func (p *Pool) unlink(head *int32, i int32) {
	h := &p.headers[i]
	if h.prev != noSlot {
		p.headers[h.prev].next = h.next
	} else {
		*head = h.next
	}
	if h.next != noSlot {
		p.headers[h.next].prev = h.prev
	}
	h.prev, h.next = noSlot, noSlot
}

// pushFront links slot i onto the front of the list whose head is *head.
func (p *Pool) pushFront(head *int32, i int32) {
	h := &p.headers[i]
	h.prev = noSlot
	h.next = *head
	if *head != noSlot {
		p.headers[*head].prev = i
	}
	*head = i
}

// Alloc pops the most-recently-freed slot (LIFO reuse), links it onto the
// checked-out list, optionally zeroes it, and returns its payload pointer.
// Returns nil when the pool is exhausted.
func (p *Pool) Alloc(zeroed bool) unsafe.Pointer {
	if !p.valid() || p.freeHead == noSlot {
		return nil
	}
	i := p.freeHead
	p.unlink(&p.freeHead, i)
	p.freeCount--

	p.headers[i].inUse = true
	p.pushFront(&p.checkedOutHead, i)
	p.checkedOutCount++

	ptr := p.slotPtr(i)
	if zeroed {
		clearBytes(unsafe.Slice((*byte)(ptr), p.slotSize))
	}
	return ptr
}

// indexOf returns the slot index of ptr if it is exactly a slot payload
// address within this pool's backing region, or (0, false) otherwise —
// rejecting interior pointers and pointers into a different pool.
func (p *Pool) indexOf(ptr unsafe.Pointer) (int32, bool) {
	if p.base == nil || ptr == nil {
		return 0, false
	}
	offset := uintptr(ptr) - uintptr(p.base)
	if offset%uintptr(p.slotSize) != 0 {
		return 0, false
	}
	idx := offset / uintptr(p.slotSize)
	if idx >= uintptr(len(p.headers)) {
		return 0, false
	}
	return int32(idx), true
}

// Free releases ptr back to the pool. It re-verifies that ptr is an exact
// slot address within this pool, that both the pool and per-slot
// sentinels are intact, and that the slot is currently checked out,
// before mutating any state. Any failure returns false without altering
// either pool's counts.
func (p *Pool) Free(ptr unsafe.Pointer) bool {
	if !p.valid() {
		return false
	}
	i, ok := p.indexOf(ptr)
	if !ok {
		return false
	}
	h := &p.headers[i]
	if h.sentinel != slotSentinel || !h.inUse {
		return false
	}

	p.unlink(&p.checkedOutHead, i)
	p.checkedOutCount--
	h.inUse = false

	if Debug {
		fillPoison(unsafe.Slice((*byte)(p.slotPtr(i)), p.slotSize))
	}
	p.pushFront(&p.freeHead, i)
	p.freeCount++
	return true
}

// FreeAll sweeps the checked-out list, moving every slot back to the free
// list, debug-filling reclaimed payloads.
func (p *Pool) FreeAll() bool {
	if !p.valid() {
		return false
	}
	for i := p.checkedOutHead; i != noSlot; {
		next := p.headers[i].next
		p.headers[i].inUse = false
		if Debug {
			fillPoison(unsafe.Slice((*byte)(p.slotPtr(i)), p.slotSize))
		}
		p.headers[i].prev, p.headers[i].next = noSlot, p.freeHead
		if p.freeHead != noSlot {
			p.headers[p.freeHead].prev = i
		}
		p.freeHead = i
		p.freeCount++
		i = next
	}
	p.checkedOutHead = noSlot
	p.checkedOutCount = 0
	return true
}

// Stats returns the current free-list count, checked-out count, and total
// slot count. free+checkedOut == total is a loop invariant of the pool.
func (p *Pool) Stats() (free, checkedOut, total int) {
	return p.freeCount, p.checkedOutCount, len(p.headers)
}

// SlotSize returns the fixed payload size of every slot in the pool.
func (p *Pool) SlotSize() int {
	return p.slotSize
}
