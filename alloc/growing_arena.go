package alloc

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

const growingArenaSentinel = 0x4a534c47 // "JSLG"

// defaultChunkSize is used when NewGrowingArena is given a non-positive
// size, matching the "default chunk size" knob spec'd for the string
// builder's sibling chunk-chain container.
const defaultChunkSize = 64 * 1024

// chunkSlack is extra headroom requested on top of a chunk's header and
// payload when sizing a fresh chunk, so back-to-back small allocations
// after a large one don't immediately force another chunk.
const chunkSlack = 256

// chunk is a single OS-page-backed region in a GrowingArena's chain. Each
// chunk is itself a bump arena.
type chunk struct {
	prev, next *chunk
	arena      *Arena
	size       int
}

// GrowingArena is a chain of OS-page-backed chunks, each a bump arena.
// Allocation first tries the tail chunk; when that chunk cannot satisfy a
// request, a new chunk is obtained (from a free list of retired chunks,
// or freshly mmap'd) and appended. Reallocation of the most recent
// allocation in the tail chunk is handled in place; any other allocation
// is given a fresh block plus a copy.
type GrowingArena struct {
	sentinel         uint64
	head, tail       *chunk
	freeList         *chunk
	defaultChunkSize int
	chunkAlign       int32
}

// NewGrowingArena creates a growing arena. defaultChunkSize <= 0 selects a
// built-in default.
func NewGrowingArena(defaultChunkSizeArg int, chunkAlign int32) *GrowingArena {
	if defaultChunkSizeArg <= 0 {
		defaultChunkSizeArg = defaultChunkSize
	}
	if chunkAlign <= 0 {
		chunkAlign = 8
	}
	return &GrowingArena{
		sentinel:         growingArenaSentinel,
		defaultChunkSize: defaultChunkSizeArg,
		chunkAlign:       chunkAlign,
	}
}

func (g *GrowingArena) valid() bool {
	return g != nil && g.sentinel == growingArenaSentinel
}

// mmapChunk commits size bytes of anonymous, private memory from the OS,
// mirroring VirtualAlloc/mmap-backed chunk acquisition.
func mmapChunk(size int) (*chunk, error) {
	buf, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}
	return &chunk{arena: NewArena(buf), size: size}, nil
}

// acquireChunk pops a big-enough chunk off the free list, or mmaps a new
// one sized to satisfy need.
func (g *GrowingArena) acquireChunk(need int) *chunk {
	size := g.defaultChunkSize
	want := roundUpPow2(need + headerSize + chunkSlack)
	if want > size {
		size = want
	}

	var prev *chunk
	for c := g.freeList; c != nil; c = c.next {
		if c.size >= size {
			if prev == nil {
				g.freeList = c.next
			} else {
				prev.next = c.next
			}
			c.arena.Reset()
			c.prev, c.next = nil, nil
			return c
		}
		prev = c
	}

	c, err := mmapChunk(size)
	if err != nil {
		return nil
	}
	return c
}

func (g *GrowingArena) appendChunk(c *chunk) {
	c.prev = g.tail
	c.next = nil
	if g.tail != nil {
		g.tail.next = c
	} else {
		g.head = c
	}
	g.tail = c
}

// Allocate implements Allocator.
func (g *GrowingArena) Allocate(bytes int64, alignment int32, zeroed bool) unsafe.Pointer {
	if !g.valid() || bytes < 0 || !isPowerOfTwo(alignment) {
		return nil
	}
	if g.tail != nil {
		if p := g.tail.arena.Allocate(bytes, alignment, zeroed); p != nil {
			return p
		}
	}
	c := g.acquireChunk(int(bytes))
	if c == nil {
		return nil
	}
	g.appendChunk(c)
	return c.arena.Allocate(bytes, alignment, zeroed)
}

// Reallocate implements Allocator. The fast path applies when allocation
// is the most recent allocation of the tail chunk; otherwise a fresh
// allocation plus copy is performed, exactly as for a bare Arena.
func (g *GrowingArena) Reallocate(allocation unsafe.Pointer, newBytes int64, alignment int32) unsafe.Pointer {
	if !g.valid() || allocation == nil || newBytes < 0 || !isPowerOfTwo(alignment) {
		return nil
	}
	for c := g.tail; c != nil; c = c.prev {
		base := uintptr(c.arena.base)
		if uintptr(allocation) >= base && uintptr(allocation) < base+uintptr(len(c.arena.buf)) {
			if p := c.arena.Reallocate(allocation, newBytes, alignment); p != nil {
				return p
			}
			// This chunk could not grow the allocation in place; fall
			// through to a fresh allocation plus copy from the old chunk.
			offset := int(uintptr(allocation) - base)
			headerPos := offset - headerSize
			oldBytes := getInt64(c.arena.buf[headerPos : headerPos+headerSize])
			fresh := g.Allocate(newBytes, alignment, false)
			if fresh == nil {
				return nil
			}
			n := oldBytes
			if newBytes < n {
				n = newBytes
			}
			freshBytes := unsafe.Slice((*byte)(fresh), n)
			oldBytesSlice := c.arena.buf[offset : offset+int(n)]
			copy(freshBytes, oldBytesSlice)
			return fresh
		}
	}
	return nil
}

// Free is a no-op; growing arenas only release memory en masse.
func (g *GrowingArena) Free(unsafe.Pointer) bool {
	return g.valid()
}

// FreeAll resets the arena, equivalent to Reset.
func (g *GrowingArena) FreeAll() bool {
	if !g.valid() {
		return false
	}
	g.Reset()
	return true
}

// Reset rewinds every chunk's cursor to its start and moves all but the
// first chunk to the free list for reuse by future growth.
func (g *GrowingArena) Reset() {
	if g.head == nil {
		return
	}
	g.head.arena.Reset()
	c := g.head.next
	g.head.next = nil
	g.tail = g.head
	for c != nil {
		next := c.next
		c.arena.Reset()
		c.prev = nil
		c.next = g.freeList
		g.freeList = c
		c = next
	}
}
