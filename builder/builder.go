// Package builder implements a chunked string/binary builder: output
// accumulates into a linked sequence of allocator-backed chunks without
// ever copying or moving previously-written bytes. A Builder implements
// sink.Sink directly, so it can be handed to the format engine or any
// other sink consumer as a growable write target.
package builder

import (
	"encoding/binary"
	"errors"
	"iter"
	"math"
	"unicode/utf8"
	"unsafe"

	"github.com/jackstouffer/gofound/alloc"
	"github.com/jackstouffer/gofound/format"
	"github.com/jackstouffer/gofound/view"
)

const builderSentinel = 0x4a534c42 // "JSLB"

// DefaultChunkSize is the chunk size used by New.
const DefaultChunkSize = 1024

// DefaultAlign is the chunk alignment used by New.
const DefaultAlign int32 = 8

// ErrFreed is returned by any operation attempted on a Builder after Free.
var ErrFreed = errors.New("builder: use after free")

// chunk is a single allocator-backed region. buf is the full owning
// range; the first `written` bytes are the portion of buf that has
// actually been written (the writer view's complement). Already-written
// bytes never move, because chunks are append-only and the chain is
// never compacted.
type chunk struct {
	buf     []byte
	written int
	next    *chunk
}

// Builder is a linked list of allocator-backed chunks acting as a
// non-moving, growable byte stream.
type Builder struct {
	sentinel  uint64
	allocator alloc.Allocator
	chunkSize int
	align     int32
	head      *chunk
	tail      *chunk
	freed     bool
}

// New creates a builder using DefaultChunkSize and DefaultAlign.
func New(allocator alloc.Allocator) *Builder {
	return NewSize(allocator, DefaultChunkSize, DefaultAlign)
}

// NewSize creates a builder with a custom chunk size and alignment.
func NewSize(allocator alloc.Allocator, chunkSize int, align int32) *Builder {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if align <= 0 {
		align = DefaultAlign
	}
	return &Builder{sentinel: builderSentinel, allocator: allocator, chunkSize: chunkSize, align: align}
}

func (b *Builder) valid() bool {
	return b != nil && b.sentinel == builderSentinel && !b.freed
}

// newChunk allocates a chunk at least `need` bytes long (rounded up to
// the builder's configured chunk size).
func (b *Builder) newChunk(need int) *chunk {
	size := b.chunkSize
	if need > size {
		size = need
	}
	ptr := b.allocator.Allocate(int64(size), b.align, false)
	if ptr == nil {
		return nil
	}
	return &chunk{buf: unsafe.Slice((*byte)(ptr), size)}
}

func (b *Builder) appendChunk(c *chunk) {
	if b.tail != nil {
		b.tail.next = c
	} else {
		b.head = c
	}
	b.tail = c
}

// WriteView appends v to the builder, allocating new chunks as needed.
// It is equivalent to Write, which is the method that implements sink.Sink.
func (b *Builder) WriteView(v view.View) (int, error) {
	return b.Write(v)
}

// Write implements sink.Sink.
func (b *Builder) Write(v view.View) (int, error) {
	if !b.valid() {
		return 0, ErrFreed
	}
	total := len(v)
	if total == 0 {
		return 0, nil
	}
	remainingData := []byte(v)

	for len(remainingData) > 0 {
		if b.tail == nil || b.tail.written == len(b.tail.buf) {
			c := b.newChunk(b.chunkSize)
			if c == nil {
				return total - len(remainingData), errors.New("builder: allocator exhausted")
			}
			b.appendChunk(c)
		}
		capacity := len(b.tail.buf) - b.tail.written
		n := len(remainingData)
		if n > capacity {
			n = capacity
		}
		copy(b.tail.buf[b.tail.written:b.tail.written+n], remainingData[:n])
		b.tail.written += n
		remainingData = remainingData[n:]
	}
	return total, nil
}

// WriteString appends the bytes of s.
func (b *Builder) WriteString(s string) (int, error) {
	return b.Write(view.FromString(s))
}

// WriteByte appends a single byte.
func (b *Builder) WriteByte(c byte) error {
	_, err := b.Write(view.View{c})
	return err
}

// WriteRune appends the UTF-8 encoding of r.
func (b *Builder) WriteRune(r rune) (int, error) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	return b.Write(view.View(buf[:n]))
}

// WriteUint64 appends the host-endian (little) encoding of v.
func (b *Builder) WriteUint64(v uint64) (int, error) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return b.Write(view.View(buf[:]))
}

// WriteInt64 appends the host-endian (little) encoding of v.
func (b *Builder) WriteInt64(v int64) (int, error) {
	return b.WriteUint64(uint64(v))
}

// WriteFloat64 appends the host-endian (little) bitwise encoding of v.
func (b *Builder) WriteFloat64(v float64) (int, error) {
	return b.WriteUint64(math.Float64bits(v))
}

// Printf formats according to the format engine's verb grammar and
// appends the result directly into the builder, without first collecting
// the whole output in a separate buffer — the builder itself is the sink
// the format engine writes through.
func (b *Builder) Printf(f string, args ...any) (int, error) {
	return format.Fprintf(b, f, args...)
}

// Clear resets every chunk to empty without freeing, so subsequent
// inserts behave as if the builder had just been constructed.
func (b *Builder) Clear() {
	for c := b.head; c != nil; c = c.next {
		c.written = 0
	}
}

// Reset is an alias for Clear.
func (b *Builder) Reset() {
	b.Clear()
}

// Free releases every chunk back to the builder's allocator. The builder
// must not be used afterward.
func (b *Builder) Free() {
	for c := b.head; c != nil; {
		next := c.next
		b.allocator.Free(unsafe.Pointer(&c.buf[0]))
		c = next
	}
	b.head, b.tail = nil, nil
	b.freed = true
}

// Len returns the total number of bytes written across all chunks.
func (b *Builder) Len() int {
	n := 0
	for c := b.head; c != nil; c = c.next {
		n += c.written
	}
	return n
}

// Chunks returns an iterator over the written portion of every chunk, in
// order. Iteration never yields the unused tail of a chunk.
// Already-yielded bytes never change position even across subsequent
// inserts, since chunks are append-only.
func (b *Builder) Chunks() iter.Seq[view.View] {
	return func(yield func(view.View) bool) {
		for c := b.head; c != nil; c = c.next {
			if c.written == 0 {
				continue
			}
			if !yield(view.New(c.buf[:c.written])) {
				return
			}
		}
	}
}

// String concatenates every chunk's written bytes into a single string.
func (b *Builder) String() string {
	out := make([]byte, 0, b.Len())
	for c := b.head; c != nil; c = c.next {
		out = append(out, c.buf[:c.written]...)
	}
	return string(out)
}
