package builder

import (
	"testing"

	"github.com/jackstouffer/gofound/alloc"
	"github.com/jackstouffer/gofound/view"
)

func newTestArena(size int) *alloc.Arena {
	return alloc.NewArena(make([]byte, size))
}

// Concrete scenario: chunk size 4, alignment 4; insert "abcdefghij" (10
// bytes). Iteration must yield three views of lengths 4, 4, 2 containing
// "abcd", "efgh", "ij".
func TestBuilderChunking(t *testing.T) {
	b := NewSize(newTestArena(4096), 4, 4)
	if _, err := b.WriteString("abcdefghij"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}

	var got []string
	for v := range b.Chunks() {
		got = append(got, v.String())
	}
	want := []string{"abcd", "efgh", "ij"}
	if len(got) != len(want) {
		t.Fatalf("got %d chunks %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("chunk %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuilderConcatenationMatchesInputOrder(t *testing.T) {
	b := New(newTestArena(4096))
	inputs := []string{"foo", "bar", "baz", "quux"}
	for _, s := range inputs {
		if _, err := b.WriteString(s); err != nil {
			t.Fatalf("WriteString(%q): %v", s, err)
		}
	}
	want := "foobarbazquux"
	if got := b.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}

	var reassembled string
	for v := range b.Chunks() {
		reassembled += v.String()
	}
	if reassembled != want {
		t.Fatalf("chunk concatenation = %q, want %q", reassembled, want)
	}
}

func TestBuilderClearBehavesAsFresh(t *testing.T) {
	b := New(newTestArena(4096))
	b.WriteString("leftover")
	b.Clear()
	b.WriteString("new")
	if got := b.String(); got != "new" {
		t.Fatalf("String() after Clear+insert = %q, want %q", got, "new")
	}
}

func TestBuilderChunksNeverMove(t *testing.T) {
	b := NewSize(newTestArena(4096), 8, 8)
	b.WriteString("12345678")
	var first view.View
	for v := range b.Chunks() {
		first = v
		break
	}
	firstCopy := append(view.View{}, first...)
	b.WriteString("more data that forces a new chunk to be allocated")
	if first.String() != firstCopy.String() {
		t.Fatal("previously-yielded chunk bytes changed after a later insert")
	}
}

func TestBuilderWritePrimitives(t *testing.T) {
	b := New(newTestArena(4096))
	b.WriteByte('x')
	b.WriteRune('€')
	b.WriteUint64(0x0102030405060708)
	if got := b.Len(); got != 1+3+8 {
		t.Fatalf("Len() = %d, want %d", got, 1+3+8)
	}
}

func TestBuilderPrintfAppendsFormattedOutput(t *testing.T) {
	b := New(newTestArena(4096))
	if _, err := b.Printf("%s scored %d points", "alice", 42); err != nil {
		t.Fatalf("Printf: %v", err)
	}
	if got, want := b.String(), "alice scored 42 points"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestBuilderFreeLeavesArenaPositionUnchanged(t *testing.T) {
	arenaBuf := make([]byte, 4096)
	a := alloc.NewArena(arenaBuf)
	b := New(a)
	b.WriteString("some data")
	mark := a.Save()
	b.Free()
	// The arena itself is untouched by Free (arenas only release en
	// masse), so the backing allocator's position is unchanged.
	if a.Save() != mark {
		t.Fatal("Free should not mutate the backing arena's bump pointer")
	}
}
