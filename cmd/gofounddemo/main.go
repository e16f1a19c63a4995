// Command gofounddemo exercises the allocator, hash-map, builder, format,
// and cache/store packages end to end, the way a smoke test for the whole
// stack would. The builder writes into a bump arena, the cache uses its
// own growing arena, and the hash tables use Go-managed memory.
package main

import (
	"log"
	"os"

	"github.com/jackstouffer/gofound/alloc"
	"github.com/jackstouffer/gofound/builder"
	"github.com/jackstouffer/gofound/cache"
	"github.com/jackstouffer/gofound/format"
	"github.com/jackstouffer/gofound/hashmap"
	"github.com/jackstouffer/gofound/sink"
	"github.com/jackstouffer/gofound/store"
	"github.com/kirillDanshin/dlog"
)

func main() {
	arena := alloc.NewArena(make([]byte, 64*1024))

	counts := hashmap.NewDynamic[string, int](8, 0.75)
	for _, word := range []string{"the", "quick", "brown", "fox", "the", "fox"} {
		v, _ := counts.Get(word)
		if err := counts.Insert(word, v+1); err != nil {
			log.Fatalf("error: %s", err)
		}
	}
	dlog.D("distinct words", counts.Len())

	b := builder.New(arena)
	it := counts.Iterator()
	for {
		word, n, ok := it.Next()
		if !ok {
			break
		}
		if _, err := b.Printf("%s: %d\n", word, n); err != nil {
			log.Fatalf("error: %s", err)
		}
	}
	dlog.D(b.String())

	typed := store.New[int, string](4, 0.75)
	typed.Put(1, "one")
	typed.Put(2, "two")
	if v, ok := typed.Get(1); ok {
		dlog.D("typed store", v)
	}

	c := cache.New()
	c.Put("greeting", []byte("hello, gofound"))
	if v, err := c.Get("greeting"); err == nil {
		dlog.D("cache", string(v))
	}

	out := sink.NewFileSink(os.Stdout)
	if _, err := format.Fprintf(out, "%'d items, %.2f%% full\n", 1234567, 42.5); err != nil {
		log.Fatalf("error: %s", err)
	}
	if err := out.Flush(); err != nil {
		log.Fatalf("error: %s", err)
	}
}
