package cache

import (
	"github.com/jackstouffer/gofound/alloc"
	"github.com/jackstouffer/gofound/strmap"
)

// defaultChunkSize is the growing arena's per-chunk allocation size
// backing a cache Instance's entry storage.
const defaultChunkSize = 4096

// New creates an empty Instance backed by its own growing arena, so the
// cache's lifetime does not depend on an allocator the caller must
// manage separately.
func New() *Instance {
	arena := alloc.NewGrowingArena(defaultChunkSize, 8)
	return &Instance{
		storage: strmap.NewDynamic(arena, 16, 0.75),
		arena:   arena,
	}
}
