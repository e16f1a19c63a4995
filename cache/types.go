package cache

import (
	"github.com/jackstouffer/gofound/alloc"
	"github.com/jackstouffer/gofound/strmap"
)

// Instance represents a cache instance: a string -> byte-slice cache
// whose entries are always stored Transient, so a Put never aliases the
// caller's buffer. Not safe for concurrent use — see the module's
// resource model.
type Instance struct {
	storage *strmap.Map
	arena   *alloc.GrowingArena
}
