package cache

import (
	"github.com/jackstouffer/gofound/strmap"
	"github.com/jackstouffer/gofound/view"
)

// Put the value in a key. Both the key and the value are copied into the
// cache's own arena, so the caller's buffers may be reused or mutated
// immediately after Put returns.
func (c *Instance) Put(key string, value []byte) error {
	return c.storage.Insert(view.FromString(key), strmap.Transient, view.New(value), strmap.Transient)
}
