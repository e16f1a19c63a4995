package cache

import "github.com/jackstouffer/gofound/view"

// Get a key from the cache
func (c *Instance) Get(key string) ([]byte, error) {
	v, ok := c.storage.Get(view.FromString(key))
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}
