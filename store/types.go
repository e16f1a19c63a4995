// Package store adapts hashmap.Table into a small typed key/value store,
// demonstrating the core table directly (rather than through strmap) for
// callers whose keys and values are not byte views.
package store

import "github.com/jackstouffer/gofound/hashmap"

// Store is a typed key/value store over hashmap.Table[K, V]. Not safe for
// concurrent use.
type Store[K comparable, V any] struct {
	table *hashmap.Table[K, V]
}

// New creates a dynamic Store that starts with room for initialCap
// entries and rehashes automatically once loadFactor is exceeded.
func New[K comparable, V any](initialCap int, loadFactor float64) *Store[K, V] {
	return &Store[K, V]{table: hashmap.NewDynamic[K, V](initialCap, loadFactor)}
}

// Put inserts or replaces a key.
func (s *Store[K, V]) Put(key K, v V) error {
	return s.table.Insert(key, v)
}

// Get a key from the storage.
func (s *Store[K, V]) Get(key K) (v V, ok bool) {
	return s.table.Get(key)
}

// Delete removes a key, reporting whether it was present.
func (s *Store[K, V]) Delete(key K) bool {
	return s.table.Delete(key)
}

// Len returns the number of entries currently stored.
func (s *Store[K, V]) Len() int {
	return s.table.Len()
}
