// Package strmap specializes hashmap.Table for string keys and byte-view
// values, with a per-side lifetime tag controlling whether Insert aliases
// the caller's bytes or copies them into the map's own allocator.
package strmap

import (
	"github.com/jackstouffer/gofound/alloc"
	"github.com/jackstouffer/gofound/hashmap"
	"github.com/jackstouffer/gofound/view"
)

// Lifetime selects whether a stored view aliases caller memory or was
// copied into the map's allocator on insert.
type Lifetime int

const (
	// Static views alias memory the caller guarantees outlives the map.
	Static Lifetime = iota
	// Transient views are copied into the map's allocator on insert, so
	// later mutation of the caller's buffer cannot affect the stored
	// value.
	Transient
)

type entry struct {
	key         view.View
	val         view.View
	valLifetime Lifetime
}

// Map is a string -> byte-view map built on hashmap.Table[string, *entry].
type Map struct {
	table *hashmap.Table[string, *entry]
	alloc alloc.Allocator
}

// New creates a fixed-capacity Map. a is used to copy Transient keys and
// values; it may be nil if every Insert call uses Static for both sides.
func New(a alloc.Allocator, capacity int) *Map {
	return &Map{table: hashmap.NewFixed[string, *entry](capacity), alloc: a}
}

// NewDynamic creates an auto-rehashing Map.
func NewDynamic(a alloc.Allocator, initialCap int, loadFactor float64) *Map {
	return &Map{table: hashmap.NewDynamic[string, *entry](initialCap, loadFactor), alloc: a}
}

// copyIfTransient returns v unchanged if lt is Static, or a copy of v's
// bytes carved out of m's allocator if lt is Transient.
func (m *Map) copyIfTransient(v view.View, lt Lifetime) view.View {
	if lt == Static || len(v) == 0 {
		return v
	}
	return copyView(m.alloc, v)
}

func copyView(a alloc.Allocator, v view.View) view.View {
	ptr := a.Allocate(int64(len(v)), 1, false)
	if ptr == nil {
		return nil
	}
	out := ptrBytes(ptr, len(v))
	copy(out, v)
	return view.New(out)
}

// Insert upserts key -> val. keyLifetime and valLifetime are independent:
// a key may be Static while its value is Transient, or vice versa.
func (m *Map) Insert(key view.View, keyLifetime Lifetime, val view.View, valLifetime Lifetime) error {
	storedKey := m.copyIfTransient(key, keyLifetime)
	storedVal := m.copyIfTransient(val, valLifetime)
	return m.table.Insert(storedKey.String(), &entry{key: storedKey, val: storedVal, valLifetime: valLifetime})
}

// Get returns the value stored for key, if present.
func (m *Map) Get(key view.View) (view.View, bool) {
	e, ok := m.table.Get(key.String())
	if !ok {
		return nil, false
	}
	return e.val, true
}

// Delete removes key. It never frees the underlying bytes of a Transient
// entry proactively — arena-style allocators do not support per-entry
// free; a heap-backed Allocator reclaims on the caller's own schedule.
func (m *Map) Delete(key view.View) bool {
	return m.table.Delete(key.String())
}

// Len returns the number of keys currently stored.
func (m *Map) Len() int { return m.table.Len() }

// Pair is one (key, value) result from Iterator.
type Pair struct {
	Key view.View
	Val view.View
}

// Iterator walks every (key, value) pair in the map. Its validity rules
// match hashmap.Iterator: any structural mutation after creation
// invalidates it.
type Iterator struct {
	inner *hashmap.Iterator[string, *entry]
}

// Iterator returns a fresh Iterator over m.
func (m *Map) Iterator() *Iterator {
	return &Iterator{inner: m.table.Iterator()}
}

// Next advances the iterator, returning the next pair and whether one was
// available.
func (it *Iterator) Next() (Pair, bool) {
	_, e, ok := it.inner.Next()
	if !ok {
		return Pair{}, false
	}
	return Pair{Key: e.key, Val: e.val}, true
}

// Err reports whether the iterator was cut short by a structural
// mutation.
func (it *Iterator) Err() error {
	return it.inner.Err()
}
