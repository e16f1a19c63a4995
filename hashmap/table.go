// Package hashmap implements a generic, open-addressed, linear-probing
// hash table. Occupancy is tracked with a bit vector rather than a
// per-slot tombstone byte, and every structural mutation bumps a
// generation counter so outstanding iterators notice invalidation rather
// than silently walking stale or shifted slots. The table is not safe
// for concurrent use.
package hashmap

import (
	"errors"

	"github.com/cespare/xxhash/v2"
)

var (
	// ErrFull is returned by Insert on a fixed-capacity table that has no
	// room left for a new key.
	ErrFull = errors.New("hashmap: table is full")

	// ErrIteratorInvalidated is returned by an Iterator's Err once Next has
	// stopped because the table it was created from was structurally
	// mutated.
	ErrIteratorInvalidated = errors.New("hashmap: iterator invalidated by a structural mutation")
)

// HashFunc computes a seeded hash for a key of type K.
type HashFunc[K comparable] func(key K, seed uint64) uint64

// slot holds one key/value pair. occupied is tracked externally via the
// bit vector so a slot's zero value never needs to double as "empty".
type slot[K comparable, V any] struct {
	key K
	val V
}

// Table is a generic open-addressed hash table using linear probing.
// Growth is the caller's choice: NewFixed never grows (Insert returns
// ErrFull once capacity is exhausted); NewDynamic rehashes into a larger
// backing array once the load factor threshold is crossed.
type Table[K comparable, V any] struct {
	slots      []slot[K, V]
	occupied   []uint64 // bit vector, one bit per slot
	hash       HashFunc[K]
	seed       uint64
	count      int
	maxItems   int // 0 for dynamic tables, which are not capped
	generation uint64
	dynamic    bool
	loadFactor float64
}

// Option configures a Table at construction time.
type Option[K comparable, V any] func(*Table[K, V])

// WithHash overrides the default hash function.
func WithHash[K comparable, V any](h HashFunc[K]) Option[K, V] {
	return func(t *Table[K, V]) { t.hash = h }
}

// WithSeed overrides the default hash seed.
func WithSeed[K comparable, V any](seed uint64) Option[K, V] {
	return func(t *Table[K, V]) { t.seed = seed }
}

// NewFixed creates a table sized to hold up to capacity entries without
// ever growing. Insert returns ErrFull once count == capacity, regardless
// of whether the key being inserted already exists. The backing slot
// array is deliberately larger than capacity: next_pow2(capacity + 2),
// with a 32-slot floor, so the probe chain always has empty slots to
// terminate against even when the map is logically full.
func NewFixed[K comparable, V any](capacity int, opts ...Option[K, V]) *Table[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	slack := capacity + 2
	if slack < 32 {
		slack = 32
	}
	t := newTable[K, V](slack)
	t.maxItems = capacity
	for _, o := range opts {
		o(t)
	}
	return t
}

// NewDynamic creates a table that starts with room for at least
// initialCap entries and automatically rehashes into a table twice the
// size whenever the load factor would exceed loadFactor (e.g. 0.75) after
// an insert. loadFactor <= 0 defaults to 0.75.
func NewDynamic[K comparable, V any](initialCap int, loadFactor float64, opts ...Option[K, V]) *Table[K, V] {
	if initialCap < 1 {
		initialCap = 8
	}
	if loadFactor <= 0 || loadFactor >= 1 {
		loadFactor = 0.75
	}
	t := newTable[K, V](initialCap)
	t.dynamic = true
	t.loadFactor = loadFactor
	for _, o := range opts {
		o(t)
	}
	return t
}

func newTable[K comparable, V any](capacity int) *Table[K, V] {
	cap := roundUpPow2(capacity)
	return &Table[K, V]{
		slots:    make([]slot[K, V], cap),
		occupied: make([]uint64, (cap+63)/64),
		hash:     defaultHash[K],
		seed:     0x9e3779b97f4a7c15,
	}
}

func roundUpPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func (t *Table[K, V]) isOccupied(i int) bool {
	return t.occupied[i/64]&(1<<(uint(i)%64)) != 0
}

func (t *Table[K, V]) setOccupied(i int) {
	t.occupied[i/64] |= 1 << (uint(i) % 64)
}

func (t *Table[K, V]) clearOccupied(i int) {
	t.occupied[i/64] &^= 1 << (uint(i) % 64)
}

// Len returns the number of entries currently stored.
func (t *Table[K, V]) Len() int { return t.count }

// Cap returns the number of slots currently backing the table.
func (t *Table[K, V]) Cap() int { return len(t.slots) }

// LoadFactor returns count/capacity.
func (t *Table[K, V]) LoadFactor() float64 {
	if len(t.slots) == 0 {
		return 0
	}
	return float64(t.count) / float64(len(t.slots))
}

// probeForInsert returns either the slot already holding key (found=true,
// the update path) or the index of the first empty slot encountered
// along the probe chain (found=false, the insertion point), matching on
// key bytes only on occupied slots it passes over. index is -1 once the
// entire table has been probed without finding either.
func (t *Table[K, V]) probeForInsert(key K) (index int, found bool) {
	mask := len(t.slots) - 1
	i := int(t.hash(key, t.seed)) & mask
	for probes := 0; probes < len(t.slots); probes++ {
		idx := (i + probes) & mask
		if !t.isOccupied(idx) {
			return idx, false
		}
		if t.slots[idx].key == key {
			return idx, true
		}
	}
	return -1, false
}

// probeForLookup returns the slot holding key, or found=false if key is
// absent. Unlike probeForInsert, an empty slot does not end the search:
// Delete never compacts its cluster, so a hole left behind by an earlier
// delete can sit in front of entries that are still live further along
// the same probe chain. The scan only stops once it has examined every
// slot in the table.
func (t *Table[K, V]) probeForLookup(key K) (index int, found bool) {
	mask := len(t.slots) - 1
	i := int(t.hash(key, t.seed)) & mask
	for probes := 0; probes < len(t.slots); probes++ {
		idx := (i + probes) & mask
		if t.isOccupied(idx) && t.slots[idx].key == key {
			return idx, true
		}
	}
	return -1, false
}

// Insert upserts key -> val. A fixed table rejects the insert with
// ErrFull once count == its configured capacity, even when key already
// exists and the operation would otherwise be a plain update.
func (t *Table[K, V]) Insert(key K, val V) error {
	if !t.dynamic && t.maxItems > 0 && t.count == t.maxItems {
		return ErrFull
	}
	if t.dynamic && float64(t.count+1)/float64(len(t.slots)) > t.loadFactor {
		t.grow()
		t.generation++
	}
	idx, found := t.probeForInsert(key)
	if idx < 0 {
		return ErrFull
	}
	t.slots[idx] = slot[K, V]{key: key, val: val}
	if !found {
		t.setOccupied(idx)
		t.count++
		t.generation++
	}
	return nil
}

// Get looks up key, returning its value and whether it was present.
func (t *Table[K, V]) Get(key K) (V, bool) {
	idx, found := t.probeForLookup(key)
	if !found {
		var zero V
		return zero, false
	}
	return t.slots[idx].val, true
}

// Delete removes key if present. It only clears the slot's occupancy bit
// and decrements the count — no backward-shift compaction — so the
// probe chains of other entries are left exactly as they were.
func (t *Table[K, V]) Delete(key K) bool {
	idx, found := t.probeForLookup(key)
	if !found {
		return false
	}
	var zero slot[K, V]
	t.slots[idx] = zero
	t.clearOccupied(idx)
	t.count--
	t.generation++
	return true
}

func (t *Table[K, V]) grow() {
	old := t.slots
	oldOcc := t.occupied
	newCap := len(t.slots) * 2
	t.slots = make([]slot[K, V], newCap)
	t.occupied = make([]uint64, (newCap+63)/64)
	t.count = 0
	for i := range old {
		if oldOcc[i/64]&(1<<(uint(i)%64)) != 0 {
			idx, _ := t.probeForInsert(old[i].key)
			t.slots[idx] = old[i]
			t.setOccupied(idx)
			t.count++
		}
	}
}
