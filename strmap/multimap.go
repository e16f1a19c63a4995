package strmap

import (
	"github.com/jackstouffer/gofound/alloc"
	"github.com/jackstouffer/gofound/hashmap"
	"github.com/jackstouffer/gofound/view"
)

// valueNode is one link in a key's intrusive, insertion-ordered singly
// linked list of values.
type valueNode struct {
	val      view.View
	lifetime Lifetime
	next     *valueNode
}

type multiEntry struct {
	key        view.View
	head, tail *valueNode
	count      int
}

// MultiMap is a string -> multiple-byte-views map: each key owns an
// insertion-ordered list of values rather than a single slot.
type MultiMap struct {
	table *hashmap.Table[string, *multiEntry]
	alloc alloc.Allocator
}

// NewMultiMap creates a fixed-capacity MultiMap (capacity bounds distinct
// keys, not total values).
func NewMultiMap(a alloc.Allocator, capacity int) *MultiMap {
	return &MultiMap{table: hashmap.NewFixed[string, *multiEntry](capacity), alloc: a}
}

// NewDynamicMultiMap creates an auto-rehashing MultiMap.
func NewDynamicMultiMap(a alloc.Allocator, initialCap int, loadFactor float64) *MultiMap {
	return &MultiMap{table: hashmap.NewDynamic[string, *multiEntry](initialCap, loadFactor), alloc: a}
}

func (m *MultiMap) copyIfTransient(v view.View, lt Lifetime) view.View {
	if lt == Static || len(v) == 0 {
		return v
	}
	return copyView(m.alloc, v)
}

// Insert appends val to key's value list, creating the key entry if
// absent.
func (m *MultiMap) Insert(key view.View, keyLifetime Lifetime, val view.View, valLifetime Lifetime) error {
	storedVal := m.copyIfTransient(val, valLifetime)
	node := &valueNode{val: storedVal, lifetime: valLifetime}

	if e, ok := m.table.Get(key.String()); ok {
		e.tail.next = node
		e.tail = node
		e.count++
		return nil
	}

	storedKey := m.copyIfTransient(key, keyLifetime)
	e := &multiEntry{key: storedKey, head: node, tail: node, count: 1}
	return m.table.Insert(storedKey.String(), e)
}

// Values returns every value currently stored for key, in insertion
// order.
func (m *MultiMap) Values(key view.View) []view.View {
	e, ok := m.table.Get(key.String())
	if !ok {
		return nil
	}
	out := make([]view.View, 0, e.count)
	for n := e.head; n != nil; n = n.next {
		out = append(out, n.val)
	}
	return out
}

// DeleteValue removes the first value-list node under key whose bytes
// equal val, and unlinks the entire key entry if its list becomes empty.
// Reports whether a node was removed.
func (m *MultiMap) DeleteValue(key, val view.View) bool {
	e, ok := m.table.Get(key.String())
	if !ok {
		return false
	}
	var prev *valueNode
	for n := e.head; n != nil; n = n.next {
		if !viewEqual(n.val, val) {
			prev = n
			continue
		}
		if prev == nil {
			e.head = n.next
		} else {
			prev.next = n.next
		}
		if n == e.tail {
			e.tail = prev
		}
		e.count--
		if e.head == nil {
			m.table.Delete(key.String())
		}
		return true
	}
	return false
}

// DeleteKey removes key and its entire value list.
func (m *MultiMap) DeleteKey(key view.View) bool {
	return m.table.Delete(key.String())
}

func viewEqual(a, b view.View) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// MultiPair is one (key, value) result from a MultiIterator, one entry per
// stored value rather than per key.
type MultiPair struct {
	Key view.View
	Val view.View
}

// MultiIterator walks every (key, value) pair, grouping a key's values
// adjacently in insertion order. Keys themselves are visited in the
// underlying table's slot order.
type MultiIterator struct {
	inner *hashmap.Iterator[string, *multiEntry]
	node  *valueNode
	key   view.View
}

// Iterator returns a fresh MultiIterator over every (key, value) pair.
func (m *MultiMap) Iterator() *MultiIterator {
	return &MultiIterator{inner: m.table.Iterator()}
}

// Next advances the iterator, returning the next pair and whether one was
// available.
func (it *MultiIterator) Next() (MultiPair, bool) {
	for {
		if it.node != nil {
			p := MultiPair{Key: it.key, Val: it.node.val}
			it.node = it.node.next
			return p, true
		}
		_, e, ok := it.inner.Next()
		if !ok {
			return MultiPair{}, false
		}
		it.key = e.key
		it.node = e.head
	}
}

// Err reports whether the iterator was cut short by a structural
// mutation.
func (it *MultiIterator) Err() error {
	return it.inner.Err()
}
