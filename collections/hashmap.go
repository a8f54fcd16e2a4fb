package collections

import (
	"github.com/hostkit/collection-bridge/registry"
	"github.com/hostkit/collection-bridge/value"
)

// hashMap buckets entries by the hasher's digest of the key; equality
// within a bucket is value.Equal. Keys are unique, order irrelevant.
type hashMap struct {
	hasher  value.Hasher
	buckets map[uint64][]mapEntry
	count   int
}

type mapEntry struct {
	key value.Value
	val value.Value
}

func newHashMap(h value.Hasher) *hashMap {
	return &hashMap{
		hasher:  h,
		buckets: make(map[uint64][]mapEntry),
	}
}

func (m *hashMap) get(k value.Value) (value.Value, bool) {
	for _, e := range m.buckets[m.hasher.Hash(k)] {
		if e.key.Equal(k) {
			return e.val, true
		}
	}
	return value.Null(), false
}

func (m *hashMap) set(k, v value.Value) {
	digest := m.hasher.Hash(k)
	bucket := m.buckets[digest]
	for i := range bucket {
		if bucket[i].key.Equal(k) {
			bucket[i].val = v
			return
		}
	}
	m.buckets[digest] = append(bucket, mapEntry{key: k, val: v})
	m.count++
}

func (m *hashMap) remove(k value.Value) (value.Value, bool) {
	digest := m.hasher.Hash(k)
	bucket := m.buckets[digest]
	for i := range bucket {
		if bucket[i].key.Equal(k) {
			old := bucket[i].val
			bucket[i] = bucket[len(bucket)-1]
			bucket = bucket[:len(bucket)-1]
			if len(bucket) == 0 {
				delete(m.buckets, digest)
			} else {
				m.buckets[digest] = bucket
			}
			m.count--
			return old, true
		}
	}
	return value.Null(), false
}

func (m *hashMap) len() int {
	return m.count
}

// each iterates entries in unspecified order.
func (m *hashMap) each(fn func(k, v value.Value) bool) {
	for _, bucket := range m.buckets {
		for _, e := range bucket {
			if !fn(e.key, e.val) {
				return
			}
		}
	}
}

// Drop implements registry.Dropper.
func (m *hashMap) Drop() {
	m.buckets = nil
	m.count = 0
}

// NewHashMap creates an empty hash map and returns its handle.
func (s *Store) NewHashMap() registry.Handle {
	return s.table.Insert(KindHashMap, newHashMap(s.hasher))
}

// HashMapGet returns a copy of the value stored under key, or absence.
func (s *Store) HashMapGet(h registry.Handle, key value.Value) (value.Value, bool) {
	m, ok := s.derefMap("hashmap-get", h)
	if !ok {
		return value.Null(), false
	}
	return m.get(key)
}

// HashMapSet stores val under key, overwriting any existing entry.
func (s *Store) HashMapSet(h registry.Handle, key, val value.Value) bool {
	m, ok := s.derefMap("hashmap-set", h)
	if !ok {
		return false
	}
	m.set(key, val)
	return true
}

// HashMapRemove deletes key and returns the removed value, or absence
// if the key was not present. Removing an absent key is a no-op.
func (s *Store) HashMapRemove(h registry.Handle, key value.Value) (value.Value, bool) {
	m, ok := s.derefMap("hashmap-remove", h)
	if !ok {
		return value.Null(), false
	}
	return m.remove(key)
}

// HashMapLen reports the entry count.
func (s *Store) HashMapLen(h registry.Handle) int {
	m, ok := s.derefMap("hashmap-len", h)
	if !ok {
		return 0
	}
	return m.len()
}

// HashMapEach iterates entries in unspecified order until fn returns
// false. The callback must not mutate the map through the Store.
func (s *Store) HashMapEach(h registry.Handle, fn func(k, v value.Value) bool) {
	m, ok := s.derefMap("hashmap-each", h)
	if !ok {
		return
	}
	m.each(fn)
}

func (s *Store) derefMap(op string, h registry.Handle) (*hashMap, bool) {
	v, ok := s.table.GetKinded(h, KindHashMap)
	if !ok {
		s.miss(op, h)
		return nil, false
	}
	return v.(*hashMap), true
}
