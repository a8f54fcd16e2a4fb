package collections

import (
	"github.com/hostkit/collection-bridge/index"
	"github.com/hostkit/collection-bridge/registry"
	"github.com/hostkit/collection-bridge/value"
)

// vector is an ordered, growable sequence of dynamic values.
type vector struct {
	elems []value.Value
}

func (v *vector) len() int {
	return len(v.elems)
}

// Drop implements registry.Dropper.
func (v *vector) Drop() {
	v.elems = nil
}

// NewVector creates an empty vector and returns its handle.
func (s *Store) NewVector() registry.Handle {
	return s.table.Insert(KindVector, &vector{})
}

// VectorPush appends val to the vector.
func (s *Store) VectorPush(h registry.Handle, val value.Value) bool {
	vec, ok := s.derefVector("vector-push", h)
	if !ok {
		return false
	}
	vec.elems = append(vec.elems, val)
	return true
}

// VectorGet returns a copy of the element at i. The index is clamped
// via CastOr(i, len); an index that clamps to len is absent. Negative
// indices clamp, they do not count from the end.
func (s *Store) VectorGet(h registry.Handle, i int64) (value.Value, bool) {
	vec, ok := s.derefVector("vector-get", h)
	if !ok {
		return value.Null(), false
	}
	at := index.CastOr(i, len(vec.elems))
	if at == len(vec.elems) {
		return value.Null(), false
	}
	return vec.elems[at], true
}

// VectorSet overwrites the element at i with val. The index is clamped
// like VectorGet; an index that clamps to len is a no-op reported as
// false. Set never grows the vector, only Push does.
func (s *Store) VectorSet(h registry.Handle, i int64, val value.Value) bool {
	vec, ok := s.derefVector("vector-set", h)
	if !ok {
		return false
	}
	at := index.CastOr(i, len(vec.elems))
	if at == len(vec.elems) {
		return false
	}
	vec.elems[at] = val
	return true
}

// VectorLen reports the element count.
func (s *Store) VectorLen(h registry.Handle) int {
	vec, ok := s.derefVector("vector-len", h)
	if !ok {
		return 0
	}
	return vec.len()
}

func (s *Store) derefVector(op string, h registry.Handle) (*vector, bool) {
	v, ok := s.table.GetKinded(h, KindVector)
	if !ok {
		s.miss(op, h)
		return nil, false
	}
	return v.(*vector), true
}
