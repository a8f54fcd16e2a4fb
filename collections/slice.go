package collections

import (
	"github.com/hostkit/collection-bridge/index"
	"github.com/hostkit/collection-bridge/registry"
	"github.com/hostkit/collection-bridge/value"
)

// sliceView is a bounded, non-owning window over a vector. It records
// only the source handle and the [lo, hi) bounds resolved at view
// time; payload is never copied. The view does not keep its source
// alive — a view over a destroyed source reads as absent.
type sliceView struct {
	source registry.Handle
	lo     int
	hi     int
}

func (sv *sliceView) len() int {
	return sv.hi - sv.lo
}

// NewSlice resolves [start, end) against the source vector's current
// length and returns a handle to the view. An inverted interval
// collapses to an empty view. Returns 0 if src is not a live vector.
func (s *Store) NewSlice(src registry.Handle, start, end int64) registry.Handle {
	vec, ok := s.derefVector("slice-view", src)
	if !ok {
		return 0
	}
	lo, hi := index.Interval(start, end, len(vec.elems))
	return s.table.Insert(KindSlice, &sliceView{source: src, lo: lo, hi: hi})
}

// SliceGet returns a copy of the element at i within the view, reading
// through to the source vector. The index is clamped against the view
// length; a clamped index, a dead source, or a source that has shrunk
// below the resolved offset all report absence.
func (s *Store) SliceGet(h registry.Handle, i int64) (value.Value, bool) {
	sv, ok := s.derefSlice("slice-get", h)
	if !ok {
		return value.Null(), false
	}
	at := index.CastOr(i, sv.len())
	if at == sv.len() {
		return value.Null(), false
	}
	vec, ok := s.derefVector("slice-get", sv.source)
	if !ok {
		return value.Null(), false
	}
	off := sv.lo + at
	if off >= len(vec.elems) {
		return value.Null(), false
	}
	return vec.elems[off], true
}

// SliceLen reports the resolved view length. The length is fixed at
// view time even if the source later grows or shrinks.
func (s *Store) SliceLen(h registry.Handle) int {
	sv, ok := s.derefSlice("slice-len", h)
	if !ok {
		return 0
	}
	return sv.len()
}

// SliceBounds reports the source handle and the resolved [lo, hi)
// interval of the view.
func (s *Store) SliceBounds(h registry.Handle) (src registry.Handle, lo, hi int, ok bool) {
	sv, ok := s.derefSlice("slice-bounds", h)
	if !ok {
		return 0, 0, 0, false
	}
	return sv.source, sv.lo, sv.hi, true
}

func (s *Store) derefSlice(op string, h registry.Handle) (*sliceView, bool) {
	v, ok := s.table.GetKinded(h, KindSlice)
	if !ok {
		s.miss(op, h)
		return nil, false
	}
	return v.(*sliceView), true
}
