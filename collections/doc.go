// Package collections implements the native containers addressed
// through the bridge: a hash map keyed by dynamic values, a growable
// vector, and a non-owning slice view over a vector.
//
// A Store owns one handle table shared by all three container kinds.
// Creation inserts an empty container and returns its handle; every
// operation dereferences the handle, kind-checked, for the duration of
// the call. Destroy removes the container exactly once.
//
//	store := collections.NewWithDefaults()
//	h := store.NewVector()
//	store.VectorPush(h, value.Number(10))
//	v, ok := store.VectorGet(h, 0)
//	store.Destroy(h)
//
// Indices are normalized with the index package's clamp policy, so no
// operation panics or faults on a malformed index; out-of-range access
// reports absence. Absence is always the (Value, bool) false case,
// never an error.
//
// Slice views never copy payload and never own storage: a view records
// its source handle plus resolved [lo, hi) bounds, and reads delegate
// to the live source. Destroying a view leaves the source untouched;
// destroying the source strands the view (reads become absent).
package collections
