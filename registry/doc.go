// Package registry implements the handle table at the heart of the
// collection bridge.
//
// A Table maps opaque, address-sized handles to host-owned container
// values. Creation inserts a value and returns its handle; operations
// dereference the handle back into a typed value; destruction removes
// the entry and runs the value's Dropper hook, exactly once.
//
//	table := registry.NewTable()
//
//	h := table.Insert(kindID, container)
//	v, ok := table.GetKinded(h, kindID)
//	v, ok = table.Remove(h)
//
// Handle 0 is reserved and always invalid. Slots are recycled through a
// free list, so a handle may be reissued after its container is
// removed; the caller contract is that a dropped handle is never used
// again.
//
// # Lifecycle Events
//
// Observers receive EventCreated and EventDropped notifications, which
// is the debug-time substitute for validity tracking the table itself
// does not do:
//
//	table.Subscribe(obs) // obs.OnHandleEvent(e) per create/drop
//
// # Ownership
//
// Each entry has exactly one owner: the table. Dereferencing never
// transfers ownership; Remove does. The table does not serialize
// concurrent operations on a single container — the host must not race
// two calls on the same handle.
package registry
