package registry

import (
	"errors"
	"sync"
)

// ErrClosed is returned by Close after the table is already closed.
var ErrClosed = errors.New("registry: table closed")

// Table maps handles to container values. Entries live in a slab
// indexed by handle-1; removed slots are recycled through a free list.
type Table struct {
	entries   []entry
	freeList  []Handle
	observers []Observer
	mu        sync.Mutex
	obsMu     sync.RWMutex
	closed    bool
}

type entry struct {
	value  any
	kindID uint32
	live   bool
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		entries:  make([]entry, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

// Insert adds a value under the given kind and returns its handle.
// Returns 0 if the table is closed.
func (t *Table) Insert(kindID uint32, value any) Handle {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0
	}

	e := entry{kindID: kindID, value: value, live: true}

	var h Handle
	if n := len(t.freeList); n > 0 {
		h = t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		t.entries[h-1] = e
	} else {
		t.entries = append(t.entries, e)
		h = Handle(len(t.entries))
	}
	t.mu.Unlock()

	t.notify(Event{Type: EventCreated, Handle: h, KindID: kindID, Value: value})
	return h
}

// Get retrieves a value by handle.
func (t *Table) Get(h Handle) (any, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.lookup(h)
	if !ok {
		return nil, false
	}
	return e.value, true
}

// GetKinded retrieves a value only if it is live and of the expected kind.
func (t *Table) GetKinded(h Handle, kindID uint32) (any, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.lookup(h)
	if !ok || e.kindID != kindID {
		return nil, false
	}
	return e.value, true
}

// KindID reports the kind of a live handle.
func (t *Table) KindID(h Handle) (uint32, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.lookup(h)
	if !ok {
		return 0, false
	}
	return e.kindID, true
}

// Remove destroys a handle and returns its value. The value's Dropper
// hook, if any, runs before Remove returns. Removing a dead or unknown
// handle reports false and has no effect.
func (t *Table) Remove(h Handle) (any, bool) {
	t.mu.Lock()
	e, ok := t.lookup(h)
	if !ok {
		t.mu.Unlock()
		return nil, false
	}

	value := e.value
	kindID := e.kindID
	e.live = false
	e.value = nil
	t.freeList = append(t.freeList, h)
	t.mu.Unlock()

	if d, ok := value.(Dropper); ok {
		d.Drop()
	}

	t.notify(Event{Type: EventDropped, Handle: h, KindID: kindID, Value: value})
	return value, true
}

// Len returns the number of live handles.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for i := range t.entries {
		if t.entries[i].live {
			n++
		}
	}
	return n
}

// Each iterates over live handles until fn returns false.
// The iteration order is the slab order, not creation order.
func (t *Table) Each(fn func(Handle, uint32, any) bool) {
	t.mu.Lock()
	type snap struct {
		value  any
		h      Handle
		kindID uint32
	}
	live := make([]snap, 0, len(t.entries))
	for i := range t.entries {
		if t.entries[i].live {
			live = append(live, snap{t.entries[i].value, Handle(i + 1), t.entries[i].kindID})
		}
	}
	t.mu.Unlock()

	for _, s := range live {
		if !fn(s.h, s.kindID, s.value) {
			return
		}
	}
}

// Clear removes every live handle, running Dropper hooks and notifying
// observers for each.
func (t *Table) Clear() {
	var handles []Handle
	t.Each(func(h Handle, _ uint32, _ any) bool {
		handles = append(handles, h)
		return true
	})
	for _, h := range handles {
		t.Remove(h)
	}
}

// Close drops all live entries and stops accepting inserts.
func (t *Table) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	t.closed = true
	t.mu.Unlock()

	t.Clear()

	t.mu.Lock()
	t.entries = nil
	t.freeList = nil
	t.mu.Unlock()
	return nil
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// lookup must be called with t.mu held.
func (t *Table) lookup(h Handle) (*entry, bool) {
	if h == 0 || int(h) > len(t.entries) {
		return nil, false
	}
	e := &t.entries[h-1]
	if !e.live {
		return nil, false
	}
	return e, true
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnHandleEvent(e)
	}
}
