package collections

import (
	"testing"

	"github.com/hostkit/collection-bridge/value"
)

func TestHashMap_SetGet(t *testing.T) {
	s := NewWithDefaults()
	h := s.NewHashMap()
	if h == 0 {
		t.Fatal("Expected non-zero handle")
	}
	if s.HashMapLen(h) != 0 {
		t.Fatal("New map must be empty")
	}

	s.HashMapSet(h, value.String("a"), value.Number(1))
	got, ok := s.HashMapGet(h, value.String("a"))
	if !ok {
		t.Fatal("Get after Set failed")
	}
	if !got.Equal(value.Number(1)) {
		t.Fatalf("Expected 1, got %s", got)
	}
	if s.HashMapLen(h) != 1 {
		t.Fatalf("Expected len 1, got %d", s.HashMapLen(h))
	}
}

func TestHashMap_Overwrite(t *testing.T) {
	s := NewWithDefaults()
	h := s.NewHashMap()

	s.HashMapSet(h, value.String("a"), value.Number(1))
	s.HashMapSet(h, value.String("a"), value.Number(2))

	got, ok := s.HashMapGet(h, value.String("a"))
	if !ok || !got.Equal(value.Number(2)) {
		t.Fatalf("Expected overwrite to 2, got %s (ok=%v)", got, ok)
	}
	if s.HashMapLen(h) != 1 {
		t.Fatalf("Overwrite must not grow the map, len=%d", s.HashMapLen(h))
	}
}

func TestHashMap_MissingKey(t *testing.T) {
	s := NewWithDefaults()
	h := s.NewHashMap()

	if _, ok := s.HashMapGet(h, value.String("missing")); ok {
		t.Fatal("Get of unset key must be absent")
	}
	if _, ok := s.HashMapRemove(h, value.String("missing")); ok {
		t.Fatal("Remove of unset key must be absent")
	}
}

func TestHashMap_Remove(t *testing.T) {
	s := NewWithDefaults()
	h := s.NewHashMap()

	s.HashMapSet(h, value.Number(1), value.String("one"))
	s.HashMapSet(h, value.Number(2), value.String("two"))

	old, ok := s.HashMapRemove(h, value.Number(1))
	if !ok || !old.Equal(value.String("one")) {
		t.Fatalf("Remove returned %s (ok=%v)", old, ok)
	}
	if _, ok := s.HashMapGet(h, value.Number(1)); ok {
		t.Fatal("Removed key still present")
	}
	if s.HashMapLen(h) != 1 {
		t.Fatalf("Expected len 1 after remove, got %d", s.HashMapLen(h))
	}
	// remove is idempotent on an absent key
	if _, ok := s.HashMapRemove(h, value.Number(1)); ok {
		t.Fatal("Second remove of same key must be absent")
	}
}

func TestHashMap_KeyKinds(t *testing.T) {
	s := NewWithDefaults()
	h := s.NewHashMap()

	// Keys of different kinds never alias.
	s.HashMapSet(h, value.Number(1), value.String("number"))
	s.HashMapSet(h, value.Bool(true), value.String("bool"))
	s.HashMapSet(h, value.Null(), value.String("null"))
	s.HashMapSet(h, value.HandleRef(1), value.String("handle"))

	if s.HashMapLen(h) != 4 {
		t.Fatalf("Expected 4 distinct keys, got %d", s.HashMapLen(h))
	}
	got, ok := s.HashMapGet(h, value.HandleRef(1))
	if !ok || !got.Equal(value.String("handle")) {
		t.Fatalf("Handle key lookup returned %s (ok=%v)", got, ok)
	}
}

func TestHashMap_ReadIsCopy(t *testing.T) {
	s := NewWithDefaults()
	h := s.NewHashMap()

	s.HashMapSet(h, value.String("k"), value.Number(1))

	// Reassigning the read copy must not affect the stored entry.
	got, _ := s.HashMapGet(h, value.String("k"))
	got = value.Number(99)
	if got.Equal(value.Number(1)) {
		t.Fatal("Reassignment lost")
	}

	again, _ := s.HashMapGet(h, value.String("k"))
	if !again.Equal(value.Number(1)) {
		t.Fatal("Mutating a read value mutated the container")
	}
}

func TestHashMap_Each(t *testing.T) {
	s := NewWithDefaults()
	h := s.NewHashMap()
	s.HashMapSet(h, value.String("a"), value.Number(1))
	s.HashMapSet(h, value.String("b"), value.Number(2))

	seen := 0
	s.HashMapEach(h, func(k, v value.Value) bool {
		seen++
		return true
	})
	if seen != 2 {
		t.Fatalf("Expected 2 entries, saw %d", seen)
	}

	// Early stop
	seen = 0
	s.HashMapEach(h, func(k, v value.Value) bool {
		seen++
		return false
	})
	if seen != 1 {
		t.Fatalf("Expected early stop after 1 entry, saw %d", seen)
	}
}

func TestHashMap_DeadHandle(t *testing.T) {
	s := NewWithDefaults()
	h := s.NewHashMap()

	if !s.Destroy(h) {
		t.Fatal("Destroy failed")
	}
	if s.Destroy(h) {
		t.Fatal("Second Destroy must report false")
	}
	if _, ok := s.HashMapGet(h, value.String("a")); ok {
		t.Fatal("Get on dead handle must be absent")
	}
	if s.HashMapSet(h, value.String("a"), value.Number(1)) {
		t.Fatal("Set on dead handle must report false")
	}
	if s.HashMapLen(h) != 0 {
		t.Fatal("Len on dead handle must be 0")
	}
}

func TestHashMap_WrongKind(t *testing.T) {
	s := NewWithDefaults()
	h := s.NewVector()

	if _, ok := s.HashMapGet(h, value.String("a")); ok {
		t.Fatal("Map op on a vector handle must be absent")
	}
}
