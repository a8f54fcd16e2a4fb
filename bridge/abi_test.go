package bridge

import (
	"testing"

	"github.com/hostkit/collection-bridge/errors"
	"github.com/hostkit/collection-bridge/registry"
	"github.com/hostkit/collection-bridge/value"
)

// fakeMemory is a flat in-memory stand-in for guest linear memory.
type fakeMemory struct {
	data []byte
}

func newFakeMemory(size int) *fakeMemory {
	return &fakeMemory{data: make([]byte, size)}
}

func (m *fakeMemory) Read(offset uint32, length uint32) ([]byte, error) {
	if int(offset)+int(length) > len(m.data) {
		return nil, errors.OutOfBounds(errors.PhaseLift, offset, length)
	}
	return m.data[offset : offset+length], nil
}

func (m *fakeMemory) Write(offset uint32, data []byte) error {
	if int(offset)+len(data) > len(m.data) {
		return errors.OutOfBounds(errors.PhaseLower, offset, uint32(len(data)))
	}
	copy(m.data[offset:], data)
	return nil
}

// fakeAllocator bumps a pointer through fakeMemory.
type fakeAllocator struct {
	next uint32
}

func (a *fakeAllocator) Alloc(size, align uint32) (uint32, error) {
	ptr := a.next
	a.next += size
	return ptr, nil
}

func (a *fakeAllocator) Free(ptr, size, align uint32) {}

func TestLiftLower_Scalars(t *testing.T) {
	mem := newFakeMemory(256)
	alloc := &fakeAllocator{next: 16}

	vals := []value.Value{
		value.Null(),
		value.Bool(true),
		value.Bool(false),
		value.Number(0),
		value.Number(-12.75),
		value.HandleRef(registry.Handle(42)),
	}
	for _, want := range vals {
		tag, bits, err := Lower(mem, alloc, want)
		if err != nil {
			t.Fatalf("Lower(%s) failed: %v", want, err)
		}
		got, err := Lift(mem, tag, bits)
		if err != nil {
			t.Fatalf("Lift(%s) failed: %v", want, err)
		}
		if !got.Equal(want) {
			t.Fatalf("Round trip of %s yielded %s", want, got)
		}
	}
}

func TestLiftLower_String(t *testing.T) {
	mem := newFakeMemory(256)
	alloc := &fakeAllocator{next: 16}

	want := value.String("hello bridge")
	tag, bits, err := Lower(mem, alloc, want)
	if err != nil {
		t.Fatalf("Lower failed: %v", err)
	}
	if tag != TagString {
		t.Fatalf("Expected TagString, got %d", tag)
	}

	got, err := Lift(mem, tag, bits)
	if err != nil {
		t.Fatalf("Lift failed: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("Expected %s, got %s", want, got)
	}
}

func TestLiftLower_EmptyStringNeedsNoAllocator(t *testing.T) {
	tag, bits, err := Lower(nil, nil, value.String(""))
	if err != nil {
		t.Fatalf("Lower of empty string failed: %v", err)
	}
	got, err := Lift(nil, tag, bits)
	if err != nil {
		t.Fatalf("Lift of empty string failed: %v", err)
	}
	if !got.Equal(value.String("")) {
		t.Fatalf("Expected empty string, got %s", got)
	}
}

func TestLower_StringWithoutAllocatorFails(t *testing.T) {
	mem := newFakeMemory(16)
	if _, _, err := Lower(mem, nil, value.String("x")); err == nil {
		t.Fatal("Lower of string without allocator must fail")
	}
}

func TestLift_UnknownTag(t *testing.T) {
	if _, err := Lift(nil, 99, 0); err == nil {
		t.Fatal("Lift of unknown tag must fail")
	}
}

func TestLift_AbsentTagIsNotAnInput(t *testing.T) {
	if _, err := Lift(nil, TagAbsent, 0); err == nil {
		t.Fatal("TagAbsent must be rejected as an input tag")
	}
}

func TestLift_StringOutOfBounds(t *testing.T) {
	mem := newFakeMemory(8)
	if _, err := Lift(mem, TagString, packString(4, 100)); err == nil {
		t.Fatal("Lift of out-of-bounds string must fail")
	}
}

func TestLowerResult_Absent(t *testing.T) {
	tag, bits, err := LowerResult(nil, nil, value.Null(), false)
	if err != nil {
		t.Fatalf("LowerResult failed: %v", err)
	}
	if tag != TagAbsent || bits != 0 {
		t.Fatalf("Expected (TagAbsent, 0), got (%d, %d)", tag, bits)
	}
}

func TestPackString(t *testing.T) {
	ptr, length := unpackString(packString(0xDEAD, 0xBEEF))
	if ptr != 0xDEAD || length != 0xBEEF {
		t.Fatalf("pack/unpack mismatch: ptr=%x len=%x", ptr, length)
	}
}
