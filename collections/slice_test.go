package collections

import (
	"testing"

	"github.com/hostkit/collection-bridge/value"
)

func TestSlice_View(t *testing.T) {
	s := NewWithDefaults()
	src := s.NewVector()
	for i := 0; i < 10; i++ {
		s.VectorPush(src, value.Number(float64(i)))
	}

	sl := s.NewSlice(src, 2, 5)
	if sl == 0 {
		t.Fatal("Expected non-zero slice handle")
	}
	if s.SliceLen(sl) != 3 {
		t.Fatalf("Expected view len 3, got %d", s.SliceLen(sl))
	}

	got, ok := s.SliceGet(sl, 0)
	if !ok || !got.Equal(value.Number(2)) {
		t.Fatalf("SliceGet(0) returned %s (ok=%v)", got, ok)
	}
	got, ok = s.SliceGet(sl, 2)
	if !ok || !got.Equal(value.Number(4)) {
		t.Fatalf("SliceGet(2) returned %s (ok=%v)", got, ok)
	}
	if _, ok := s.SliceGet(sl, 3); ok {
		t.Fatal("SliceGet past the view must be absent")
	}
}

func TestSlice_InvertedIntervalIsEmpty(t *testing.T) {
	s := NewWithDefaults()
	src := s.NewVector()
	for i := 0; i < 10; i++ {
		s.VectorPush(src, value.Number(float64(i)))
	}

	sl := s.NewSlice(src, 5, 2)
	if s.SliceLen(sl) != 0 {
		t.Fatalf("view(5, 2) must be empty, len=%d", s.SliceLen(sl))
	}
	if _, ok := s.SliceGet(sl, 0); ok {
		t.Fatal("Empty view must read absent")
	}
}

func TestSlice_BoundsAlwaysWithinSource(t *testing.T) {
	s := NewWithDefaults()
	src := s.NewVector()
	for i := 0; i < 10; i++ {
		s.VectorPush(src, value.Number(float64(i)))
	}

	cases := []struct{ start, end int64 }{
		{-5, 3}, {0, 100}, {-5, -1}, {7, 3}, {100, 200},
	}
	for _, c := range cases {
		sl := s.NewSlice(src, c.start, c.end)
		_, lo, hi, ok := s.SliceBounds(sl)
		if !ok {
			t.Fatalf("SliceBounds failed for view(%d, %d)", c.start, c.end)
		}
		if lo < 0 || lo > hi || hi > 10 {
			t.Fatalf("view(%d, %d): resolved [%d, %d) violates bounds", c.start, c.end, lo, hi)
		}
	}
}

func TestSlice_NoCopy(t *testing.T) {
	s := NewWithDefaults()
	src := s.NewVector()
	s.VectorPush(src, value.Number(1))
	s.VectorPush(src, value.Number(2))

	sl := s.NewSlice(src, 0, 2)

	// Reads delegate to the live source, so a later write shows
	// through the view.
	s.VectorSet(src, 1, value.Number(99))
	got, ok := s.SliceGet(sl, 1)
	if !ok || !got.Equal(value.Number(99)) {
		t.Fatalf("View did not see source write: %s (ok=%v)", got, ok)
	}
}

func TestSlice_DropLeavesSourceIntact(t *testing.T) {
	s := NewWithDefaults()
	src := s.NewVector()
	s.VectorPush(src, value.Number(1))

	sl := s.NewSlice(src, 0, 1)
	if !s.Destroy(sl) {
		t.Fatal("Destroy of view failed")
	}

	if s.VectorLen(src) != 1 {
		t.Fatal("Destroying a view must not touch the source")
	}
	if _, ok := s.VectorGet(src, 0); !ok {
		t.Fatal("Source unreadable after view destroy")
	}
}

func TestSlice_ShrunkSourceReadsAbsent(t *testing.T) {
	s := NewWithDefaults()
	src := s.NewVector()
	for i := 0; i < 5; i++ {
		s.VectorPush(src, value.Number(float64(i)))
	}

	sl := s.NewSlice(src, 2, 5)

	// Destroy and recreate a shorter vector in the same slot to
	// simulate the source shrinking under the view.
	s.Destroy(src)
	src2 := s.NewVector()
	if src2 != src {
		t.Skipf("slot not reused (%d vs %d), cannot simulate shrink", src2, src)
	}
	s.VectorPush(src2, value.Number(0))

	if _, ok := s.SliceGet(sl, 0); ok {
		t.Fatal("Read past the live source length must be absent")
	}
}

func TestSlice_SourceMustBeVector(t *testing.T) {
	s := NewWithDefaults()
	m := s.NewHashMap()

	if sl := s.NewSlice(m, 0, 1); sl != 0 {
		t.Fatal("Slicing a hash map must fail with handle 0")
	}
	if sl := s.NewSlice(0, 0, 1); sl != 0 {
		t.Fatal("Slicing handle 0 must fail")
	}
}
