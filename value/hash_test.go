package value

import (
	"testing"
)

func TestFNVHasher_Deterministic(t *testing.T) {
	h := FNVHasher{}
	vals := []Value{
		Null(),
		Bool(true),
		Bool(false),
		Number(0),
		Number(42.5),
		String(""),
		String("key"),
		HandleRef(1),
	}
	for _, v := range vals {
		if h.Hash(v) != h.Hash(v) {
			t.Fatalf("Hash of %s is not deterministic", v)
		}
	}
}

func TestFNVHasher_EqualValuesHashEqual(t *testing.T) {
	h := FNVHasher{}
	if h.Hash(String("abc")) != h.Hash(String("abc")) {
		t.Fatal("Equal strings must hash equal")
	}
	if h.Hash(Number(7)) != h.Hash(Number(7)) {
		t.Fatal("Equal numbers must hash equal")
	}
}

func TestFNVHasher_KindSeparation(t *testing.T) {
	h := FNVHasher{}
	// Same payload bits must not collide across kinds.
	if h.Hash(Number(0)) == h.Hash(HandleRef(0)) {
		t.Fatal("Number(0) and HandleRef(0) hash to the same digest")
	}
	if h.Hash(Null()) == h.Hash(String("")) {
		t.Fatal("Null and empty string hash to the same digest")
	}
}
