package value

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Hasher digests a Value into a fixed-width key. Implementations must
// be deterministic and total over the kind set: equal values hash
// equal, and no value may fail to hash.
type Hasher interface {
	Hash(Value) uint64
}

// FNVHasher is the default Hasher, an FNV-1a digest over the kind tag
// and the canonical payload bytes.
type FNVHasher struct{}

// Hash implements Hasher.
func (FNVHasher) Hash(v Value) uint64 {
	h := fnv.New64a()
	h.Write([]byte{byte(v.kind)})

	var buf [8]byte
	switch v.kind {
	case KindNull:
	case KindBool:
		if v.b {
			buf[0] = 1
		}
		h.Write(buf[:1])
	case KindNumber:
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v.num))
		h.Write(buf[:])
	case KindString:
		h.Write([]byte(v.str))
	case KindHandle:
		binary.LittleEndian.PutUint64(buf[:], uint64(v.ref))
		h.Write(buf[:])
	}
	return h.Sum64()
}
