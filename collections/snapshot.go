package collections

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/hostkit/collection-bridge/errors"
	"github.com/hostkit/collection-bridge/registry"
	"github.com/hostkit/collection-bridge/value"
)

// cborEncMode uses canonical mode so equal containers encode to equal
// bytes regardless of bucket order.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("collections: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

type wireValue struct {
	Str  string  `cbor:"s,omitempty"`
	Num  float64 `cbor:"n,omitempty"`
	Ref  uint64  `cbor:"h,omitempty"`
	Kind uint8   `cbor:"k"`
	Bool bool    `cbor:"b,omitempty"`
}

type wirePair struct {
	Key wireValue `cbor:"k"`
	Val wireValue `cbor:"v"`
}

type wireContainer struct {
	Entries []wirePair  `cbor:"e,omitempty"`
	Elems   []wireValue `cbor:"l,omitempty"`
	Kind    uint32      `cbor:"c"`
}

func toWire(v value.Value) wireValue {
	w := wireValue{Kind: uint8(v.Kind())}
	switch v.Kind() {
	case value.KindBool:
		w.Bool = v.AsBool()
	case value.KindNumber:
		w.Num = v.AsNumber()
	case value.KindString:
		w.Str = v.AsString()
	case value.KindHandle:
		w.Ref = uint64(v.AsHandle())
	}
	return w
}

func fromWire(w wireValue) (value.Value, error) {
	switch value.Kind(w.Kind) {
	case value.KindNull:
		return value.Null(), nil
	case value.KindBool:
		return value.Bool(w.Bool), nil
	case value.KindNumber:
		return value.Number(w.Num), nil
	case value.KindString:
		return value.String(w.Str), nil
	case value.KindHandle:
		return value.HandleRef(registry.Handle(w.Ref)), nil
	}
	return value.Null(), errors.InvalidData(errors.PhaseSnapshot, "unknown value kind %d", w.Kind)
}

// Snapshot serializes the hash map or vector named by h to canonical
// CBOR. Handle references inside the container are preserved as
// numeric payloads; whether they are still live after a Restore is the
// host's contract. Slice views are not snapshotable — they own no
// payload.
func (s *Store) Snapshot(h registry.Handle) ([]byte, error) {
	v, ok := s.table.Get(h)
	if !ok {
		return nil, errors.NotFound(errors.PhaseSnapshot, "container", fmt.Sprintf("%d", h))
	}

	var wire wireContainer
	switch c := v.(type) {
	case *hashMap:
		wire.Kind = KindHashMap
		wire.Entries = make([]wirePair, 0, c.len())
		c.each(func(k, val value.Value) bool {
			wire.Entries = append(wire.Entries, wirePair{Key: toWire(k), Val: toWire(val)})
			return true
		})
	case *vector:
		wire.Kind = KindVector
		wire.Elems = make([]wireValue, 0, len(c.elems))
		for _, e := range c.elems {
			wire.Elems = append(wire.Elems, toWire(e))
		}
	default:
		return nil, errors.Unsupported(errors.PhaseSnapshot, "slice views cannot be snapshot")
	}

	return cborEncMode.Marshal(&wire)
}

// Restore deserializes a Snapshot payload into a fresh container and
// returns its handle.
func (s *Store) Restore(data []byte) (registry.Handle, error) {
	var wire wireContainer
	if err := cbor.Unmarshal(data, &wire); err != nil {
		return 0, errors.Wrap(errors.PhaseSnapshot, errors.KindInvalidData, err, "unmarshal container")
	}

	switch wire.Kind {
	case KindHashMap:
		m := newHashMap(s.hasher)
		for _, p := range wire.Entries {
			k, err := fromWire(p.Key)
			if err != nil {
				return 0, err
			}
			v, err := fromWire(p.Val)
			if err != nil {
				return 0, err
			}
			m.set(k, v)
		}
		return s.table.Insert(KindHashMap, m), nil
	case KindVector:
		vec := &vector{elems: make([]value.Value, 0, len(wire.Elems))}
		for _, w := range wire.Elems {
			v, err := fromWire(w)
			if err != nil {
				return 0, err
			}
			vec.elems = append(vec.elems, v)
		}
		return s.table.Insert(KindVector, vec), nil
	}
	return 0, errors.InvalidData(errors.PhaseSnapshot, "unknown container kind %d", wire.Kind)
}
