package bridge

import (
	"math"

	collbridge "github.com/hostkit/collection-bridge"
	"github.com/hostkit/collection-bridge/errors"
	"github.com/hostkit/collection-bridge/registry"
	"github.com/hostkit/collection-bridge/value"
)

// Value tags on the wire. A value crosses the boundary as
// (tag i32, bits i64); TagAbsent only ever appears in results.
const (
	TagNull uint32 = iota
	TagBool
	TagNumber
	TagString
	TagHandle
	TagAbsent
)

func packString(ptr, length uint32) uint64 {
	return uint64(ptr)<<32 | uint64(length)
}

func unpackString(bits uint64) (ptr, length uint32) {
	return uint32(bits >> 32), uint32(bits)
}

// Lift reconstructs a host value from its wire form. String payloads
// are copied out of guest memory, so the lifted value stays valid
// after the guest reuses the buffer.
func Lift(mem collbridge.Memory, tag uint32, bits uint64) (value.Value, error) {
	switch tag {
	case TagNull:
		return value.Null(), nil
	case TagBool:
		return value.Bool(bits != 0), nil
	case TagNumber:
		return value.Number(math.Float64frombits(bits)), nil
	case TagString:
		ptr, length := unpackString(bits)
		if length == 0 {
			return value.String(""), nil
		}
		if mem == nil {
			return value.Null(), errors.InvalidData(errors.PhaseLift, "guest has no memory to read string payload")
		}
		data, err := mem.Read(ptr, length)
		if err != nil {
			return value.Null(), err
		}
		return value.String(string(data)), nil
	case TagHandle:
		return value.HandleRef(registry.Handle(bits)), nil
	}
	return value.Null(), errors.InvalidTag(errors.PhaseLift, tag)
}

// Lower converts a host value to its wire form. String payloads are
// written into guest memory through the guest's allocator.
func Lower(mem collbridge.Memory, alloc collbridge.Allocator, v value.Value) (uint32, uint64, error) {
	switch v.Kind() {
	case value.KindNull:
		return TagNull, 0, nil
	case value.KindBool:
		if v.AsBool() {
			return TagBool, 1, nil
		}
		return TagBool, 0, nil
	case value.KindNumber:
		return TagNumber, math.Float64bits(v.AsNumber()), nil
	case value.KindString:
		s := v.AsString()
		if len(s) == 0 {
			return TagString, packString(0, 0), nil
		}
		if alloc == nil {
			return 0, 0, errors.Unsupported(errors.PhaseLower,
				"guest exports no "+GuestAllocExport+", cannot return string payloads")
		}
		ptr, err := alloc.Alloc(uint32(len(s)), 1)
		if err != nil {
			return 0, 0, err
		}
		if mem == nil {
			return 0, 0, errors.InvalidData(errors.PhaseLower, "guest has no memory to write string payload")
		}
		if err := mem.Write(ptr, []byte(s)); err != nil {
			return 0, 0, err
		}
		return TagString, packString(ptr, uint32(len(s))), nil
	case value.KindHandle:
		return TagHandle, uint64(v.AsHandle()), nil
	}
	return 0, 0, errors.InvalidData(errors.PhaseLower, "unknown value kind %d", v.Kind())
}

// LowerResult lowers an optional operation result; absence becomes
// TagAbsent with zero bits.
func LowerResult(mem collbridge.Memory, alloc collbridge.Allocator, v value.Value, ok bool) (uint32, uint64, error) {
	if !ok {
		return TagAbsent, 0, nil
	}
	return Lower(mem, alloc, v)
}
