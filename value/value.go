package value

import (
	"strconv"

	"github.com/hostkit/collection-bridge/registry"
)

// Kind identifies which payload a Value carries.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindHandle
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindHandle:
		return "handle"
	}
	return "unknown"
}

// Value is a tagged variant over the closed kind set. The zero Value
// is null.
type Value struct {
	str  string
	num  float64
	ref  registry.Handle
	kind Kind
	b    bool
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// HandleRef returns a value referencing another container by handle.
func HandleRef(h registry.Handle) Value {
	return Value{kind: KindHandle, ref: h}
}

// Kind reports which payload the value carries.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the boolean payload. Valid only for KindBool.
func (v Value) AsBool() bool {
	return v.b
}

// AsNumber returns the numeric payload. Valid only for KindNumber.
func (v Value) AsNumber() float64 {
	return v.num
}

// AsString returns the string payload. Valid only for KindString.
func (v Value) AsString() string {
	return v.str
}

// AsHandle returns the handle payload. Valid only for KindHandle.
func (v Value) AsHandle() registry.Handle {
	return v.ref
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.num == o.num
	case KindString:
		return v.str == o.str
	case KindHandle:
		return v.ref == o.ref
	}
	return false
}

// String renders the value for logs and the inspector.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.str)
	case KindHandle:
		return "#" + strconv.FormatUint(uint64(v.ref), 10)
	}
	return "unknown"
}
