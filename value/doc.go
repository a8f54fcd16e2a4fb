// Package value provides the dynamically-typed carrier that crosses
// the collection bridge.
//
// A Value holds exactly one of a closed set of kinds: null, bool,
// number (f64), string, or a handle reference. Collections store and
// return Values so the bridge never needs to be generic over guest
// types. Values are plain copies; mutating a Value read out of a
// container never mutates the container.
//
// Equality is kind plus payload:
//
//	value.Number(1).Equal(value.Number(1)) // true
//	value.Number(1).Equal(value.Bool(true)) // false
//
// The Hasher interface is the hashing collaborator used by the hash
// map's key storage. Any implementation must be deterministic and
// total over the kind set; FNV is the default.
package value
