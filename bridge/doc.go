// Package bridge exposes the collection store to WebAssembly guests as
// a wazero host module.
//
// The host module lives in the "bridge:collections/ops" namespace and
// exports one function per collection operation (hashmap-new,
// hashmap-get, vector-push, slice-view, ...). Dynamic values cross the
// boundary as a (tag i32, bits i64) pair; string payloads travel
// through guest linear memory with ptr<<32|len packed into bits, and
// host-to-guest strings are allocated through the guest's exported
// cabi_realloc.
//
// Absence is an explicit tag, never a trap. A malformed index clamps
// on the host side. A malformed value tag or an unreadable memory
// range is data corruption and traps the guest call.
//
// Engine is the convenience wrapper that owns a wazero runtime with
// the host module pre-instantiated:
//
//	eng, err := bridge.NewEngine(ctx, bridge.DefaultOptions())
//	mod, err := eng.LoadModule(ctx, wasmBytes)
//	_, err = mod.ExportedFunction("run").Call(ctx)
package bridge
