// Package collbridge provides a handle-based bridge that lets a
// WebAssembly guest create, address, and mutate host-side collection
// containers through opaque integer handles.
//
// The guest never sees host memory layouts. A creation call allocates a
// container on the host, registers it in a handle table, and returns an
// address-sized handle. Every later operation passes the handle back;
// the bridge reconstitutes a typed reference, performs the operation,
// and returns results as dynamically-typed values. An explicit drop
// call reclaims the container exactly once.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	collbridge/      Root package with Memory and Allocator interfaces
//	├── value/       Dynamic value carrier and key hashing
//	├── index/       Signed-to-unsigned index normalization
//	├── registry/    Handle table with lifecycle observers
//	├── collections/ Hash map, vector, and slice adapters
//	├── bridge/      wazero host module and value marshaling ABI
//	└── errors/      Structured error types for boundary diagnostics
//
// # Quick Start
//
// Wire the bridge into a wazero runtime and run a guest:
//
//	eng, err := bridge.NewEngine(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close(ctx)
//
//	mod, err := eng.LoadModule(ctx, wasmBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_, err = mod.ExportedFunction("run").Call(ctx)
//
// The guest imports functions from the "bridge:collections/ops"
// namespace, e.g. hashmap-new, hashmap-set, vector-push, slice-view.
//
// # Handle Contract
//
// A handle is valid from the moment its creation call returns until its
// matching drop call. The bridge does not reference-count or garbage
// collect containers: the host and guest must agree that every handle
// is dropped exactly once and never used afterward. Misuse is detected
// only as far as a table miss allows; it surfaces as an absent result
// plus a debug log, never as memory corruption.
package collbridge
