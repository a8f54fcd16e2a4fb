package bridge

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	collbridge "github.com/hostkit/collection-bridge"
	"github.com/hostkit/collection-bridge/collections"
	"github.com/hostkit/collection-bridge/registry"
	"github.com/hostkit/collection-bridge/value"
)

// Namespace is the import module name guests use for collection ops.
const Namespace = "bridge:collections/ops"

// HostModule marshals guest calls into Store operations.
type HostModule struct {
	store *collections.Store
}

// NewHostModule creates a host module over the given store.
func NewHostModule(store *collections.Store) *HostModule {
	return &HostModule{store: store}
}

// Store returns the underlying collection store.
func (h *HostModule) Store() *collections.Store {
	return h.store
}

// hostOp is the testable core of a host function: it reads parameters
// from the stack and writes results back, using the guest's memory and
// allocator for string payloads.
type hostOp func(mem collbridge.Memory, alloc collbridge.Allocator, stack []uint64) error

var (
	i32 = api.ValueTypeI32
	i64 = api.ValueTypeI64
)

type hostFunc struct {
	op      hostOp
	name    string
	params  []api.ValueType
	results []api.ValueType
}

func (h *HostModule) funcs() []hostFunc {
	return []hostFunc{
		{name: "hashmap-new", op: h.hashmapNew, results: []api.ValueType{i64}},
		{name: "hashmap-get", op: h.hashmapGet, params: []api.ValueType{i64, i32, i64}, results: []api.ValueType{i32, i64}},
		{name: "hashmap-set", op: h.hashmapSet, params: []api.ValueType{i64, i32, i64, i32, i64}},
		{name: "hashmap-remove", op: h.hashmapRemove, params: []api.ValueType{i64, i32, i64}, results: []api.ValueType{i32, i64}},
		{name: "hashmap-len", op: h.hashmapLen, params: []api.ValueType{i64}, results: []api.ValueType{i64}},
		{name: "hashmap-drop", op: h.drop, params: []api.ValueType{i64}},

		{name: "vector-new", op: h.vectorNew, results: []api.ValueType{i64}},
		{name: "vector-push", op: h.vectorPush, params: []api.ValueType{i64, i32, i64}},
		{name: "vector-get", op: h.vectorGet, params: []api.ValueType{i64, i64}, results: []api.ValueType{i32, i64}},
		{name: "vector-set", op: h.vectorSet, params: []api.ValueType{i64, i64, i32, i64}},
		{name: "vector-len", op: h.vectorLen, params: []api.ValueType{i64}, results: []api.ValueType{i64}},
		{name: "vector-drop", op: h.drop, params: []api.ValueType{i64}},

		{name: "slice-view", op: h.sliceView, params: []api.ValueType{i64, i64, i64}, results: []api.ValueType{i64}},
		{name: "slice-get", op: h.sliceGet, params: []api.ValueType{i64, i64}, results: []api.ValueType{i32, i64}},
		{name: "slice-len", op: h.sliceLen, params: []api.ValueType{i64}, results: []api.ValueType{i64}},
		{name: "slice-drop", op: h.drop, params: []api.ValueType{i64}},
	}
}

// Instantiate builds and instantiates the host module into rt.
func (h *HostModule) Instantiate(ctx context.Context, rt wazero.Runtime) (api.Module, error) {
	builder := rt.NewHostModuleBuilder(Namespace)
	for _, f := range h.funcs() {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(h.adapt(f.name, f.op), f.params, f.results).
			Export(f.name)
	}
	return builder.Instantiate(ctx)
}

// adapt wires a hostOp into a wazero host function. Marshaling errors
// trap the guest call.
func (h *HostModule) adapt(name string, op hostOp) api.GoModuleFunc {
	return func(ctx context.Context, mod api.Module, stack []uint64) {
		mem := WrapMemory(mod.Memory())
		alloc := WrapAllocator(ctx, mod.ExportedFunction(GuestAllocExport))
		if err := op(mem, alloc, stack); err != nil {
			Logger().Error("host call failed",
				zap.String("func", name),
				zap.Error(err))
			panic(err)
		}
	}
}

func (h *HostModule) hashmapNew(_ collbridge.Memory, _ collbridge.Allocator, stack []uint64) error {
	stack[0] = uint64(h.store.NewHashMap())
	return nil
}

func (h *HostModule) hashmapGet(mem collbridge.Memory, alloc collbridge.Allocator, stack []uint64) error {
	key, err := Lift(mem, uint32(stack[1]), stack[2])
	if err != nil {
		return err
	}
	v, ok := h.store.HashMapGet(registry.Handle(stack[0]), key)
	return writeResult(mem, alloc, v, ok, stack)
}

func (h *HostModule) hashmapSet(mem collbridge.Memory, _ collbridge.Allocator, stack []uint64) error {
	key, err := Lift(mem, uint32(stack[1]), stack[2])
	if err != nil {
		return err
	}
	val, err := Lift(mem, uint32(stack[3]), stack[4])
	if err != nil {
		return err
	}
	h.store.HashMapSet(registry.Handle(stack[0]), key, val)
	return nil
}

func (h *HostModule) hashmapRemove(mem collbridge.Memory, alloc collbridge.Allocator, stack []uint64) error {
	key, err := Lift(mem, uint32(stack[1]), stack[2])
	if err != nil {
		return err
	}
	v, ok := h.store.HashMapRemove(registry.Handle(stack[0]), key)
	return writeResult(mem, alloc, v, ok, stack)
}

func (h *HostModule) hashmapLen(_ collbridge.Memory, _ collbridge.Allocator, stack []uint64) error {
	stack[0] = uint64(h.store.HashMapLen(registry.Handle(stack[0])))
	return nil
}

func (h *HostModule) vectorNew(_ collbridge.Memory, _ collbridge.Allocator, stack []uint64) error {
	stack[0] = uint64(h.store.NewVector())
	return nil
}

func (h *HostModule) vectorPush(mem collbridge.Memory, _ collbridge.Allocator, stack []uint64) error {
	val, err := Lift(mem, uint32(stack[1]), stack[2])
	if err != nil {
		return err
	}
	h.store.VectorPush(registry.Handle(stack[0]), val)
	return nil
}

func (h *HostModule) vectorGet(mem collbridge.Memory, alloc collbridge.Allocator, stack []uint64) error {
	v, ok := h.store.VectorGet(registry.Handle(stack[0]), int64(stack[1]))
	return writeResult(mem, alloc, v, ok, stack)
}

func (h *HostModule) vectorSet(mem collbridge.Memory, _ collbridge.Allocator, stack []uint64) error {
	val, err := Lift(mem, uint32(stack[2]), stack[3])
	if err != nil {
		return err
	}
	h.store.VectorSet(registry.Handle(stack[0]), int64(stack[1]), val)
	return nil
}

func (h *HostModule) vectorLen(_ collbridge.Memory, _ collbridge.Allocator, stack []uint64) error {
	stack[0] = uint64(h.store.VectorLen(registry.Handle(stack[0])))
	return nil
}

func (h *HostModule) sliceView(_ collbridge.Memory, _ collbridge.Allocator, stack []uint64) error {
	view := h.store.NewSlice(registry.Handle(stack[0]), int64(stack[1]), int64(stack[2]))
	stack[0] = uint64(view)
	return nil
}

func (h *HostModule) sliceGet(mem collbridge.Memory, alloc collbridge.Allocator, stack []uint64) error {
	v, ok := h.store.SliceGet(registry.Handle(stack[0]), int64(stack[1]))
	return writeResult(mem, alloc, v, ok, stack)
}

func (h *HostModule) sliceLen(_ collbridge.Memory, _ collbridge.Allocator, stack []uint64) error {
	stack[0] = uint64(h.store.SliceLen(registry.Handle(stack[0])))
	return nil
}

func (h *HostModule) drop(_ collbridge.Memory, _ collbridge.Allocator, stack []uint64) error {
	h.store.Destroy(registry.Handle(stack[0]))
	return nil
}

func writeResult(mem collbridge.Memory, alloc collbridge.Allocator, v value.Value, ok bool, stack []uint64) error {
	tag, bits, err := LowerResult(mem, alloc, v, ok)
	if err != nil {
		return err
	}
	stack[0] = uint64(tag)
	stack[1] = bits
	return nil
}
