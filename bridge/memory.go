package bridge

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	collbridge "github.com/hostkit/collection-bridge"
	"github.com/hostkit/collection-bridge/errors"
)

// GuestAllocExport is the guest export used to allocate memory for
// host-to-guest string payloads.
const GuestAllocExport = "cabi_realloc"

// WrapMemory adapts wazero api.Memory to collbridge.Memory.
func WrapMemory(mem api.Memory) collbridge.Memory {
	if mem == nil {
		return nil
	}
	return &memoryWrapper{mem: mem}
}

// WrapAllocator adapts a guest-exported realloc to collbridge.Allocator.
func WrapAllocator(ctx context.Context, fn api.Function) collbridge.Allocator {
	if fn == nil {
		return nil
	}
	return &allocatorWrapper{ctx: ctx, fn: fn}
}

type memoryWrapper struct {
	mem api.Memory
}

func (m *memoryWrapper) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseLift, offset, length)
	}
	return data, nil
}

func (m *memoryWrapper) Write(offset uint32, data []byte) error {
	if !m.mem.Write(offset, data) {
		return errors.OutOfBounds(errors.PhaseLower, offset, uint32(len(data)))
	}
	return nil
}

func (m *memoryWrapper) Size() uint32 {
	return m.mem.Size()
}

type allocatorWrapper struct {
	ctx context.Context
	fn  api.Function
}

func (a *allocatorWrapper) Alloc(size, align uint32) (uint32, error) {
	results, err := a.fn.Call(a.ctx, 0, 0, uint64(align), uint64(size))
	if err != nil {
		return 0, errors.AllocationFailed(errors.PhaseLower, size, err)
	}
	if len(results) == 0 {
		return 0, errors.AllocationFailed(errors.PhaseLower, size, nil)
	}
	return uint32(results[0]), nil
}

func (a *allocatorWrapper) Free(ptr, size, align uint32) {
	_, _ = a.fn.Call(a.ctx, uint64(ptr), uint64(size), uint64(align), 0)
}
