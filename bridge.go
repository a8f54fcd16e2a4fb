package collbridge

// Memory is a bounded view of guest linear memory. Reads and writes
// fail with an error when the requested range falls outside the
// guest's current memory size.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
}

// MemorySizer provides the current size of guest linear memory in bytes.
type MemorySizer interface {
	Size() uint32
}

// Allocator allocates guest memory for host-to-guest payloads.
// Implementations typically call back into a guest-exported allocator.
type Allocator interface {
	Alloc(size, align uint32) (uint32, error)
	Free(ptr, size, align uint32)
}
