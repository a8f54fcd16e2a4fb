package collections

import (
	"go.uber.org/zap"

	"github.com/hostkit/collection-bridge/registry"
	"github.com/hostkit/collection-bridge/value"
)

// Kind IDs for the containers a Store registers in its handle table.
const (
	KindHashMap uint32 = iota + 1
	KindVector
	KindSlice
)

// Options configures a Store.
type Options struct {
	// Hasher digests hash map keys. Defaults to value.FNVHasher.
	Hasher value.Hasher
	// Logger receives debug output for handle misses and lifecycle
	// events. Defaults to a no-op logger.
	Logger *zap.Logger
}

// DefaultOptions returns the default Store configuration.
func DefaultOptions() Options {
	return Options{
		Hasher: value.FNVHasher{},
		Logger: zap.NewNop(),
	}
}

// Store owns the handle table shared by every container kind.
type Store struct {
	table  *registry.Table
	hasher value.Hasher
	log    *zap.Logger
}

// New creates a Store with the given options.
func New(opts Options) *Store {
	if opts.Hasher == nil {
		opts.Hasher = value.FNVHasher{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Store{
		table:  registry.NewTable(),
		hasher: opts.Hasher,
		log:    opts.Logger,
	}
}

// NewWithDefaults creates a Store with default options.
func NewWithDefaults() *Store {
	return New(DefaultOptions())
}

// Table returns the underlying handle table, e.g. to subscribe
// lifecycle observers.
func (s *Store) Table() *registry.Table {
	return s.table
}

// Destroy reclaims the container named by h, whatever its kind.
// Destroying a slice view never touches its source. Reports false on a
// dead or unknown handle; the exactly-once discipline is the caller's
// contract, a second Destroy is only detected, not defended against.
func (s *Store) Destroy(h registry.Handle) bool {
	_, ok := s.table.Remove(h)
	if !ok {
		s.log.Debug("destroy on dead handle", zap.Uint64("handle", uint64(h)))
	}
	return ok
}

// Len reports the element count of the container named by h, for any
// container kind. Dead handles report 0.
func (s *Store) Len(h registry.Handle) int {
	v, ok := s.table.Get(h)
	if !ok {
		s.miss("len", h)
		return 0
	}
	switch c := v.(type) {
	case *hashMap:
		return c.len()
	case *vector:
		return c.len()
	case *sliceView:
		return c.len()
	}
	return 0
}

// Close drops every live container and closes the table.
func (s *Store) Close() error {
	return s.table.Close()
}

func (s *Store) miss(op string, h registry.Handle) {
	s.log.Debug("operation on dead or foreign handle",
		zap.String("op", op),
		zap.Uint64("handle", uint64(h)))
}
