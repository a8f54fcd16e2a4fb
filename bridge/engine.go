package bridge

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/hostkit/collection-bridge/collections"
	"github.com/hostkit/collection-bridge/errors"
)

// Options configures an Engine.
type Options struct {
	// EnableWASI instantiates wasi_snapshot_preview1 so guests built
	// against WASI can run.
	EnableWASI bool
}

// DefaultOptions returns the default Engine configuration.
func DefaultOptions() Options {
	return Options{EnableWASI: true}
}

// Engine owns a wazero runtime with the collection host module wired
// in. One Engine hosts one Store shared by every guest it loads.
type Engine struct {
	runtime wazero.Runtime
	store   *collections.Store
	host    api.Module
}

// NewEngine creates a runtime, a store, and instantiates the host
// module into the runtime.
func NewEngine(ctx context.Context, opts Options) (*Engine, error) {
	rt := wazero.NewRuntime(ctx)

	store := collections.New(collections.Options{Logger: Logger()})
	hm := NewHostModule(store)

	host, err := hm.Instantiate(ctx, rt)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseHost, errors.KindInvalidInput, err, "instantiate host module")
	}

	if opts.EnableWASI {
		wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	}

	return &Engine{runtime: rt, store: store, host: host}, nil
}

// Store returns the collection store shared with guests.
func (e *Engine) Store() *collections.Store {
	return e.store
}

// Runtime returns the underlying wazero runtime.
func (e *Engine) Runtime() wazero.Runtime {
	return e.runtime
}

// LoadModule compiles and instantiates a guest module. The guest's
// imports from the bridge namespace resolve against this engine's
// host module.
func (e *Engine) LoadModule(ctx context.Context, bin []byte) (api.Module, error) {
	mod, err := e.runtime.Instantiate(ctx, bin)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseRuntime, errors.KindInvalidData, err, "instantiate guest module")
	}
	return mod, nil
}

// ExportedFunctions lists the exports of a guest binary without
// instantiating it.
func (e *Engine) ExportedFunctions(ctx context.Context, bin []byte) (map[string]api.FunctionDefinition, error) {
	compiled, err := e.runtime.CompileModule(ctx, bin)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseRuntime, errors.KindInvalidData, err, "compile guest module")
	}
	// The runtime owns the compiled module; it is released on Close.
	return compiled.ExportedFunctions(), nil
}

// Close drops every live container and shuts the runtime down.
func (e *Engine) Close(ctx context.Context) error {
	storeErr := e.store.Close()
	if err := e.runtime.Close(ctx); err != nil {
		return err
	}
	return storeErr
}
