package backend

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/gplot/gpucore"
)

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for backend selection (first available wins).
	backendPriority = []string{BackendWGPU, BackendSoftware}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the sorted names of registered backends.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get creates a context of the named backend.
func Get(name string) (gpucore.Context, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	ctx, err := factory()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrBackendNotAvailable, name, err)
	}
	return ctx, nil
}

// Default creates a context of the best available backend.
// Priority order: wgpu > software, then any other registered backend in
// name order. Backends whose factory fails are skipped; if none succeeds
// the joined errors are returned.
func Default() (gpucore.Context, error) {
	var errs []error
	tried := make(map[string]bool)

	for _, name := range append(append([]string(nil), backendPriority...), Available()...) {
		if tried[name] || !IsRegistered(name) {
			continue
		}
		tried[name] = true
		ctx, err := Get(name)
		if err == nil {
			return ctx, nil
		}
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil, ErrBackendNotAvailable
	}
	return nil, errors.Join(errs...)
}

// MustDefault returns the default context or panics.
func MustDefault() gpucore.Context {
	ctx, err := Default()
	if err != nil {
		panic(err)
	}
	return ctx
}
