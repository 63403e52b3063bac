package recording

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ErrUnknownBackend is returned by NewBackend for a name nothing registered.
var ErrUnknownBackend = errors.New("recording: unknown backend")

// BackendFactory creates a new backend instance.
// Factories are registered via Register() and called by NewBackend().
type BackendFactory func() Backend

// Registry state, guarded by registryMu.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
)

// Register registers a backend factory with the given name.
// It is typically called from init() in backend packages,
// following the database/sql driver pattern:
//
//	func init() {
//	    recording.Register("obj", func() recording.Backend {
//	        return obj.New()
//	    })
//	}
//
// Register panics if factory is nil or if name is already registered, so
// clashes surface during program initialization.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("recording: Register factory is nil")
	}
	if _, dup := backends[name]; dup {
		panic("recording: Register called twice for " + name)
	}
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// If the backend is not registered, this is a no-op.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// NewBackend creates a new backend instance by name.
//
//	import _ "github.com/gogpu/cogwheel/recording/backends/obj"
//
//	b, err := recording.NewBackend("obj")
//
// The error wraps ErrUnknownBackend and hints at a forgotten import.
func NewBackend(name string) (Backend, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (forgotten import?)", ErrUnknownBackend, name)
	}
	return factory(), nil
}

// MustBackend is like NewBackend but panics on error.
//
//	b := recording.MustBackend("preview")
func MustBackend(name string) Backend {
	b, err := NewBackend(name)
	if err != nil {
		panic(err)
	}
	return b
}

// Backends returns the registered backend names in alphabetical order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Sorted(maps.Keys(backends))
}

// IsRegistered reports whether a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Count returns the number of registered backends.
func Count() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(backends)
}
