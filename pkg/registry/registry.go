package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cakeflow/cake/pkg/transform"
)

// Registry manages transform registration and lookup by name. It is safe
// for concurrent use: registration takes a write lock, lookup takes a read
// lock.
type Registry struct {
	mu         sync.RWMutex
	transforms map[string]*transform.Transform
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{transforms: make(map[string]*transform.Transform)}
}

// Register adds t to the registry under t.Name. It fails with
// ErrAlreadyRegistered if that name is already taken.
func (r *Registry) Register(t *transform.Transform) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.transforms[t.Name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, t.Name)
	}
	r.transforms[t.Name] = t
	return nil
}

// MustRegister registers t and panics on error. Intended for use in
// package-level init blocks where registration must succeed.
func (r *Registry) MustRegister(t *transform.Transform) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Lookup resolves name to its registered Transform.
func (r *Registry) Lookup(name string) (*transform.Transform, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.transforms[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return t, nil
}

// Names returns every registered transform name in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.transforms))
	for name := range r.transforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
