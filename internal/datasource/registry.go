package datasource

import (
	"maps"
	"slices"
	"sync"

	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

// Registry is a fixed-set name-to-source table. Sources are registered once
// at startup and looked up by name; registration of a duplicate name is an
// error rather than a silent override.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]DataSource
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		mu:      sync.RWMutex{},
		sources: make(map[string]DataSource),
	}
}

// Register adds a source under its own name.
func (r *Registry) Register(source DataSource) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := source.Name()
	if _, exists := r.sources[name]; exists {
		return errors.Newf(errors.ErrCodeDataSourceDuplicate, "data source %s is already registered", name)
	}

	r.sources[name] = source

	return nil
}

// Get returns the source registered under name.
func (r *Registry) Get(name string) (DataSource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	source, ok := r.sources[name]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeDataSourceNotFound, "no data source registered as %s", name)
	}

	return source, nil
}

// List returns the registered source names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.sources))
}
