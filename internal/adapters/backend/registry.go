package backend

import (
	"fmt"
	"sort"

	"bioportal/internal/core/domain"
	"bioportal/internal/core/ports"
)

// Registry resolves design backends by name.
type Registry struct {
	backends map[string]ports.DesignBackend
}

func NewRegistry(backends ...ports.DesignBackend) *Registry {
	r := &Registry{backends: make(map[string]ports.DesignBackend, len(backends))}
	for _, b := range backends {
		r.backends[b.Name()] = b
	}
	return r
}

func (r *Registry) Get(name string) (ports.DesignBackend, error) {
	b, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownBackend, name)
	}
	return b, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
