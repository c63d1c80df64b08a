package provider

import (
	"fmt"
	"sort"
	"sync"

	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/core"
)

// Registry is a thread-safe agent roster. It implements core.Provider.
type Registry struct {
	mu      sync.RWMutex
	handles map[string]core.Handle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handles: make(map[string]core.Handle)}
}

// FromSpecs builds a registry from agent specs, failing on the first spec
// that cannot be constructed.
func FromSpecs(specs []Spec) (*Registry, error) {
	r := NewRegistry()
	for _, spec := range specs {
		h, err := NewHandle(spec)
		if err != nil {
			return nil, fmt.Errorf("agent %q: %w", spec.ID, err)
		}
		r.Register(h)
	}
	return r, nil
}

// Register adds a handle under its id, replacing any previous handle with the
// same id. The registry does not manage the handle's lifecycle.
func (r *Registry) Register(h core.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handles[h.ID()] = h
}

// Resolve implements the core.Provider interface.
func (r *Registry) Resolve(id string) (core.Handle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handles[id]
	if !ok {
		return nil, core.NewError(core.KindUnknownAgent, "", fmt.Errorf("agent %s is not registered", id))
	}
	return h, nil
}

// IDs implements the core.Provider interface. Ids are returned sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.handles))
	for id := range r.handles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
