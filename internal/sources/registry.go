package sources

import (
	"fmt"
	"sort"
	"strings"
)

// Registry stores the source adapters for one pipeline instance. It is
// constructed explicitly at startup and passed into the collection call,
// so tests can build isolated registries without global state.
type Registry struct {
	adapters map[string]Adapter
}

func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// NewDefaultRegistry builds the registry with every built-in adapter.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	_ = registry.Register(NewRacingAndSportsAdapter())
	_ = registry.Register(NewDocFileAdapter())
	return registry
}

// Register adds one adapter. Adapter IDs are case-insensitive.
func (r *Registry) Register(adapter Adapter) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}
	if adapter == nil {
		return fmt.Errorf("adapter is nil")
	}
	id := normalizeAdapterID(adapter.SourceID())
	if id == "" {
		return fmt.Errorf("adapter source ID is required")
	}
	r.adapters[id] = adapter
	return nil
}

// Adapter resolves one adapter by ID.
func (r *Registry) Adapter(id string) (Adapter, error) {
	if r == nil || len(r.adapters) == 0 {
		return nil, fmt.Errorf("no source adapters are registered")
	}
	resolved := normalizeAdapterID(id)
	adapter, ok := r.adapters[resolved]
	if !ok {
		return nil, fmt.Errorf("source adapter %q is not registered (available: %s)", resolved, strings.Join(r.AdapterIDs(), ", "))
	}
	return adapter, nil
}

// Select returns the adapters matching the requested IDs, or every
// registered adapter when ids is empty.
func (r *Registry) Select(ids []string) ([]Adapter, error) {
	if r == nil {
		return nil, fmt.Errorf("registry is nil")
	}
	if len(ids) == 0 {
		selected := make([]Adapter, 0, len(r.adapters))
		for _, id := range r.AdapterIDs() {
			selected = append(selected, r.adapters[id])
		}
		return selected, nil
	}

	selected := make([]Adapter, 0, len(ids))
	for _, id := range ids {
		adapter, err := r.Adapter(id)
		if err != nil {
			return nil, err
		}
		selected = append(selected, adapter)
	}
	return selected, nil
}

// AdapterIDs lists the registered adapter IDs in sorted order.
func (r *Registry) AdapterIDs() []string {
	if r == nil {
		return nil
	}
	ids := make([]string, 0, len(r.adapters))
	for id := range r.adapters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func normalizeAdapterID(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
