package plugin

import "sync"

// Registry holds the plugins registered at startup. Lookup is an ordered
// scan: the first plugin exposing the requested capability wins, whatever
// its enabled state. Callers decide what a disabled plugin means.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
}

// NewRegistry creates an empty plugin registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a plugin. Registration order is lookup order.
func (r *Registry) Register(p Plugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins = append(r.plugins, p)
}

// AuthPlugin returns the first registered authentication-capable plugin,
// or nil if none is registered.
func (r *Registry) AuthPlugin() AuthPlugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.plugins {
		if ap, ok := p.(AuthPlugin); ok {
			return ap
		}
	}
	return nil
}

// All returns the registered plugins in registration order
func (r *Registry) All() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Plugin, len(r.plugins))
	copy(out, r.plugins)
	return out
}
