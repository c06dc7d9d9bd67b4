// Package reference provides the build-time reference registry.
package reference

import (
	"maps"
	"sync"
)

// Registry implements ports.ReferenceRegistry over the references declared in
// a build file.
type Registry struct {
	mu   sync.RWMutex
	refs map[string]string
}

// NewRegistry creates a registry holding a copy of refs.
func NewRegistry(refs map[string]string) *Registry {
	r := &Registry{refs: make(map[string]string, len(refs))}
	maps.Copy(r.refs, refs)
	return r
}

// Lookup returns the string form of the named reference.
func (r *Registry) Lookup(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.refs[name]
	return v, ok
}

// Define adds or replaces a reference.
func (r *Registry) Define(name, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refs[name] = value
}
