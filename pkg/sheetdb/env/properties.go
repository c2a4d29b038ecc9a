// Package env provides the script environment around a sheet store: a
// key/value property store, the session identity and date formatting.
package env

import (
	"maps"
	"sync"
)

// Properties is a concurrency-safe string key/value store.
type Properties struct {
	mu    sync.RWMutex
	props map[string]string
}

// NewProperties returns a store holding a copy of initial.
func NewProperties(initial map[string]string) *Properties {
	p := &Properties{props: make(map[string]string, len(initial))}
	maps.Copy(p.props, initial)
	return p
}

// Get returns the value for key and whether it is set.
func (p *Properties) Get(key string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.props[key]
	return v, ok
}

// All returns a copy of every property.
func (p *Properties) All() map[string]string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return maps.Clone(p.props)
}

// Set stores value under key.
func (p *Properties) Set(key, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.props[key] = value
}

// SetAll merges props into the store.
func (p *Properties) SetAll(props map[string]string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	maps.Copy(p.props, props)
}

// Delete removes key.
func (p *Properties) Delete(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.props, key)
}

// DeleteAll removes every property.
func (p *Properties) DeleteAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.props)
}
