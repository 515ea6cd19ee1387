// @lixen: #focus{status[metrics,registry]}
package status

import (
	"maps"
	"slices"
	"sync"
)

// Map is a concurrent name → metric table
// Lookups after the first return the same pointer, so hot paths cache it and skip the lock
type Map[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

// NewMap creates an empty Map
func NewMap[T any]() *Map[T] {
	return &Map[T]{items: make(map[string]*T)}
}

// Get returns the metric for name, allocating its zero value on first use
func (m *Map[T]) Get(name string) *T {
	m.mu.RLock()
	ptr, ok := m.items[name]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.items[name]; ok {
		return ptr
	}
	ptr = new(T)
	m.items[name] = ptr
	return ptr
}

// Has reports whether name has been registered
func (m *Map[T]) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[name]
	return ok
}

// Range calls fn for every metric in name order
func (m *Map[T]) Range(fn func(name string, ptr *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, name := range slices.Sorted(maps.Keys(m.items)) {
		fn(name, m.items[name])
	}
}

// Len returns the number of registered metrics
func (m *Map[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
