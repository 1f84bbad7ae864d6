package state

import (
	"reflect"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-hiddenquery/pkg/events"
)

// MemoryModel is an in-memory Model. Listeners fire only when a value
// actually changes and always run outside the model lock, so they may read or
// write the model themselves.
type MemoryModel struct {
	mu        sync.RWMutex
	values    map[string]any
	listeners map[string][]listener
}

type listener struct {
	id string
	fn ChangeFunc
}

// NewMemoryModel returns a model seeded with a copy of initial.
func NewMemoryModel(initial map[string]any) *MemoryModel {
	values := make(map[string]any, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &MemoryModel{
		values:    values,
		listeners: map[string][]listener{},
	}
}

// Get returns the value stored under key, or nil.
func (m *MemoryModel) Get(key string) any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key]
}

// Set stores value under key and notifies listeners when it changed.
func (m *MemoryModel) Set(key string, value any) {
	m.mu.Lock()
	previous, existed := m.values[key]
	if existed && reflect.DeepEqual(previous, value) {
		m.mu.Unlock()
		return
	}
	m.values[key] = value
	fns := make([]ChangeFunc, 0, len(m.listeners[key]))
	for _, l := range m.listeners[key] {
		fns = append(fns, l.fn)
	}
	m.mu.Unlock()

	change := Change{Key: key, Previous: previous, Value: value}
	for _, fn := range fns {
		fn(change)
	}
}

// Subscribe registers fn for changes of key.
func (m *MemoryModel) Subscribe(key string, fn ChangeFunc) *events.Subscription {
	id := uuid.NewString()
	if fn == nil {
		return events.NewSubscription(id, key, nil)
	}
	m.mu.Lock()
	m.listeners[key] = append(m.listeners[key], listener{id: id, fn: fn})
	m.mu.Unlock()
	return events.NewSubscription(id, key, func() { m.unsubscribe(key, id) })
}

// Snapshot returns a copy of every stored attribute.
func (m *MemoryModel) Snapshot() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]any, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

func (m *MemoryModel) unsubscribe(key, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current := m.listeners[key]
	for i, l := range current {
		if l.id == id {
			m.listeners[key] = append(current[:i:i], current[i+1:]...)
			break
		}
	}
	if len(m.listeners[key]) == 0 {
		delete(m.listeners, key)
	}
}
