package events

import (
	"fmt"
	"sync"
)

// Bus is a simple event bus for UI services.
// Handlers run on their own goroutines and must not touch UI state.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]func(interface{})
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[string][]func(interface{})),
	}
}

// Subscribe registers a listener for an event type name (see NameOf)
func (b *Bus) Subscribe(eventType string, handler func(interface{})) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners[eventType] = append(b.listeners[eventType], handler)
}

// Publish sends an event to all listeners
func (b *Bus) Publish(event interface{}) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if handlers, ok := b.listeners[NameOf(event)]; ok {
		for _, handler := range handlers {
			go handler(event)
		}
	}
}

// NameOf returns the name events of v's type are published under
func NameOf(v interface{}) string {
	return fmt.Sprintf("%T", v)
}
