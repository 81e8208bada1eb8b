package event

import (
	"fmt"
	"log"
	"sync"
)

// Listener handles one input event, a returned error is logged and does not
// stop delivery to later listeners
type Listener func(ev Input) error

// Bus dispatches normalized input events to listeners
//
// Architecture:
//   - Synchronous, fire-and-forget dispatch on the caller's goroutine
//   - Multiple listeners per event name, invoked in registration order
//   - A failing or panicking listener is isolated from the others
//   - Tracks the last pointer position for entities that follow it
type Bus struct {
	mu        sync.RWMutex
	listeners map[Name][]Listener
	pointer   Point
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[Name][]Listener),
	}
}

// AddListener registers fn for name and returns the bus for chaining
func (b *Bus) AddListener(name Name, fn Listener) *Bus {
	if fn == nil {
		return b
	}
	if !name.Valid() {
		log.Printf("event: listener for unknown event %q ignored", name)
		return b
	}
	b.mu.Lock()
	b.listeners[name] = append(b.listeners[name], fn)
	b.mu.Unlock()
	return b
}

// On registers a listener that cannot fail
func (b *Bus) On(name Name, fn func(ev Input)) *Bus {
	if fn == nil {
		return b
	}
	return b.AddListener(name, func(ev Input) error {
		fn(ev)
		return nil
	})
}

// ListenerCount returns the number of listeners registered for name
func (b *Bus) ListenerCount(name Name) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[name])
}

// Pointer returns the last known pointer position
func (b *Bus) Pointer() Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pointer
}

// Dispatch delivers ev to every listener of ev.Name
// Returns the number of listeners that failed
func (b *Bus) Dispatch(ev Input) int {
	b.mu.Lock()
	if ev.Name.IsPointer() {
		b.pointer = Point{X: ev.X, Y: ev.Y}
	}
	// Snapshot so listeners may register listeners without deadlock
	listeners := append([]Listener(nil), b.listeners[ev.Name]...)
	b.mu.Unlock()

	failed := 0
	for i, fn := range listeners {
		if err := invoke(fn, ev); err != nil {
			failed++
			log.Printf("event: listener %d for %s failed: %v", i, ev.Name, err)
		}
	}
	return failed
}

// invoke converts a listener panic into an error
func invoke(fn Listener, ev Input) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ev)
}
