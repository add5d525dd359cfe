package progress

import (
	"context"
	"errors"
	"sync"
)

// EventType represents a step of the completion cascade
type EventType string

const (
	EventContentCompleted EventType = "CONTENT_COMPLETED"
	EventUnitCompleted    EventType = "UNIT_COMPLETED"
	EventModuleCompleted  EventType = "MODULE_COMPLETED"
)

// Event is raised when a progress record transitions to COMPLETED
type Event struct {
	Type      EventType
	ModuleID  string
	UnitID    string
	ContentID string
	Points    int
}

// EventHandler reacts to a cascade event
type EventHandler func(ctx context.Context, ev Event) error

// Dispatcher delivers cascade events to their handlers synchronously,
// in subscription order, on the caller's goroutine.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[EventType][]EventHandler
}

// NewDispatcher creates a dispatcher without handlers
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[EventType][]EventHandler),
	}
}

// Subscribe registers "h" for events of type "t"
func (d *Dispatcher) Subscribe(t EventType, h EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[t] = append(d.handlers[t], h)
}

// Dispatch runs every handler of the event type. A failing handler does not stop
// the ones after it; all errors are joined.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) error {
	d.mu.RLock()
	handlers := append([]EventHandler(nil), d.handlers[ev.Type]...)
	d.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := h(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
