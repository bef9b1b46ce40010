package events

import (
	"fmt"
	"sync"

	"github.com/km-arc/go-foundation/framework/container"
)

// Listener handles a dispatched event payload.
type Listener func(event string, payload any) error

// Subscriber is implemented by container-resolved types that register
// their own listeners.
//
//	// Laravel: class UserEventSubscriber { public function subscribe($events) {...} }
type Subscriber interface {
	Subscribe(d *Dispatcher)
}

// Dispatcher is the in-process event bus — mirrors Laravel's
// Illuminate\Events\Dispatcher, without queueing.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[string][]Listener
	registry  *container.Registry // nil when constructed standalone
}

// New creates a standalone Dispatcher.
func New() *Dispatcher {
	return &Dispatcher{listeners: make(map[string][]Listener)}
}

// NewWithRegistry creates a Dispatcher that can resolve Subscribers out
// of the container.
func NewWithRegistry(r *container.Registry) *Dispatcher {
	d := New()
	d.registry = r
	return d
}

// Listen registers a listener for event.
//
//	// Laravel: Event::listen('user.created', fn($payload) => ...)
func (d *Dispatcher) Listen(event string, fn Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[event] = append(d.listeners[event], fn)
}

// Dispatch fires event to every listener in registration order, stopping
// at the first listener error.
//
//	// Laravel: Event::dispatch('user.created', $user)
func (d *Dispatcher) Dispatch(event string, payload any) error {
	d.mu.RLock()
	listeners := d.listeners[event]
	d.mu.RUnlock()

	for _, fn := range listeners {
		if err := fn(event, payload); err != nil {
			return fmt.Errorf("events: %s: %w", event, err)
		}
	}
	return nil
}

// Subscribe resolves abstract from the container and lets it register its
// listeners.
func (d *Dispatcher) Subscribe(abstract string) error {
	if d.registry == nil {
		return fmt.Errorf("events: dispatcher has no registry")
	}
	inst, err := d.registry.Make(abstract, nil)
	if err != nil {
		return err
	}
	sub, ok := inst.(Subscriber)
	if !ok {
		return fmt.Errorf("events: [%s] resolved to %T, which is not a Subscriber", abstract, inst)
	}
	sub.Subscribe(d)
	return nil
}

// HasListeners returns true if event has at least one listener.
func (d *Dispatcher) HasListeners(event string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners[event]) > 0
}

// Forget removes all listeners for event.
func (d *Dispatcher) Forget(event string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.listeners, event)
}
