package pielabel

import (
	"slices"
	"sync"
)

// PointerEvent is a pointer interaction in canvas coordinates.
type PointerEvent struct {
	Trigger string
	X, Y    float64
}

// ListenerID identifies a registration on an EventSource.
type ListenerID uint64

// EventSource is the host surface that delivers pointer events.
type EventSource interface {
	AddListener(trigger string, fn func(PointerEvent)) ListenerID
	RemoveListener(id ListenerID)
}

type listener struct {
	trigger string
	fn      func(PointerEvent)
}

// Emitter is an in-process EventSource. Listeners run synchronously on the
// emitting goroutine in registration order.
type Emitter struct {
	mu        sync.Mutex
	next      ListenerID
	listeners map[ListenerID]listener
}

// NewEmitter returns an emitter with no listeners.
func NewEmitter() *Emitter {
	return &Emitter{listeners: make(map[ListenerID]listener)}
}

// AddListener registers fn for trigger.
func (e *Emitter) AddListener(trigger string, fn func(PointerEvent)) ListenerID {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.next++
	e.listeners[e.next] = listener{trigger: trigger, fn: fn}
	return e.next
}

// RemoveListener unregisters id. Unknown ids are ignored.
func (e *Emitter) RemoveListener(id ListenerID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.listeners, id)
}

// Len returns the number of registered listeners.
func (e *Emitter) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}

// Emit delivers a pointer event to every listener of trigger and returns how
// many were called.
func (e *Emitter) Emit(trigger string, x, y float64) int {
	e.mu.Lock()
	ids := make([]ListenerID, 0, len(e.listeners))
	for id, l := range e.listeners {
		if l.trigger == trigger {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	fns := make([]func(PointerEvent), len(ids))
	for i, id := range ids {
		fns[i] = e.listeners[id].fn
	}
	e.mu.Unlock()

	ev := PointerEvent{Trigger: trigger, X: x, Y: y}
	for _, fn := range fns {
		fn(ev)
	}
	return len(fns)
}

var _ EventSource = (*Emitter)(nil)
