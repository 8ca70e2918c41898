// Package notify is the transient status side-channel for cart operations.
// The cart manager publishes one pending and one terminal event per server
// round-trip; presentation layers subscribe to drive toasts or spinners. The
// channel is decorative and carries no state invariant.
package notify

import (
	"sync"

	"github.com/google/uuid"
)

// Phase is the lifecycle stage of an operation event.
type Phase string

const (
	PhasePending   Phase = "pending"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
)

// Event describes one stage of one operation. Events for the same operation
// invocation share an ID.
type Event struct {
	ID    uuid.UUID
	Op    string
	Phase Phase
	Err   error
}

// Bus fans events out to subscribers. The zero value is ready to use;
// publishing with no subscribers is a no-op.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(Event)
}

// Subscribe registers fn for every subsequent event and returns a function
// that removes the subscription.
func (b *Bus) Subscribe(fn func(Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[int]func(Event))
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Publish delivers the event to all current subscribers, synchronously and in
// no particular order.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	fns := make([]func(Event), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}
