package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Handler receives published events
type Handler func(Event)

type subscription struct {
	id  int
	all bool
	fn  Handler
}

// Bus delivers events synchronously, in publish order, to the handlers
// subscribed to their kind.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Kind][]subscription
	all    []subscription
	now    func() time.Time
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{
		subs: make(map[Kind][]subscription),
		now:  time.Now,
	}
}

// Subscribe registers fn for one kind and returns a function removing it
func (b *Bus) Subscribe(kind Kind, fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[kind] = append(b.subs[kind], subscription{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.subs[kind] = remove(b.subs[kind], id)
	}
}

// SubscribeAll registers fn for every kind
func (b *Bus) SubscribeAll(fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.all = append(b.all, subscription{id: id, all: true, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.all = remove(b.all, id)
	}
}

// Publish wraps payload in an Event and delivers it
func (b *Bus) Publish(kind Kind, payload any) Event {
	ev := Event{
		ID:      uuid.New(),
		Kind:    kind,
		At:      b.now(),
		Payload: payload,
	}

	// Handlers may publish or subscribe themselves, so call them unlocked
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[kind])+len(b.all))
	for _, s := range b.subs[kind] {
		handlers = append(handlers, s.fn)
	}
	for _, s := range b.all {
		handlers = append(handlers, s.fn)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ev)
	}
	return ev
}

func remove(subs []subscription, id int) []subscription {
	out := subs[:0:0]
	for _, s := range subs {
		if s.id != id {
			out = append(out, s)
		}
	}
	return out
}
