package events

import "sync"

// Signal is an observable value shared by reference between components.
// Watchers are told only about changes.
type Signal[T comparable] struct {
	mu       sync.Mutex
	value    T
	nextID   int
	watchers map[int]func(T)
}

// NewSignal creates a signal holding initial
func NewSignal[T comparable](initial T) *Signal[T] {
	return &Signal[T]{value: initial, watchers: make(map[int]func(T))}
}

// Get returns the current value
func (s *Signal[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set stores v and notifies watchers when it differs from the current value.
// It reports whether the value changed.
func (s *Signal[T]) Set(v T) bool {
	s.mu.Lock()
	if s.value == v {
		s.mu.Unlock()
		return false
	}
	s.value = v
	watchers := make([]func(T), 0, len(s.watchers))
	for _, w := range s.watchers {
		watchers = append(watchers, w)
	}
	s.mu.Unlock()

	for _, w := range watchers {
		w(v)
	}
	return true
}

// Watch registers fn for future changes and returns a function removing it
func (s *Signal[T]) Watch(fn func(T)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.watchers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.watchers, id)
	}
}

// CelebrationSignal creates the "celebration active" flag and mirrors every
// change onto the bus as a Celebration event. A completed task raises the
// flag; whoever shows the celebration lowers it.
func CelebrationSignal(bus *Bus) *Signal[bool] {
	sig := NewSignal(false)
	if bus != nil {
		sig.Watch(func(active bool) {
			bus.Publish(Celebration, CelebrationPayload{Active: active})
		})
		bus.Subscribe(TaskCompleted, func(Event) {
			sig.Set(true)
		})
	}
	return sig
}
