// Package client is a Go client library for the MileMeet API. It mirrors the
// server's resources as observable state: each resource client exposes its
// latest fetched collection or record through Signal cells that callers can
// read synchronously or subscribe to, and surfaces failures through a
// notification channel instead of returned errors where the original UI flow
// would show a toast.
package client

import "sync"

// Signal is a single observable value: readable synchronously, writable
// through Set, with subscribers notified on every change.
type Signal[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[int]func(T)
	next  int
}

// NewSignal creates a signal holding the given initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial, subs: make(map[int]func(T))}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set replaces the current value and notifies subscribers.
func (s *Signal[T]) Set(v T) {
	s.Update(func(T) T { return v })
}

// Update applies fn to the current value atomically and notifies subscribers.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.value = fn(s.value)
	v := s.value
	subs := make([]func(T), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	// Called outside the lock so a subscriber may read or update signals.
	for _, sub := range subs {
		sub(v)
	}
}

// Subscribe registers fn to run on every change and returns an unsubscribe
// function. The current value is not replayed.
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
