package services

import "sync"

// LockRegistry hands out one mutex per event id so that draw, respond, and
// waitlist operations against the same event are serialized while different
// events proceed in parallel. Locks are created on first use and kept for
// the life of the process.
type LockRegistry struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLockRegistry returns an empty LockRegistry.
func NewLockRegistry() *LockRegistry {
	return &LockRegistry{locks: make(map[string]*sync.Mutex)}
}

// Acquire locks the event's mutex and returns the release function.
// Callers must defer the release.
func (r *LockRegistry) Acquire(eventID string) func() {
	r.mu.Lock()
	l, ok := r.locks[eventID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[eventID] = l
	}
	r.mu.Unlock()

	l.Lock()
	return l.Unlock
}
