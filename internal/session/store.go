// ABOUTME: Owned, goroutine-safe holder of the session state
// ABOUTME: Tags each bootstrap with a generation so superseded lookups are dropped

package session

import "sync"

// Ticket identifies one bootstrap attempt.
type Ticket struct {
	gen uint64
}

// Generation returns the attempt number; later attempts have larger values.
func (t Ticket) Generation() uint64 { return t.gen }

// Store owns the session state. All mutations go through Reduce.
type Store struct {
	mu      sync.RWMutex
	state   State
	gen     uint64
	settled bool
}

// NewStore returns an anonymous store that has not bootstrapped yet.
func NewStore() *Store {
	return &Store{}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Phase derives the lifecycle position. Until a bootstrap has resolved (or
// the session was explicitly signed out) the store reports Bootstrapping.
func (s *Store) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case s.state.IsLoading || !s.settled:
		return Bootstrapping
	case s.state.IsAuthenticated:
		return Authenticated
	default:
		return Anonymous
	}
}

// Begin starts a new bootstrap attempt, superseding any outstanding one.
func (s *Store) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.state = Reduce(s.state, BootstrapStarted{})
	return Ticket{gen: s.gen}
}

// Resolve applies the result of the attempt t. It reports false and leaves
// the state alone when t has been superseded.
func (s *Store) Resolve(t Ticket, e Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.gen != s.gen {
		return false
	}
	s.state = Reduce(s.state, e)
	s.settled = true
	return true
}

// SignOut clears the session and invalidates any outstanding attempt.
func (s *Store) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.state = Reduce(s.state, SignedOut{})
	s.settled = true
}
