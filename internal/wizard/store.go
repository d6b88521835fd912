package wizard

import "sync"

const maxHistory = 64

// Store owns the current State. Dispatch is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	state   State
	history []State
}

func NewStore() *Store { return &Store{state: Initial()} }

// Dispatch applies a and returns the new state.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, s.state)
	if len(s.history) > maxHistory {
		s.history = s.history[len(s.history)-maxHistory:]
	}
	s.state = Apply(s.state, a)
	return s.state.clone()
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Undo restores the state before the last Dispatch. It reports false when
// there is nothing to undo.
func (s *Store) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return false
	}
	s.state = s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	return true
}
