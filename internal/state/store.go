package state

import (
	"slices"
	"sync"

	"NewsSnap/internal/domain"
	"NewsSnap/internal/ports"
)

// Store owns State and applies actions through Reduce.
// Submit and ClearError also clear stale notifications.
type Store struct {
	mu       sync.RWMutex
	state    State
	notifier ports.Notifier
}

// NewStore starts Idle with an empty history. notifier may be nil.
func NewStore(notifier ports.Notifier) *Store {
	return &Store{notifier: notifier}
}

// Dispatch applies a and returns the resulting snapshot.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state.clone()
	s.mu.Unlock()

	switch a.(type) {
	case Submit, ClearError:
		if s.notifier != nil {
			s.notifier.DismissAll()
		}
	}
	return next
}

// State returns a snapshot safe to keep and modify.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Submit moves to Loading for url.
func (s *Store) Submit(url string) State { return s.Dispatch(Submit{URL: url}) }

// Succeed stores summary and adds it to history.
func (s *Store) Succeed(summary domain.Summary) State { return s.Dispatch(Succeed{Summary: summary}) }

// Fail records a user-facing error message.
func (s *Store) Fail(message string) State { return s.Dispatch(Fail{Message: message}) }

// ClearError drops the error message.
func (s *Store) ClearError() State { return s.Dispatch(ClearError{}) }

// ClearCurrent drops the current result.
func (s *Store) ClearCurrent() State { return s.Dispatch(ClearCurrent{}) }

// RemoveFromHistory deletes the entry for url.
func (s *Store) RemoveFromHistory(url string) State { return s.Dispatch(RemoveFromHistory{URL: url}) }

// ClearHistory empties history.
func (s *Store) ClearHistory() State { return s.Dispatch(ClearHistory{}) }

func (st State) clone() State {
	st.History = slices.Clone(st.History)
	if st.Current != nil {
		current := *st.Current
		st.Current = &current
	}
	return st
}
