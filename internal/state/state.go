package state

import (
	"slices"

	"NewsSnap/internal/domain"
)

// HistoryLimit caps the history list; the oldest entry is evicted on overflow.
const HistoryLimit = 10

// Status is the request lifecycle.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

// String returns the lowercase lifecycle name.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// RetryState is scoped to one request and reset on submit and success.
type RetryState struct {
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"maxAttempts"`
	IsRetrying  bool   `json:"isRetrying"`
	LastError   string `json:"lastError,omitempty"`
}

// State is the whole store snapshot. History is most-recent-first.
type State struct {
	Status  Status           `json:"-"`
	Current *domain.Summary  `json:"currentSummary"`
	Error   string           `json:"error,omitempty"`
	LastURL string           `json:"lastUrl,omitempty"`
	Retry   RetryState       `json:"retry"`
	History []domain.Summary `json:"history"`
}

// IsLoading is true while a summarization is in flight.
func (s State) IsLoading() bool {
	return s.Status == StatusLoading
}

// Action is a discrete state transition.
type Action interface {
	action()
}

type (
	// Submit starts a request for URL.
	Submit struct{ URL string }
	// Succeed stores the result and upserts it into history.
	Succeed struct{ Summary domain.Summary }
	// Fail records a user-facing error message.
	Fail struct{ Message string }
	// ClearError drops the error message only.
	ClearError struct{}
	// ClearCurrent drops the result and last URL.
	ClearCurrent struct{}
	// AttemptStarted mirrors executor progress into RetryState.
	AttemptStarted struct {
		Attempt     int
		MaxAttempts int
		LastError   string
	}
	// LoadHistory replaces history with persisted entries.
	LoadHistory struct{ Entries []domain.Summary }
	// AddToHistory upserts an entry without touching the lifecycle.
	AddToHistory struct{ Summary domain.Summary }
	// RemoveFromHistory deletes the entry with URL.
	RemoveFromHistory struct{ URL string }
	// ClearHistory empties history.
	ClearHistory struct{}
)

func (Submit) action()            {}
func (Succeed) action()           {}
func (Fail) action()              {}
func (ClearError) action()        {}
func (ClearCurrent) action()      {}
func (AttemptStarted) action()    {}
func (LoadHistory) action()       {}
func (AddToHistory) action()      {}
func (RemoveFromHistory) action() {}
func (ClearHistory) action()      {}

// Reduce is the pure transition function. It never mutates s.
// Loading to Loading is not special-cased; callers guard concurrent submits.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case Submit:
		s.Status = StatusLoading
		s.Error = ""
		s.LastURL = act.URL
		s.Retry = RetryState{}
	case Succeed:
		entry := act.Summary
		s.Status = StatusSuccess
		s.Error = ""
		s.Current = &entry
		s.Retry = RetryState{}
		s.History = upsertHistory(s.History, entry)
	case Fail:
		s.Status = StatusError
		s.Error = act.Message
		s.Current = nil
		s.Retry.IsRetrying = false
		s.Retry.LastError = act.Message
	case ClearError:
		s.Error = ""
		if s.Status == StatusError {
			s.Status = settledStatus(s)
		}
	case ClearCurrent:
		s.Current = nil
		s.LastURL = ""
		s.Retry = RetryState{}
		if s.Status == StatusSuccess {
			s.Status = StatusIdle
		}
	case AttemptStarted:
		s.Retry = RetryState{
			Attempt:     act.Attempt,
			MaxAttempts: act.MaxAttempts,
			IsRetrying:  act.Attempt > 1,
			LastError:   act.LastError,
		}
	case LoadHistory:
		s.History = capHistory(dedupe(act.Entries))
	case AddToHistory:
		s.History = upsertHistory(s.History, act.Summary)
	case RemoveFromHistory:
		s.History = slices.DeleteFunc(slices.Clone(s.History), func(e domain.Summary) bool {
			return e.OriginalURL == act.URL
		})
	case ClearHistory:
		s.History = nil
	}
	return s
}

func settledStatus(s State) Status {
	if s.Current != nil {
		return StatusSuccess
	}
	return StatusIdle
}

// upsertHistory puts entry first, drops any older entry with the same URL and caps the list.
func upsertHistory(history []domain.Summary, entry domain.Summary) []domain.Summary {
	out := make([]domain.Summary, 0, len(history)+1)
	out = append(out, entry)
	for _, e := range history {
		if e.OriginalURL != entry.OriginalURL {
			out = append(out, e)
		}
	}
	return capHistory(out)
}

func dedupe(entries []domain.Summary) []domain.Summary {
	seen := make(map[string]struct{}, len(entries))
	out := make([]domain.Summary, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.OriginalURL]; ok {
			continue
		}
		seen[e.OriginalURL] = struct{}{}
		out = append(out, e)
	}
	return out
}

func capHistory(history []domain.Summary) []domain.Summary {
	if len(history) > HistoryLimit {
		return history[:HistoryLimit]
	}
	return history
}
