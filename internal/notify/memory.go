package notify

import (
	"sync"

	"NewsSnap/internal/ports"
)

// Kind enumerates notification events.
type Kind string

const (
	KindLoading    Kind = "loading"
	KindDismiss    Kind = "dismiss"
	KindDismissAll Kind = "dismiss_all"
	KindSuccess    Kind = "success"
	KindError      Kind = "error"
)

// Event is one call made on the bridge.
type Event struct {
	Kind      Kind                 `json:"kind"`
	ID        ports.NotificationID `json:"id,omitempty"`
	Message   string               `json:"message,omitempty"`
	DedupeKey string               `json:"dedupeKey,omitempty"`
}

// Memory keeps notifications in memory instead of printing them,
// for callers that report them as data (e.g. JSON output).
type Memory struct {
	mu     sync.Mutex
	events []Event
	board  *board
}

var _ ports.Notifier = (*Memory)(nil)

// NewMemory builds an empty recorder.
func NewMemory() *Memory {
	return &Memory{board: newBoard()}
}

// ShowLoading records a loading event and returns its handle.
func (m *Memory) ShowLoading(message string) ports.NotificationID {
	id := m.board.addLoading(message)
	m.record(Event{Kind: KindLoading, ID: id, Message: message})
	return id
}

// Dismiss records the dismissal of one handle.
func (m *Memory) Dismiss(id ports.NotificationID) {
	m.board.remove(id)
	m.record(Event{Kind: KindDismiss, ID: id})
}

// DismissAll records a dismissal of every active handle.
func (m *Memory) DismissAll() {
	m.board.clear()
	m.record(Event{Kind: KindDismissAll})
}

// ShowSuccess records a success event.
func (m *Memory) ShowSuccess(message string) {
	m.record(Event{Kind: KindSuccess, Message: message})
}

// ShowError drops the event when dedupeKey is still visible.
func (m *Memory) ShowError(message, dedupeKey string) {
	if !m.board.addError(message, dedupeKey) {
		return
	}
	m.record(Event{Kind: KindError, Message: message, DedupeKey: dedupeKey})
}

// Events returns a copy of everything recorded so far.
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Count returns how many events of kind were recorded.
func (m *Memory) Count(kind Kind) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, ev := range m.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// Active returns the number of visible loading and error notifications.
func (m *Memory) Active() int {
	return m.board.active()
}

func (m *Memory) record(ev Event) {
	m.mu.Lock()
	m.events = append(m.events, ev)
	m.mu.Unlock()
}
