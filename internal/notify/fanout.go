package notify

import (
	"sync"

	"github.com/google/uuid"

	"NewsSnap/internal/ports"
)

// Fanout forwards every notification to several bridges.
type Fanout struct {
	mu      sync.Mutex
	targets []ports.Notifier
	handles map[ports.NotificationID][]ports.NotificationID
}

var _ ports.Notifier = (*Fanout)(nil)

// NewFanout skips nil targets.
func NewFanout(targets ...ports.Notifier) *Fanout {
	f := &Fanout{handles: map[ports.NotificationID][]ports.NotificationID{}}
	for _, t := range targets {
		if t != nil {
			f.targets = append(f.targets, t)
		}
	}
	return f
}

// ShowLoading opens a loading notice on every target under one composite handle.
func (f *Fanout) ShowLoading(message string) ports.NotificationID {
	id := ports.NotificationID(uuid.NewString())
	children := make([]ports.NotificationID, len(f.targets))
	for i, t := range f.targets {
		children[i] = t.ShowLoading(message)
	}
	f.mu.Lock()
	f.handles[id] = children
	f.mu.Unlock()
	return id
}

// Dismiss closes the target handles behind id.
func (f *Fanout) Dismiss(id ports.NotificationID) {
	f.mu.Lock()
	children, ok := f.handles[id]
	delete(f.handles, id)
	f.mu.Unlock()
	if !ok {
		return
	}
	for i, t := range f.targets {
		t.Dismiss(children[i])
	}
}

// DismissAll forwards to every target.
func (f *Fanout) DismissAll() {
	f.mu.Lock()
	f.handles = map[ports.NotificationID][]ports.NotificationID{}
	f.mu.Unlock()
	for _, t := range f.targets {
		t.DismissAll()
	}
}

// ShowSuccess forwards to every target.
func (f *Fanout) ShowSuccess(message string) {
	for _, t := range f.targets {
		t.ShowSuccess(message)
	}
}

// ShowError forwards to every target with the same dedupe key.
func (f *Fanout) ShowError(message, dedupeKey string) {
	for _, t := range f.targets {
		t.ShowError(message, dedupeKey)
	}
}
