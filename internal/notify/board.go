package notify

import (
	"sync"

	"github.com/google/uuid"

	"NewsSnap/internal/ports"
)

// board tracks which notifications are currently visible.
type board struct {
	mu      sync.Mutex
	loading map[ports.NotificationID]string
	errors  map[string]string
}

func newBoard() *board {
	return &board{
		loading: map[ports.NotificationID]string{},
		errors:  map[string]string{},
	}
}

func (b *board) addLoading(message string) ports.NotificationID {
	id := ports.NotificationID(uuid.NewString())
	b.mu.Lock()
	b.loading[id] = message
	b.mu.Unlock()
	return id
}

// remove reports whether id was still visible.
func (b *board) remove(id ports.NotificationID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.loading[id]; !ok {
		return false
	}
	delete(b.loading, id)
	return true
}

// clear reports how many notifications were dismissed.
func (b *board) clear() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := len(b.loading) + len(b.errors)
	b.loading = map[ports.NotificationID]string{}
	b.errors = map[string]string{}
	return n
}

// addError reports false when dedupeKey is already visible.
func (b *board) addError(message, dedupeKey string) bool {
	if dedupeKey == "" {
		return true
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.errors[dedupeKey]; ok {
		b.errors[dedupeKey] = message
		return false
	}
	b.errors[dedupeKey] = message
	return true
}

func (b *board) active() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.loading) + len(b.errors)
}
