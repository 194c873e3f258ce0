package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"NewsSnap/internal/domain"
	"NewsSnap/internal/ports"
	"NewsSnap/internal/state"
)

// ErrNotInHistory is returned when removing a URL that has no entry.
var ErrNotInHistory = errors.New("not in history")

// History keeps the store's history list in sync with persistent storage.
type History struct {
	store  *state.Store
	repo   ports.HistoryRepository
	logger *slog.Logger
}

// NewHistory wires the store with an optional repository.
func NewHistory(store *state.Store, repo ports.HistoryRepository, logger *slog.Logger) *History {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &History{store: store, repo: repo, logger: logger}
}

// Load hydrates the store from storage.
func (h *History) Load(ctx context.Context) error {
	if h.repo == nil {
		return nil
	}
	entries, err := h.repo.LoadHistory(ctx)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	h.store.Dispatch(state.LoadHistory{Entries: entries})
	h.logger.Debug("history loaded", "entries", len(h.store.State().History))
	return nil
}

// List returns the current list, most recent first.
func (h *History) List() []domain.Summary {
	return h.store.State().History
}

// Remove drops the entry for url.
func (h *History) Remove(ctx context.Context, url string) error {
	before := len(h.store.State().History)
	next := h.store.RemoveFromHistory(url)
	if len(next.History) == before {
		return fmt.Errorf("remove %s: %w", url, ErrNotInHistory)
	}
	return h.Save(ctx)
}

// Clear empties the list.
func (h *History) Clear(ctx context.Context) error {
	h.store.ClearHistory()
	return h.Save(ctx)
}

// Save writes the store's current list to storage.
func (h *History) Save(ctx context.Context) error {
	if h.repo == nil {
		return nil
	}
	if err := h.repo.ReplaceHistory(ctx, h.store.State().History); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}
