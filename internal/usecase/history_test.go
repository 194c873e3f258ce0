package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsSnap/internal/domain"
	"NewsSnap/internal/state"
)

func TestHistoryLoadDedupesAndCaps(t *testing.T) {
	t.Parallel()

	repo := &memoryHistoryRepo{entries: []domain.Summary{
		{OriginalURL: "https://a.com"},
		{OriginalURL: "https://b.com"},
		{OriginalURL: "https://a.com"},
	}}
	store := state.NewStore(nil)
	h := NewHistory(store, repo, nil)

	require.NoError(t, h.Load(context.Background()))
	list := h.List()
	require.Len(t, list, 2)
	assert.Equal(t, "https://a.com", list[0].OriginalURL)
}

func TestHistoryRemoveAndClearPersist(t *testing.T) {
	t.Parallel()

	repo := &memoryHistoryRepo{entries: []domain.Summary{
		{OriginalURL: "https://a.com"},
		{OriginalURL: "https://b.com"},
	}}
	h := NewHistory(state.NewStore(nil), repo, nil)
	ctx := context.Background()
	require.NoError(t, h.Load(ctx))

	require.NoError(t, h.Remove(ctx, "https://a.com"))
	require.Len(t, repo.entries, 1)
	assert.Equal(t, "https://b.com", repo.entries[0].OriginalURL)

	assert.ErrorIs(t, h.Remove(ctx, "https://missing.com"), ErrNotInHistory)

	require.NoError(t, h.Clear(ctx))
	assert.Empty(t, repo.entries)
	assert.Empty(t, h.List())
}

func TestHistoryWithoutRepository(t *testing.T) {
	t.Parallel()

	h := NewHistory(state.NewStore(nil), nil, nil)
	assert.NoError(t, h.Load(context.Background()))
	assert.NoError(t, h.Clear(context.Background()))
}
