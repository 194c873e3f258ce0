package state

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsSnap/internal/domain"
	"NewsSnap/internal/notify"
)

func entry(url string) domain.Summary {
	return domain.Summary{Summary: "summary of " + url, OriginalURL: url}
}

func TestLifecycleTransitions(t *testing.T) {
	t.Parallel()

	s := Reduce(State{}, Submit{URL: "https://a.com"})
	assert.True(t, s.IsLoading())
	assert.Equal(t, "https://a.com", s.LastURL)

	s = Reduce(s, AttemptStarted{Attempt: 2, MaxAttempts: 3, LastError: "Server error. Please try again later."})
	assert.True(t, s.Retry.IsRetrying)

	s = Reduce(s, Succeed{Summary: entry("https://a.com")})
	assert.Equal(t, StatusSuccess, s.Status)
	require.NotNil(t, s.Current)
	assert.Equal(t, RetryState{}, s.Retry)
	assert.Len(t, s.History, 1)

	s = Reduce(s, Submit{URL: "https://b.com"})
	s = Reduce(s, Fail{Message: "Resource not found."})
	assert.Equal(t, StatusError, s.Status)
	assert.Equal(t, "Resource not found.", s.Error)
	assert.Equal(t, "Resource not found.", s.Retry.LastError)
	assert.Nil(t, s.Current)
	assert.Len(t, s.History, 1, "failure keeps history")

	s = Reduce(s, ClearError{})
	assert.Empty(t, s.Error)
	assert.Equal(t, StatusIdle, s.Status)

	s = Reduce(s, ClearCurrent{})
	assert.Empty(t, s.LastURL)
}

func TestClearErrorKeepsResult(t *testing.T) {
	t.Parallel()

	s := State{Status: StatusError, Error: "x", Current: &domain.Summary{Summary: "s", OriginalURL: "u"}}
	s = Reduce(s, ClearError{})
	assert.Empty(t, s.Error)
	assert.NotNil(t, s.Current)
	assert.Equal(t, StatusSuccess, s.Status)
}

func TestSubmitResetsRetryState(t *testing.T) {
	t.Parallel()

	s := State{Status: StatusError, Error: "old", Retry: RetryState{Attempt: 3, MaxAttempts: 3, LastError: "old"}}
	s = Reduce(s, Submit{URL: "https://c.com"})
	assert.Equal(t, RetryState{}, s.Retry)
	assert.Empty(t, s.Error)
}

func TestHistoryDedupeMovesToFront(t *testing.T) {
	t.Parallel()

	s := State{}
	for _, u := range []string{"https://a.com", "https://b.com", "https://a.com"} {
		s = Reduce(s, Submit{URL: u})
		s = Reduce(s, Succeed{Summary: entry(u)})
	}

	require.Len(t, s.History, 2)
	assert.Equal(t, "https://a.com", s.History[0].OriginalURL)
	assert.Equal(t, "https://b.com", s.History[1].OriginalURL)
}

func TestHistoryCap(t *testing.T) {
	t.Parallel()

	s := State{}
	for i := 1; i <= 11; i++ {
		u := fmt.Sprintf("https://site%d.com", i)
		s = Reduce(s, Submit{URL: u})
		s = Reduce(s, Succeed{Summary: entry(u)})
	}

	require.Len(t, s.History, HistoryLimit)
	assert.Equal(t, "https://site11.com", s.History[0].OriginalURL)
	assert.Equal(t, "https://site2.com", s.History[HistoryLimit-1].OriginalURL)
}

func TestHistoryMutationsIndependentOfLifecycle(t *testing.T) {
	t.Parallel()

	s := State{Status: StatusLoading}
	s = Reduce(s, LoadHistory{Entries: []domain.Summary{entry("a"), entry("b"), entry("a")}})
	assert.Len(t, s.History, 2)

	before := s
	s = Reduce(s, RemoveFromHistory{URL: "a"})
	assert.Len(t, s.History, 1)
	assert.Len(t, before.History, 2, "reducer must not mutate its input")
	assert.True(t, s.IsLoading())

	s = Reduce(s, AddToHistory{Summary: entry("c")})
	assert.Equal(t, "c", s.History[0].OriginalURL)

	s = Reduce(s, ClearHistory{})
	assert.Empty(t, s.History)
	assert.True(t, s.IsLoading())
}

func TestStoreDismissesStaleNotifications(t *testing.T) {
	t.Parallel()

	n := notify.NewMemory()
	store := NewStore(n)
	n.ShowError("stale", "api-error")

	st := store.Submit("https://a.com")
	assert.True(t, st.IsLoading())
	assert.Equal(t, 0, n.Active())

	store.Fail("boom")
	n.ShowError("boom", "api-error")
	store.ClearError()
	assert.Equal(t, 0, n.Active())
	assert.Equal(t, 2, n.Count(notify.KindDismissAll))
}

func TestStoreSnapshotIsolation(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	store.Submit("https://a.com")
	store.Succeed(entry("https://a.com"))

	snap := store.State()
	snap.History[0].Summary = "changed"
	snap.Current.Summary = "changed"

	fresh := store.State()
	assert.Equal(t, "summary of https://a.com", fresh.History[0].Summary)
	assert.Equal(t, "summary of https://a.com", fresh.Current.Summary)
}
