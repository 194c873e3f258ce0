package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifierMirrorsTerminalMessages(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		texts []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottoken/sendMessage", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "42", r.PostForm.Get("chat_id"))
		mu.Lock()
		texts = append(texts, r.PostForm.Get("text"))
		mu.Unlock()
	}))
	defer srv.Close()

	n := NewNotifier("token", "42", nil)
	n.apiBase = srv.URL

	id := n.ShowLoading("Getting your summary...")
	assert.NotEmpty(t, id)
	n.Dismiss(id)
	n.DismissAll()
	n.ShowSuccess("")
	n.ShowSuccess("Summary ready!")
	n.ShowError("Resource not found.", "api-error")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"✅ Summary ready!", "❌ Resource not found."}, texts)
}

func TestNotifierMisconfigured(t *testing.T) {
	t.Parallel()

	n := NewNotifier("", "", nil)
	assert.False(t, n.Configured())
	assert.Error(t, n.Send(context.Background(), "hello"))
	n.ShowSuccess("ignored")
}

func TestNotifierReportsHTTPFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	n := NewNotifier("token", "42", nil)
	n.apiBase = srv.URL
	assert.ErrorContains(t, n.Send(context.Background(), "hello"), "401")
}
