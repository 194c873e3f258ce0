package summarizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsSnap/internal/domain"
	"NewsSnap/internal/retry"
)

func TestClientSummarize(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, summarizePath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.URL.Query().Get("_t"))

		var req domain.SummaryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://example.com/a", req.URL)

		_, _ = w.Write([]byte(`{"status":"success","data":{"originalUrl":"https://example.com/a","title":"A","summary":"short","summaryLength":120}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	env, err := c.Summarize(context.Background(), domain.SummaryRequest{URL: "https://example.com/a"})
	require.NoError(t, err)
	require.NotNil(t, env.Data)
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, "short", env.Data.Summary)
	require.NotNil(t, env.Data.SummaryLength)
	assert.Equal(t, 120, *env.Data.SummaryLength)
}

func TestClientStatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"Could not extract article"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	_, err := c.Summarize(context.Background(), domain.SummaryRequest{URL: "https://example.com/a"})

	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusUnprocessableEntity, serr.StatusCode())
	assert.Equal(t, "Could not extract article", serr.ServerMessage())

	failure := retry.Classify(err)
	assert.Equal(t, "Could not extract article", failure.Message)
	assert.False(t, failure.Retryable)
}

func TestClientServiceUnavailableIsRetryable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second, nil).Health(context.Background())
	failure := retry.Classify(err)
	assert.Equal(t, 503, failure.Code)
	assert.True(t, failure.Retryable)
}

func TestClientMalformedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second, nil).Summarize(context.Background(), domain.SummaryRequest{URL: "https://example.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidStructure)
}

func TestClientHealth(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, healthPath, r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"ok","timestamp":"2024-01-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	status, err := NewClient(srv.URL+"/", time.Second, nil).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", status.Status)
}
