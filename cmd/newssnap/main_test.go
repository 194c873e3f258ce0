package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "newssnap.yaml")
	body := fmt.Sprintf(`
api:
  baseUrl: %s
notifications:
  gracePeriod: 1ms
  errorDelay: 1ms
  analyzePause: 1ms
storage:
  driver: sqlite
  dsn: %s
logging:
  level: error
`, baseURL, filepath.Join(dir, "newssnap.db"))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestThemeCommands(t *testing.T) {
	cfg := writeConfig(t, "http://localhost:1")

	out, err := run(t, "--config", cfg, "theme", "show")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)

	out, err = run(t, "--config", cfg, "theme", "toggle")
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)

	_, err = run(t, "--config", cfg, "theme", "set", "sepia")
	assert.Error(t, err)

	out, err = run(t, "--config", cfg, "theme", "show")
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)
}

func TestSummarizeAndHistoryCommands(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `{"status":"success","data":{"originalUrl":"https://example.com/a","title":"Example","summary":"Body."}}`)
	}))
	defer srv.Close()
	cfg := writeConfig(t, srv.URL)

	out, err := run(t, "--config", cfg, "summarize", "https://example.com/a")
	require.NoError(t, err)
	assert.Contains(t, out, "Summary ready!")
	assert.Contains(t, out, "Body.")

	out, err = run(t, "--config", cfg, "summarize", "--json", "https://example.com/a")
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "success"`)

	out, err = run(t, "--config", cfg, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Example")

	_, err = run(t, "--config", cfg, "history", "clear")
	require.NoError(t, err)

	out, err = run(t, "--config", cfg, "history", "list")
	require.NoError(t, err)
	assert.Equal(t, "No summaries yet.\n", out)
}
