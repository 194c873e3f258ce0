package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(apiBaseURLEnv, "")
	t.Setenv(storageDSNEnv, "")

	cfg := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, "http://localhost:3001", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, 2048, cfg.UI.MaxURLLength)

	opts := cfg.Retry.Summarize.Options()
	assert.Equal(t, 3, opts.MaxAttempts)
	assert.Equal(t, 2*time.Second, opts.BaseDelay)
	assert.True(t, opts.Backoff)
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "newssnap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  baseUrl: https://summaries.internal
  timeout: 10s
retry:
  summarize:
    maxAttempts: 5
    backoff: false
notifications:
  analyzePause: 500ms
storage:
  driver: postgres
  dsn: postgres://localhost/newssnap
`), 0o600))

	t.Setenv(storageDSNEnv, "postgres://override/newssnap")
	t.Setenv(telegramTokenEnv, "token")

	cfg := Load(path)

	assert.Equal(t, "https://summaries.internal", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "postgres://override/newssnap", cfg.Storage.DSN)
	assert.Equal(t, 500*time.Millisecond, cfg.Notifications.AnalyzePause)
	assert.Equal(t, 200*time.Millisecond, cfg.Notifications.GracePeriod)
	assert.Equal(t, "token", cfg.Notifications.Telegram.BotToken)

	opts := cfg.Retry.Summarize.Options()
	assert.Equal(t, 5, opts.MaxAttempts)
	assert.Equal(t, 2*time.Second, opts.BaseDelay)
	assert.False(t, opts.Backoff)

	assert.Equal(t, 3, cfg.Retry.Health.Options().MaxAttempts)
}

func TestLoadIgnoresMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unterminated"), 0o600))
	t.Setenv(apiBaseURLEnv, "")

	cfg := Load(path)
	assert.Equal(t, defaultConfig().API.BaseURL, cfg.API.BaseURL)
}
