package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"NewsSnap/internal/retry"
)

const (
	configPathEnv     = "NEWSSNAP_CONFIG"
	apiBaseURLEnv     = "NEWSSNAP_API_BASE_URL"
	storageDSNEnv     = "NEWSSNAP_DSN"
	storageDriverEnv  = "NEWSSNAP_STORAGE_DRIVER"
	logLevelEnv       = "NEWSSNAP_LOG_LEVEL"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	API           APIConfig          `yaml:"api"`
	Retry         RetryConfig        `yaml:"retry"`
	Notifications NotificationConfig `yaml:"notifications"`
	Storage       StorageConfig      `yaml:"storage"`
	Logging       LoggingConfig      `yaml:"logging"`
	UI            UIConfig           `yaml:"ui"`
}

// APIConfig points at the summarization service.
type APIConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// RetryConfig holds executor options per operation.
type RetryConfig struct {
	Summarize RetryPolicy `yaml:"summarize"`
	Health    RetryPolicy `yaml:"health"`
}

// RetryPolicy is the YAML shape of retry.Options.
type RetryPolicy struct {
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseDelay   time.Duration `yaml:"baseDelay"`
	Backoff     *bool         `yaml:"backoff"`
}

// Options converts the policy for the executor.
func (p RetryPolicy) Options() retry.Options {
	opts := retry.Options{MaxAttempts: p.MaxAttempts, BaseDelay: p.BaseDelay, Backoff: true}
	if p.Backoff != nil {
		opts.Backoff = *p.Backoff
	}
	return opts
}

// NotificationConfig tunes notification timing and outbound channels.
type NotificationConfig struct {
	GracePeriod  time.Duration  `yaml:"gracePeriod"`
	ErrorDelay   time.Duration  `yaml:"errorDelay"`
	AnalyzePause time.Duration  `yaml:"analyzePause"`
	Telegram     TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// StorageConfig selects the SQL driver for history and settings.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// UIConfig holds input limits.
type UIConfig struct {
	MaxURLLength int `yaml:"maxUrlLength"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
// An empty path falls back to $NEWSSNAP_CONFIG.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(apiBaseURLEnv); v != "" {
		c.API.BaseURL = v
	}

	if v := os.Getenv(storageDriverEnv); v != "" {
		c.Storage.Driver = v
	}

	if v := os.Getenv(storageDSNEnv); v != "" {
		c.Storage.DSN = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.API.BaseURL != "" {
		base.API.BaseURL = override.API.BaseURL
	}
	if override.API.Timeout > 0 {
		base.API.Timeout = override.API.Timeout
	}

	base.Retry.Summarize = mergePolicy(base.Retry.Summarize, override.Retry.Summarize)
	base.Retry.Health = mergePolicy(base.Retry.Health, override.Retry.Health)

	if override.Notifications.GracePeriod > 0 {
		base.Notifications.GracePeriod = override.Notifications.GracePeriod
	}
	if override.Notifications.ErrorDelay > 0 {
		base.Notifications.ErrorDelay = override.Notifications.ErrorDelay
	}
	if override.Notifications.AnalyzePause > 0 {
		base.Notifications.AnalyzePause = override.Notifications.AnalyzePause
	}
	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Storage.Driver != "" {
		base.Storage.Driver = override.Storage.Driver
	}
	if override.Storage.DSN != "" {
		base.Storage.DSN = override.Storage.DSN
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.UI.MaxURLLength > 0 {
		base.UI.MaxURLLength = override.UI.MaxURLLength
	}

	return base
}

func mergePolicy(base, override RetryPolicy) RetryPolicy {
	if override.MaxAttempts > 0 {
		base.MaxAttempts = override.MaxAttempts
	}
	if override.BaseDelay > 0 {
		base.BaseDelay = override.BaseDelay
	}
	if override.Backoff != nil {
		base.Backoff = override.Backoff
	}
	return base
}

func defaultConfig() Config {
	backoff := true
	return Config{
		API: APIConfig{BaseURL: "http://localhost:3001", Timeout: 30 * time.Second},
		Retry: RetryConfig{
			Summarize: RetryPolicy{MaxAttempts: 3, BaseDelay: 2 * time.Second, Backoff: &backoff},
			Health:    RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second, Backoff: &backoff},
		},
		Notifications: NotificationConfig{
			GracePeriod:  200 * time.Millisecond,
			ErrorDelay:   100 * time.Millisecond,
			AnalyzePause: 1200 * time.Millisecond,
		},
		Storage: StorageConfig{Driver: "sqlite", DSN: "newssnap.db"},
		Logging: LoggingConfig{Level: "info"},
		UI:      UIConfig{MaxURLLength: 2048},
	}
}
