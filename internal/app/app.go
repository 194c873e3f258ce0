package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"NewsSnap/internal/config"
	"NewsSnap/internal/domain"
	"NewsSnap/internal/infrastructure/scheduler"
	"NewsSnap/internal/infrastructure/storage"
	"NewsSnap/internal/infrastructure/summarizer"
	"NewsSnap/internal/infrastructure/telegram"
	"NewsSnap/internal/logging"
	"NewsSnap/internal/metrics"
	"NewsSnap/internal/notify"
	"NewsSnap/internal/ports"
	"NewsSnap/internal/retry"
	"NewsSnap/internal/state"
	"NewsSnap/internal/theme"
	"NewsSnap/internal/usecase"
)

// Options control how the application reports to the user.
type Options struct {
	// Out receives console notifications. Defaults to stdout.
	Out io.Writer
	// Record keeps notifications in memory instead of printing them.
	Record bool
}

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
	db     *sql.DB

	notifier   ports.Notifier
	events     *notify.Memory
	metrics    *metrics.Recorder
	executor   *retry.Executor
	store      *state.Store
	history    *usecase.History
	summarizer *usecase.Summarizer
	health     *usecase.HealthChecker
	theme      *theme.Manager
}

// New opens storage, hydrates persisted state and builds the use cases.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger, opts Options) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	db, err := storage.Open(ctx, cfg.Storage.Driver, cfg.Storage.DSN)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	if err := storage.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo := storage.NewSQLRepository(db, cfg.Storage.Driver)

	a := &Application{cfg: cfg, logger: baseLogger, db: db}

	var local ports.Notifier
	if opts.Record {
		a.events = notify.NewMemory()
		local = a.events
	} else {
		local = notify.NewConsole(opts.Out)
	}
	a.notifier = local

	tg := telegram.NewNotifier(
		cfg.Notifications.Telegram.BotToken,
		cfg.Notifications.Telegram.ChatID,
		baseLogger.With("component", "telegram"),
	)
	if tg.Configured() {
		a.notifier = notify.NewFanout(local, tg)
	}

	a.metrics = metrics.NewRecorder()
	a.executor = retry.NewExecutor(retry.ExecutorDeps{
		Notifier:    a.notifier,
		Metrics:     a.metrics,
		Logger:      baseLogger.With("component", "executor"),
		GracePeriod: cfg.Notifications.GracePeriod,
		ErrorDelay:  cfg.Notifications.ErrorDelay,
	})

	a.store = state.NewStore(a.notifier)
	a.history = usecase.NewHistory(a.store, repo, baseLogger.With("component", "history"))
	if err := a.history.Load(ctx); err != nil {
		baseLogger.Warn("starting with empty history", "error", err)
	}

	a.theme = theme.NewManager(repo, baseLogger.With("component", "theme"))
	a.theme.Init(ctx)

	api := summarizer.NewClient(cfg.API.BaseURL, cfg.API.Timeout, baseLogger.With("component", "api"))
	a.summarizer = usecase.NewSummarizer(usecase.SummarizeDeps{
		API:          api,
		Store:        a.store,
		History:      a.history,
		Executor:     a.executor,
		Notifier:     a.notifier,
		Logger:       baseLogger.With("component", "summarize"),
		Options:      cfg.Retry.Summarize.Options(),
		AnalyzePause: cfg.Notifications.AnalyzePause,
		MaxURLLength: cfg.UI.MaxURLLength,
	})
	a.health = usecase.NewHealthChecker(api, a.executor, cfg.Retry.Health.Options(), baseLogger.With("component", "health"))

	return a, nil
}

// Config returns the effective configuration.
func (a *Application) Config() config.Config { return a.cfg }

// Summarizer returns the summarize use case.
func (a *Application) Summarizer() *usecase.Summarizer { return a.summarizer }

// History returns the persisted history use case.
func (a *Application) History() *usecase.History { return a.history }

// Health returns the health checker.
func (a *Application) Health() *usecase.HealthChecker { return a.health }

// Theme returns the theme manager.
func (a *Application) Theme() *theme.Manager { return a.theme }

// Store returns the state container.
func (a *Application) Store() *state.Store { return a.store }

// Metrics returns the Prometheus recorder.
func (a *Application) Metrics() *metrics.Recorder { return a.metrics }

// Events returns recorded notifications when Options.Record is set, else nil.
func (a *Application) Events() []notify.Event {
	if a.events == nil {
		return nil
	}
	return a.events.Events()
}

// HealthWatch builds a recurring health check firing every interval.
func (a *Application) HealthWatch(interval time.Duration, report func(time.Time, domain.HealthStatus, error)) *usecase.HealthWatch {
	return usecase.NewHealthWatch(scheduler.NewIntervalScheduler(interval), a.health, report)
}

// Close releases storage.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
