package ports

import (
	"context"
	"time"

	"NewsSnap/internal/domain"
)

// SummaryAPI is the remote summarization service.
type SummaryAPI interface {
	Summarize(ctx context.Context, req domain.SummaryRequest) (domain.SummaryEnvelope, error)
	Health(ctx context.Context) (domain.HealthStatus, error)
}

// HistoryRepository persists the bounded history list between runs.
type HistoryRepository interface {
	LoadHistory(ctx context.Context) ([]domain.Summary, error)
	ReplaceHistory(ctx context.Context, entries []domain.Summary) error
}

// SettingsRepository is the durable key-value storage for small process-wide settings.
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, bool, error)
	SetSetting(ctx context.Context, key, value string) error
}

// NotificationID identifies a loading notification so it can be dismissed later.
type NotificationID string

// Notifier issues and dismisses transient user notifications.
// DismissAll must be a no-op when nothing is active.
type Notifier interface {
	ShowLoading(message string) NotificationID
	Dismiss(id NotificationID)
	DismissAll()
	ShowSuccess(message string)
	ShowError(message, dedupeKey string)
}

// Metrics receives per-attempt and per-request outcomes of the executor.
type Metrics interface {
	ObserveAttempt(operation, outcome string)
	ObserveRequest(operation, outcome string, elapsed time.Duration)
}

// Scheduler controls when recurring jobs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
