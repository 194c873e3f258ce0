package usecase

import (
	"context"
	"log/slog"
	"time"

	"NewsSnap/internal/domain"
	"NewsSnap/internal/ports"
	"NewsSnap/internal/retry"
)

// HealthChecker queries the API liveness endpoint through the executor.
type HealthChecker struct {
	api      ports.SummaryAPI
	executor *retry.Executor
	options  retry.Options
	logger   *slog.Logger
}

// NewHealthChecker builds the checker with its own retry options.
func NewHealthChecker(api ports.SummaryAPI, executor *retry.Executor, options retry.Options, logger *slog.Logger) *HealthChecker {
	if executor == nil {
		executor = retry.NewExecutor(retry.ExecutorDeps{Logger: logger})
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &HealthChecker{api: api, executor: executor, options: options, logger: logger}
}

// Check returns the API status; failures are *retry.Failure.
// Success is reported by the caller, not as a notification.
func (h *HealthChecker) Check(ctx context.Context) (domain.HealthStatus, error) {
	var status domain.HealthStatus
	call := retry.Call{
		Operation: "health",
		Options:   h.options,
		Working:   "Checking API health...",
	}
	err := h.executor.Run(ctx, call, func(ctx context.Context) error {
		var err error
		status, err = h.api.Health(ctx)
		return err
	})
	if err != nil {
		return domain.HealthStatus{}, err
	}
	return status, nil
}

// HealthWatch repeats Check on a scheduler and hands each result to report.
type HealthWatch struct {
	driver  ports.Scheduler
	checker *HealthChecker
	report  func(time.Time, domain.HealthStatus, error)
}

// NewHealthWatch returns a helper to start/stop recurring checks.
func NewHealthWatch(driver ports.Scheduler, checker *HealthChecker, report func(time.Time, domain.HealthStatus, error)) *HealthWatch {
	return &HealthWatch{driver: driver, checker: checker, report: report}
}

// Start registers the check with the scheduler.
func (w *HealthWatch) Start(ctx context.Context) error {
	if w.driver == nil || w.checker == nil {
		return nil
	}

	job := func(trigger time.Time) {
		status, err := w.checker.Check(ctx)
		if w.report != nil {
			w.report(trigger, status, err)
		}
	}

	return w.driver.Start(ctx, job)
}

// Stop tears down the underlying scheduler.
func (w *HealthWatch) Stop(ctx context.Context) error {
	if w.driver == nil {
		return nil
	}
	return w.driver.Stop(ctx)
}
