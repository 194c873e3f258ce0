package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"NewsSnap/internal/ports"
)

// ErrorDedupeKey collapses repeated terminal errors into one visible notification.
const ErrorDedupeKey = "api-error"

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = time.Second
	defaultGracePeriod = 200 * time.Millisecond
	defaultErrorDelay  = 100 * time.Millisecond
)

// Attempt outcomes reported to ports.Metrics.
const (
	OutcomeSuccess   = "success"
	OutcomeRetryable = "retryable"
	OutcomeTerminal  = "terminal"
	OutcomeCancelled = "cancelled"
)

// Options bound a single resilient call. Zero MaxAttempts and BaseDelay take
// the defaults; Backoff is used as given.
type Options struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Backoff     bool
}

// DefaultOptions returns 3 attempts, 1s base delay, exponential backoff.
func DefaultOptions() Options {
	return Options{MaxAttempts: defaultMaxAttempts, BaseDelay: defaultBaseDelay, Backoff: true}
}

func (o Options) withDefaults() Options {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = defaultMaxAttempts
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = defaultBaseDelay
	}
	return o
}

// Progress is reported at the start of every attempt.
type Progress struct {
	Attempt     int
	MaxAttempts int
	LastError   string
}

// Call describes one invocation of the executor.
type Call struct {
	// Operation labels logs and metrics, e.g. "summarize".
	Operation string
	Options   Options
	// Working is shown while the first attempt is in flight.
	Working string
	// Success is the terminal notification on success; empty shows none.
	Success   string
	OnAttempt func(Progress)
}

// ExecutorDeps wires the collaborators of Executor.
type ExecutorDeps struct {
	Notifier    ports.Notifier
	Metrics     ports.Metrics
	Logger      *slog.Logger
	Sleep       func(context.Context, time.Duration) error
	Clock       func() time.Time
	GracePeriod time.Duration
	ErrorDelay  time.Duration
}

// Executor runs an operation up to MaxAttempts times, classifying failures,
// backing off between retries and owning the notification lifecycle.
// It holds no per-request state, so one Executor may serve sequential calls.
type Executor struct {
	notifier    ports.Notifier
	metrics     ports.Metrics
	logger      *slog.Logger
	sleep       func(context.Context, time.Duration) error
	clock       func() time.Time
	gracePeriod time.Duration
	errorDelay  time.Duration
}

// NewExecutor fills unset dependencies with real timers and a no-op notifier.
func NewExecutor(deps ExecutorDeps) *Executor {
	e := &Executor{
		notifier:    deps.Notifier,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
		sleep:       deps.Sleep,
		clock:       deps.Clock,
		gracePeriod: deps.GracePeriod,
		errorDelay:  deps.ErrorDelay,
	}
	if e.notifier == nil {
		e.notifier = nopNotifier{}
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	if e.sleep == nil {
		e.sleep = Sleep
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	if e.gracePeriod <= 0 {
		e.gracePeriod = defaultGracePeriod
	}
	if e.errorDelay <= 0 {
		e.errorDelay = defaultErrorDelay
	}
	return e
}

// Run executes op with retries. On success exactly one success notification is
// shown; on terminal failure exactly one error notification is shown and the
// returned error is a *Failure. A cancelled ctx ends the loop without a
// terminal notification.
func (e *Executor) Run(ctx context.Context, call Call, op func(context.Context) error) error {
	opts := call.Options.withDefaults()
	started := e.clock()

	var (
		last   *Failure
		active ports.NotificationID
	)

	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return e.abandon(call, started, err)
		}

		if call.OnAttempt != nil {
			progress := Progress{Attempt: attempt, MaxAttempts: opts.MaxAttempts}
			if last != nil {
				progress.LastError = last.Message
			}
			call.OnAttempt(progress)
		}

		if attempt > 1 {
			delay := Delay(attempt-1, opts.BaseDelay, opts.Backoff)
			active = e.notifier.ShowLoading(retryMessage(attempt, opts.MaxAttempts, delay))
			if err := e.sleep(ctx, delay); err != nil {
				return e.abandon(call, started, err)
			}
			e.notifier.Dismiss(active)
			active = ""
		} else {
			if err := e.sleep(ctx, e.gracePeriod); err != nil {
				return e.abandon(call, started, err)
			}
			if call.Working != "" {
				active = e.notifier.ShowLoading(call.Working)
			}
		}

		err := op(ctx)
		if err == nil {
			if active != "" {
				e.notifier.Dismiss(active)
			}
			if call.Success != "" {
				e.notifier.ShowSuccess(call.Success)
			}
			e.observeAttempt(call, OutcomeSuccess)
			e.observeRequest(call, OutcomeSuccess, started)
			e.logger.Debug("request succeeded", "operation", call.Operation, "attempt", attempt)
			return nil
		}

		last = Classify(err)
		e.notifier.DismissAll()
		active = ""

		if errors.Is(ctx.Err(), context.Canceled) {
			e.observeAttempt(call, OutcomeCancelled)
			return e.abandon(call, started, ctx.Err())
		}

		if attempt < opts.MaxAttempts && last.Retryable {
			e.observeAttempt(call, OutcomeRetryable)
			e.logger.Warn("attempt failed, retrying",
				"operation", call.Operation,
				"attempt", attempt,
				"max_attempts", opts.MaxAttempts,
				"code", last.Code,
				"error", last.Message)
			continue
		}

		e.observeAttempt(call, OutcomeTerminal)
		break
	}

	_ = e.sleep(context.WithoutCancel(ctx), e.errorDelay)
	e.notifier.ShowError(last.Message, ErrorDedupeKey)
	e.observeRequest(call, OutcomeTerminal, started)
	e.logger.Error("request failed",
		"operation", call.Operation,
		"code", last.Code,
		"retryable", last.Retryable,
		"error", last.Message)
	return last
}

func (e *Executor) abandon(call Call, started time.Time, cause error) error {
	e.notifier.DismissAll()
	e.observeRequest(call, OutcomeCancelled, started)
	e.logger.Info("request abandoned", "operation", call.Operation, "error", cause)
	return &Failure{Message: msgCancelled, Err: cause}
}

func (e *Executor) observeAttempt(call Call, outcome string) {
	if e.metrics != nil {
		e.metrics.ObserveAttempt(call.Operation, outcome)
	}
}

func (e *Executor) observeRequest(call Call, outcome string, started time.Time) {
	if e.metrics != nil {
		e.metrics.ObserveRequest(call.Operation, outcome, e.clock().Sub(started))
	}
}

func retryMessage(attempt, maxAttempts int, delay time.Duration) string {
	seconds := int(math.Round(delay.Seconds()))
	return fmt.Sprintf("Attempt %d/%d - API is slow, retrying in %ds...", attempt, maxAttempts, seconds)
}

type nopNotifier struct{}

func (nopNotifier) ShowLoading(string) ports.NotificationID { return "" }
func (nopNotifier) Dismiss(ports.NotificationID)            {}
func (nopNotifier) DismissAll()                             {}
func (nopNotifier) ShowSuccess(string)                      {}
func (nopNotifier) ShowError(string, string)                {}
