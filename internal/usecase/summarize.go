package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"NewsSnap/internal/domain"
	"NewsSnap/internal/normalize"
	"NewsSnap/internal/ports"
	"NewsSnap/internal/retry"
	"NewsSnap/internal/state"
)

const (
	workingMessage = "Getting your summary..."
	successMessage = "Summary ready!"

	defaultAnalyzePause = 1200 * time.Millisecond
)

// SummarizeDeps wires the driven adapters into the summarize flow.
type SummarizeDeps struct {
	API          ports.SummaryAPI
	Store        *state.Store
	History      *History
	Executor     *retry.Executor
	Notifier     ports.Notifier
	Logger       *slog.Logger
	Options      retry.Options
	AnalyzePause time.Duration
	MaxURLLength int
	Sleep        func(context.Context, time.Duration) error
	Clock        func() time.Time
}

// Summarizer runs one summarization at a time through the resilient executor.
type Summarizer struct {
	api          ports.SummaryAPI
	store        *state.Store
	history      *History
	executor     *retry.Executor
	notifier     ports.Notifier
	logger       *slog.Logger
	options      retry.Options
	analyzePause time.Duration
	maxURLLength int
	sleep        func(context.Context, time.Duration) error
	clock        func() time.Time

	inFlight atomic.Bool
}

// NewSummarizer constructs the summarize use case.
func NewSummarizer(deps SummarizeDeps) *Summarizer {
	s := &Summarizer{
		api:          deps.API,
		store:        deps.Store,
		history:      deps.History,
		executor:     deps.Executor,
		notifier:     deps.Notifier,
		logger:       deps.Logger,
		options:      deps.Options,
		analyzePause: deps.AnalyzePause,
		maxURLLength: deps.MaxURLLength,
		sleep:        deps.Sleep,
		clock:        deps.Clock,
	}
	if s.store == nil {
		s.store = state.NewStore(deps.Notifier)
	}
	if s.history == nil {
		s.history = NewHistory(s.store, nil, deps.Logger)
	}
	if s.executor == nil {
		s.executor = retry.NewExecutor(retry.ExecutorDeps{Notifier: deps.Notifier, Logger: deps.Logger})
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.analyzePause <= 0 {
		s.analyzePause = defaultAnalyzePause
	}
	if s.maxURLLength <= 0 {
		s.maxURLLength = domain.DefaultMaxURLLength
	}
	if s.sleep == nil {
		s.sleep = retry.Sleep
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	return s
}

// Store exposes the state container read by the presentation layer.
func (s *Summarizer) Store() *state.Store {
	return s.store
}

// Summarize validates url, runs the request with retries and records the outcome in the store.
// A call made while another is loading returns domain.ErrBusy without touching state.
func (s *Summarizer) Summarize(ctx context.Context, url string) (domain.Summary, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return domain.Summary{}, domain.ErrBusy
	}
	defer s.inFlight.Store(false)

	if s.store.State().IsLoading() {
		return domain.Summary{}, domain.ErrBusy
	}

	if err := domain.ValidateURL(url, s.maxURLLength); err != nil {
		return domain.Summary{}, err
	}

	s.store.Submit(url)
	s.announce(ctx, url)

	var result domain.Summary
	call := retry.Call{
		Operation: "summarize",
		Options:   s.options,
		Working:   workingMessage,
		Success:   successMessage,
		OnAttempt: func(p retry.Progress) {
			s.store.Dispatch(state.AttemptStarted{
				Attempt:     p.Attempt,
				MaxAttempts: p.MaxAttempts,
				LastError:   p.LastError,
			})
		},
	}

	err := s.executor.Run(ctx, call, func(ctx context.Context) error {
		env, err := s.api.Summarize(ctx, domain.SummaryRequest{URL: url})
		if err != nil {
			return err
		}
		result, err = normalize.Summary(env, s.clock())
		return err
	})
	if err != nil {
		failure := retry.Classify(err)
		s.store.Fail(failure.Message)
		return domain.Summary{}, failure
	}

	s.store.Succeed(result)
	if err := s.history.Save(ctx); err != nil {
		s.logger.Warn("history not persisted", "error", err)
	}
	return result, nil
}

// announce shows the analyzing notice for the configured pause before the first attempt.
func (s *Summarizer) announce(ctx context.Context, url string) {
	if s.notifier == nil {
		return
	}
	s.notifier.DismissAll()
	id := s.notifier.ShowLoading(fmt.Sprintf("Analyzing content from %s...", domain.DomainName(url)))
	if err := s.sleep(ctx, s.analyzePause); err != nil {
		s.logger.Debug("analyze pause interrupted", "error", err)
	}
	s.notifier.Dismiss(id)
}
