// Package app contains application services that orchestrate use cases.
// Services depend on ports only; adapters are injected from main.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/jsamuelsen/quote-service/internal/domain"
	"github.com/jsamuelsen/quote-service/internal/platform/logging"
	"github.com/jsamuelsen/quote-service/internal/ports"
)

// Admin operation names used in logs and metrics.
const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
	OpEdit   = "edit"
	OpRemove = "remove"
	OpImport = "import"
)

// QuoteService serves random quotes and the administrative lifecycle of the collection.
type QuoteService struct {
	store   ports.QuoteStore
	metrics ports.QuoteMetrics
	pick    func(n int) int
	logger  *slog.Logger
}

// QuoteServiceConfig contains the dependencies of the quote service.
type QuoteServiceConfig struct {
	Store   ports.QuoteStore
	Metrics ports.QuoteMetrics

	// Pick returns a uniform index in [0, n). Defaults to math/rand/v2.IntN.
	Pick func(n int) int

	Logger *slog.Logger
}

// AdminSnapshot is everything the admin listing page shows.
type AdminSnapshot struct {
	Quotes []*domain.Quote
	Total  int
}

// NewQuoteService creates a quote service. It panics without a store.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Store == nil {
		panic("app: QuoteServiceConfig.Store is required")
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = ports.NopQuoteMetrics{}
	}

	pick := cfg.Pick
	if pick == nil {
		pick = rand.IntN
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteService{
		store:   cfg.Store,
		metrics: metrics,
		pick:    pick,
		logger:  logger.With(slog.String("component", "app.QuoteService")),
	}
}

// log prefers the request-scoped logger so request and trace ids follow the entry.
func (s *QuoteService) log(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, s.logger)
}

// RandomQuote returns one stored quote chosen uniformly at random, or the
// "no quotations" sentinel when the collection is empty.
//
// Count and offset lookup are two queries. If deletions shrink the collection
// in between, the lookup misses; the service then retries once with a fresh
// count and falls back to the sentinel if that also fails.
func (s *QuoteService) RandomQuote(ctx context.Context) (*domain.Quote, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		s.log(ctx).ErrorContext(ctx, "counting quotes failed", slog.Any("error", err))
		return nil, fmt.Errorf("counting quotes: %w", err)
	}

	if n == 0 {
		s.metrics.RandomServed(ports.OutcomeEmpty)
		return domain.NoQuotesAvailable(), nil
	}

	quote, err := s.sample(ctx, n)
	if err == nil {
		s.metrics.RandomServed(ports.OutcomeQuote)
		return quote, nil
	}

	if !domain.IsNotFound(err) {
		s.log(ctx).ErrorContext(ctx, "sampling quote failed", slog.Any("error", err))
		return nil, fmt.Errorf("sampling quote: %w", err)
	}

	s.metrics.SampleRetried()

	return s.retrySample(ctx), nil
}

// retrySample is the single retry after a shrink race. It never fails.
func (s *QuoteService) retrySample(ctx context.Context) *domain.Quote {
	logger := s.log(ctx)

	n, err := s.store.Count(ctx)
	if err != nil {
		logger.WarnContext(ctx, "recount after missed sample failed, serving placeholder", slog.Any("error", err))
		s.metrics.RandomServed(ports.OutcomeDegraded)

		return domain.NoQuotesAvailable()
	}

	if n == 0 {
		s.metrics.RandomServed(ports.OutcomeEmpty)
		return domain.NoQuotesAvailable()
	}

	quote, err := s.sample(ctx, n)
	if err != nil {
		logger.WarnContext(ctx, "retried sample failed, serving placeholder", slog.Any("error", err))
		s.metrics.RandomServed(ports.OutcomeDegraded)

		return domain.NoQuotesAvailable()
	}

	s.metrics.RandomServed(ports.OutcomeQuote)

	return quote
}

func (s *QuoteService) sample(ctx context.Context, n int) (*domain.Quote, error) {
	offset := s.pick(n)

	s.log(ctx).Log(ctx, logging.LevelTrace, "sampling quote", slog.Int("count", n), slog.Int("offset", offset))

	return s.store.SampleAt(ctx, offset)
}

// ListForEdit returns every quote, newest first.
func (s *QuoteService) ListForEdit(ctx context.Context) ([]*domain.Quote, error) {
	quotes, err := s.store.ListAll(ctx, domain.OrderNewestFirst)
	s.record(ctx, OpList, err)

	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}

	return quotes, nil
}

// AdminOverview fetches the listing and the total count concurrently.
func (s *QuoteService) AdminOverview(ctx context.Context) (*AdminSnapshot, error) {
	quotes, total, err := Both(ctx,
		func(ctx context.Context) ([]*domain.Quote, error) {
			return s.store.ListAll(ctx, domain.OrderNewestFirst)
		},
		s.store.Count,
	)
	s.record(ctx, OpList, err)

	if err != nil {
		return nil, fmt.Errorf("loading admin overview: %w", err)
	}

	return &AdminSnapshot{Quotes: quotes, Total: total}, nil
}

// GetForEdit returns the quote with id.
func (s *QuoteService) GetForEdit(ctx context.Context, id string) (*domain.Quote, error) {
	if err := domain.ValidateID(id); err != nil {
		s.record(ctx, OpGet, err)
		return nil, err
	}

	quote, err := s.store.FindByID(ctx, id)
	s.record(ctx, OpGet, err)

	if err != nil {
		return nil, fmt.Errorf("getting quote: %w", err)
	}

	return quote, nil
}

// Create validates and stores a new quote.
func (s *QuoteService) Create(ctx context.Context, draft domain.QuoteDraft) (*domain.Quote, error) {
	draft = draft.Normalize()

	if err := draft.Validate(); err != nil {
		s.record(ctx, OpCreate, err)
		return nil, err
	}

	quote, err := s.store.Insert(ctx, draft)
	s.record(ctx, OpCreate, err)

	if err != nil {
		return nil, fmt.Errorf("creating quote: %w", err)
	}

	s.log(ctx).InfoContext(ctx, "quote created", slog.String("quote_id", quote.ID))

	return quote, nil
}

// Edit replaces text and author of an existing quote.
func (s *QuoteService) Edit(ctx context.Context, id string, draft domain.QuoteDraft) (*domain.Quote, error) {
	draft = draft.Normalize()

	if err := domain.ValidateID(id); err != nil {
		s.record(ctx, OpEdit, err)
		return nil, err
	}

	if err := draft.Validate(); err != nil {
		s.record(ctx, OpEdit, err)
		return nil, err
	}

	quote, err := s.store.UpdateByID(ctx, id, draft)
	s.record(ctx, OpEdit, err)

	if err != nil {
		return nil, fmt.Errorf("editing quote: %w", err)
	}

	s.log(ctx).InfoContext(ctx, "quote edited", slog.String("quote_id", quote.ID))

	return quote, nil
}

// Remove deletes the quote with id. Removing an absent quote succeeds.
func (s *QuoteService) Remove(ctx context.Context, id string) error {
	if err := domain.ValidateID(id); err != nil {
		s.record(ctx, OpRemove, err)
		return err
	}

	removed, err := s.store.DeleteByID(ctx, id)
	s.record(ctx, OpRemove, err)

	if err != nil {
		return fmt.Errorf("removing quote: %w", err)
	}

	s.log(ctx).InfoContext(ctx, "quote removed",
		slog.String("quote_id", id),
		slog.Bool("existed", removed),
	)

	return nil
}

func (s *QuoteService) record(ctx context.Context, op string, err error) {
	s.metrics.AdminOperation(op, err)

	if err != nil && !domain.IsValidation(err) && !domain.IsNotFound(err) {
		s.log(ctx).ErrorContext(ctx, "admin operation failed",
			slog.String("operation", op),
			slog.Any("error", err),
		)
	}
}
