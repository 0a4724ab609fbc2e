package acl

import (
	"context"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quote-service/internal/adapters/clients"
	"github.com/jsamuelsen/quote-service/internal/domain"
	"github.com/jsamuelsen/quote-service/internal/ports"
)

const (
	randomPath = "/random"

	opFetchRandom = "fetch random quote"
)

// Compile-time interface checks.
var (
	_ ports.QuoteSource   = (*QuoteSource)(nil)
	_ ports.HealthChecker = (*QuoteSource)(nil)
)

// quotableQuote is the upstream /random payload. Only content and author cross into the domain.
type quotableQuote struct {
	ID      string   `json:"_id"`
	Content string   `json:"content"`
	Author  string   `json:"author"`
	Tags    []string `json:"tags"`
}

// QuoteSourceConfig configures a QuoteSource.
type QuoteSourceConfig struct {
	// Client is the instrumented client for the upstream. Required.
	Client *clients.Client

	// Logger is an optional logger. If nil, the default logger is used.
	Logger *slog.Logger
}

// QuoteSource reads random quotations from a quotable-style API.
type QuoteSource struct {
	BaseAdapter
	logger *slog.Logger
}

// NewQuoteSource creates a QuoteSource. It panics without a client.
func NewQuoteSource(cfg QuoteSourceConfig) *QuoteSource {
	if cfg.Client == nil {
		panic("acl: QuoteSourceConfig.Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	name := cfg.Client.ServiceName()

	return &QuoteSource{
		BaseAdapter: NewBaseAdapter(cfg.Client, name),
		logger:      logger.With(slog.String("component", "acl.QuoteSource"), slog.String("downstream", name)),
	}
}

// RandomQuote fetches one upstream quotation as a normalized draft.
func (s *QuoteSource) RandomQuote(ctx context.Context) (domain.QuoteDraft, error) {
	ext, err := fetchJSON[quotableQuote](ctx, &s.BaseAdapter, randomPath, opFetchRandom)
	if err != nil {
		return domain.QuoteDraft{}, err
	}

	draft, err := translateQuote(ext)
	if err != nil {
		s.logger.DebugContext(ctx, "upstream quote rejected",
			slog.String("upstream_id", ext.ID),
			slog.Any("error", err),
		)

		return domain.QuoteDraft{}, err
	}

	return draft, nil
}

func translateQuote(ext *quotableQuote) (domain.QuoteDraft, error) {
	draft := domain.QuoteDraft{Text: ext.Content, Author: ext.Author}.Normalize()

	if err := requireField("content", draft.Text); err != nil {
		return domain.QuoteDraft{}, err
	}

	if err := requireField("author", draft.Author); err != nil {
		return domain.QuoteDraft{}, err
	}

	return draft, nil
}

// Name implements ports.HealthChecker.
func (s *QuoteSource) Name() string {
	return s.ServiceName()
}

// Check reports the upstream unavailable while its circuit breaker is open.
// It makes no network call.
func (s *QuoteSource) Check(_ context.Context) error {
	if s.Client().CircuitState() != clients.StateOpen {
		return nil
	}

	reason := "circuit breaker open"
	if at := s.Client().RetryAfter(); !at.IsZero() {
		reason += ", probing after " + at.UTC().Format(time.RFC3339)
	}

	return domain.NewUnavailableError(s.ServiceName(), reason)
}
