package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/jsamuelsen/quote-service/internal/app/staging"
	"github.com/jsamuelsen/quote-service/internal/domain"
	"github.com/jsamuelsen/quote-service/internal/platform/logging"
	"github.com/jsamuelsen/quote-service/internal/ports"
)

// Import limits used when ImportServiceConfig leaves them unset.
const (
	DefaultImportMaxBatch    = 50
	DefaultImportConcurrency = 4
)

// ImportResult summarizes one import run.
type ImportResult struct {
	// Requested is how many upstream quotes were asked for.
	Requested int

	// Failed counts fetches that returned an error.
	Failed int

	// Skipped counts fetched quotes dropped as invalid or already present.
	Skipped int

	// Imported holds the newly stored quotes in insertion order.
	Imported []*domain.Quote
}

// ImportService copies random upstream quotes into the collection.
type ImportService struct {
	source      ports.QuoteSource
	store       ports.QuoteStore
	metrics     ports.QuoteMetrics
	exec        *Executor
	maxBatch    int
	concurrency int
	logger      *slog.Logger
}

// ImportServiceConfig contains the dependencies and limits of the import service.
type ImportServiceConfig struct {
	Source  ports.QuoteSource
	Store   ports.QuoteStore
	Metrics ports.QuoteMetrics

	// MaxBatch is the largest count a single import may request.
	MaxBatch int

	// Concurrency bounds simultaneous upstream fetches.
	Concurrency int

	Logger *slog.Logger
}

// NewImportService creates an import service. It panics without a source or store.
func NewImportService(cfg ImportServiceConfig) *ImportService {
	if cfg.Source == nil {
		panic("app: ImportServiceConfig.Source is required")
	}

	if cfg.Store == nil {
		panic("app: ImportServiceConfig.Store is required")
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = ports.NopQuoteMetrics{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("component", "app.ImportService"))

	return &ImportService{
		source:      cfg.Source,
		store:       cfg.Store,
		metrics:     metrics,
		exec:        NewExecutor(logger),
		maxBatch:    lo.Ternary(cfg.MaxBatch > 0, cfg.MaxBatch, DefaultImportMaxBatch),
		concurrency: lo.Ternary(cfg.Concurrency > 0, cfg.Concurrency, DefaultImportConcurrency),
		logger:      logger,
	}
}

// MaxBatch returns the largest count Import accepts.
func (s *ImportService) MaxBatch() int {
	return s.maxBatch
}

// fetched is the Perform output: every draft that arrived and how many fetches failed.
type fetched struct {
	drafts []domain.QuoteDraft
	failed int
}

// importPlan is the verified set of drafts, filled in with stored quotes by Archive.
type importPlan struct {
	drafts   []domain.QuoteDraft
	failed   int
	skipped  int
	imported []*domain.Quote
}

// Import fetches count random upstream quotes and stores the new, valid ones.
//
// A run where every fetch fails returns the first upstream error. Otherwise
// failed fetches, invalid quotes and quotes already in the collection (same
// text and author, ignoring case) are counted and skipped. Storing is
// all-or-nothing: if an insert fails, nothing from the run is kept.
func (s *ImportService) Import(ctx context.Context, count int) (*ImportResult, error) {
	result, err := Execute(ctx, s.exec, Operation[int, *fetched, *importPlan, *ImportResult]{
		Name:     "import_quotes",
		Validate: s.validate,
		Perform:  s.fetch,
		Verify:   s.verify,
		Archive:  s.archive,
		Respond:  s.respond,
	}, count)

	s.metrics.AdminOperation(OpImport, err)

	if err != nil {
		return nil, fmt.Errorf("importing quotes: %w", err)
	}

	return result, nil
}

func (s *ImportService) validate(_ context.Context, count int) error {
	if count < 1 || count > s.maxBatch {
		return domain.NewValidationError("count", fmt.Sprintf("must be between 1 and %d", s.maxBatch))
	}

	return nil
}

func (s *ImportService) fetch(ctx context.Context, count int) (*fetched, error) {
	results := FanOut(ctx, count, s.concurrency, func(ctx context.Context, _ int) (domain.QuoteDraft, error) {
		return s.source.RandomQuote(ctx)
	})

	out := &fetched{}

	var firstErr error

	for _, r := range results {
		switch {
		case r.Err == nil:
			out.drafts = append(out.drafts, r.Value)
		case domain.IsValidation(r.Err):
			// The upstream answered with an unusable record; Verify counts it as skipped.
			out.drafts = append(out.drafts, domain.QuoteDraft{})
		default:
			out.failed++

			if firstErr == nil {
				firstErr = r.Err
			}
		}
	}

	if len(out.drafts) == 0 && firstErr != nil {
		return nil, firstErr
	}

	return out, nil
}

func (s *ImportService) verify(ctx context.Context, _ int, in *fetched) (*importPlan, error) {
	existing, err := s.store.ListAll(ctx, domain.OrderNewestFirst)
	if err != nil {
		return nil, err
	}

	seen := lo.SliceToMap(existing, func(q *domain.Quote) (string, struct{}) {
		return dedupeKey(domain.QuoteDraft{Text: q.Text, Author: q.Author}), struct{}{}
	})

	valid := lo.FilterMap(in.drafts, func(d domain.QuoteDraft, _ int) (domain.QuoteDraft, bool) {
		d = d.Normalize()
		return d, d.Validate() == nil
	})

	fresh := lo.Filter(lo.UniqBy(valid, dedupeKey), func(d domain.QuoteDraft, _ int) bool {
		_, dup := seen[dedupeKey(d)]
		return !dup
	})

	return &importPlan{
		drafts:  fresh,
		failed:  in.failed,
		skipped: len(in.drafts) - len(fresh),
	}, nil
}

// insertQuote stages one draft; Rollback deletes what Execute stored.
type insertQuote struct {
	store  ports.QuoteStore
	draft  domain.QuoteDraft
	stored *domain.Quote
}

func (a *insertQuote) Execute(ctx context.Context) error {
	quote, err := a.store.Insert(ctx, a.draft)
	if err != nil {
		return err
	}

	a.stored = quote

	return nil
}

func (a *insertQuote) Rollback(ctx context.Context) error {
	if a.stored == nil {
		return nil
	}

	_, err := a.store.DeleteByID(ctx, a.stored.ID)

	return err
}

func (a *insertQuote) Description() string {
	return "insert quote by " + a.draft.Author
}

// archive stores the plan as one batch: a failed insert removes the quotes
// this run already stored.
func (s *ImportService) archive(ctx context.Context, _ int, plan *importPlan) error {
	batch := staging.NewBatch()
	inserts := make([]*insertQuote, 0, len(plan.drafts))

	for _, draft := range plan.drafts {
		action := &insertQuote{store: s.store, draft: draft}
		if err := batch.Add(action); err != nil {
			return err
		}

		inserts = append(inserts, action)
	}

	if err := batch.Commit(ctx); err != nil {
		var commitErr *staging.CommitError
		if errors.As(err, &commitErr) && commitErr.RollbackErr != nil {
			logging.FromContextOr(ctx, s.logger).ErrorContext(ctx, "import rollback incomplete",
				slog.Int("stored_before_failure", commitErr.RolledBack),
				slog.Any("error", commitErr.RollbackErr),
			)
		}

		return fmt.Errorf("storing %d quotes: %w", len(plan.drafts), err)
	}

	plan.imported = lo.Map(inserts, func(a *insertQuote, _ int) *domain.Quote { return a.stored })
	s.metrics.Imported(len(plan.imported))

	return nil
}

func (s *ImportService) respond(ctx context.Context, count int, plan *importPlan) (*ImportResult, error) {
	if plan.failed > 0 {
		logging.FromContextOr(ctx, s.logger).WarnContext(ctx, "some upstream fetches failed",
			slog.Int("requested", count),
			slog.Int("failed", plan.failed),
		)
	}

	return &ImportResult{
		Requested: count,
		Failed:    plan.failed,
		Skipped:   plan.skipped,
		Imported:  plan.imported,
	}, nil
}

func dedupeKey(d domain.QuoteDraft) string {
	return strings.ToLower(d.Text) + "\x00" + strings.ToLower(d.Author)
}
