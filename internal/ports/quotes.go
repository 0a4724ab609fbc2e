// Package ports defines the contracts the application layer depends on.
// Adapters implement them; the app package never imports an adapter.
//
// Conventions:
//   - context.Context is always the first parameter
//   - methods return domain types and domain errors (ErrNotFound, ErrValidation, ErrUnavailable)
//   - no infrastructure type (sql rows, HTTP responses) crosses a port
package ports

import (
	"context"

	"github.com/jsamuelsen/quote-service/internal/domain"
)

// QuoteStore is durable access to the quote collection.
//
// Sampling relies on a fixed ordering: SampleAt(k) must return the same record
// for the same k as long as the collection is not mutated.
type QuoteStore interface {
	// Count returns the number of stored quotes.
	Count(ctx context.Context) (int, error)

	// SampleAt returns the quote at zero-based offset under the store's stable ordering.
	// Returns domain.ErrNotFound when offset is outside [0, Count()), which is how a
	// collection that shrank since the caller's Count() is reported.
	SampleAt(ctx context.Context, offset int) (*domain.Quote, error)

	// ListAll returns a snapshot of every quote sorted by order.
	ListAll(ctx context.Context, order domain.ListOrder) ([]*domain.Quote, error)

	// FindByID returns domain.ErrNotFound when id does not exist.
	FindByID(ctx context.Context, id string) (*domain.Quote, error)

	// Insert assigns ID and CreatedAt and persists the draft.
	Insert(ctx context.Context, draft domain.QuoteDraft) (*domain.Quote, error)

	// UpdateByID replaces text and author together. ID and CreatedAt are preserved.
	// Returns domain.ErrNotFound when id does not exist.
	UpdateByID(ctx context.Context, id string, draft domain.QuoteDraft) (*domain.Quote, error)

	// DeleteByID reports whether a record was removed.
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// QuoteSource fetches quotations from an upstream provider for bulk import.
type QuoteSource interface {
	// RandomQuote returns one upstream quotation as a draft (no ID, no timestamp).
	// Returns domain.ErrUnavailable when the upstream cannot be reached.
	RandomQuote(ctx context.Context) (domain.QuoteDraft, error)
}

// RandomOutcome labels how a random-quote request was answered.
type RandomOutcome string

const (
	// OutcomeQuote means a stored quote was returned.
	OutcomeQuote RandomOutcome = "quote"

	// OutcomeEmpty means the collection was empty and the sentinel was returned.
	OutcomeEmpty RandomOutcome = "empty"

	// OutcomeDegraded means the sample raced with deletions and the sentinel was returned.
	OutcomeDegraded RandomOutcome = "degraded"
)

// QuoteMetrics records quote-level business metrics.
type QuoteMetrics interface {
	RandomServed(outcome RandomOutcome)
	SampleRetried()
	AdminOperation(operation string, err error)
	Imported(n int)
}

// NopQuoteMetrics discards every observation.
type NopQuoteMetrics struct{}

func (NopQuoteMetrics) RandomServed(RandomOutcome)   {}
func (NopQuoteMetrics) SampleRetried()               {}
func (NopQuoteMetrics) AdminOperation(string, error) {}
func (NopQuoteMetrics) Imported(int)                 {}
