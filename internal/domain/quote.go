package domain

import (
	"strings"
	"time"
)

// EntityQuote names the quote entity in errors.
const EntityQuote = "quote"

// Sentinel text returned when the collection has no quotations.
const (
	NoQuotesText   = "No hay citas disponibles."
	NoQuotesAuthor = "Sistema"
)

// Quote is a persisted quotation.
// ID and CreatedAt are assigned by the store and never change afterwards.
type Quote struct {
	ID        string
	Text      string
	Author    string
	CreatedAt time.Time
}

// NoQuotesAvailable returns the placeholder served when there is nothing to sample.
// It is a value, not an error: the home page must always have something to render.
func NoQuotesAvailable() *Quote {
	return &Quote{
		Text:   NoQuotesText,
		Author: NoQuotesAuthor,
	}
}

// IsSentinel reports whether q is the "no quotations available" placeholder.
func (q *Quote) IsSentinel() bool {
	return q != nil && q.ID == "" && q.Text == NoQuotesText && q.Author == NoQuotesAuthor
}

// QuoteDraft is the only input accepted by create and edit.
type QuoteDraft struct {
	Text   string
	Author string
}

// Normalize returns a copy with surrounding whitespace removed.
func (d QuoteDraft) Normalize() QuoteDraft {
	return QuoteDraft{
		Text:   strings.TrimSpace(d.Text),
		Author: strings.TrimSpace(d.Author),
	}
}

// Validate rejects drafts with an empty text or author.
func (d QuoteDraft) Validate() error {
	n := d.Normalize()

	if n.Text == "" {
		return NewValidationError("text", "is required")
	}

	if n.Author == "" {
		return NewValidationError("author", "is required")
	}

	return nil
}

// ListOrder selects the sort key for full listings.
type ListOrder string

const (
	// OrderNewestFirst sorts by creation time, most recent first. Used by the admin listing.
	OrderNewestFirst ListOrder = "newest"

	// OrderOldestFirst sorts by creation time, oldest first.
	OrderOldestFirst ListOrder = "oldest"
)

// Valid reports whether o is a known ordering.
func (o ListOrder) Valid() bool {
	return o == OrderNewestFirst || o == OrderOldestFirst
}

// ValidateID rejects blank identifiers before they reach the store.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return NewValidationError("id", "is required")
	}

	return nil
}
