package dto

import (
	"time"

	"github.com/jsamuelsen/quote-service/internal/domain"
)

// MessageQuoteFailed is the public message for a failed random-quote request.
const MessageQuoteFailed = "Fallo al obtener la cita."

// QuoteResponse is the body of GET /api/quote. The sentinel quote has no id
// or timestamp, so both are omitted for it.
type QuoteResponse struct {
	ID        string     `json:"id,omitempty"`
	Text      string     `json:"text"`
	Author    string     `json:"author"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// NewQuoteResponse converts a domain quote.
func NewQuoteResponse(q *domain.Quote) QuoteResponse {
	resp := QuoteResponse{
		ID:     q.ID,
		Text:   q.Text,
		Author: q.Author,
	}

	if !q.CreatedAt.IsZero() {
		created := q.CreatedAt.UTC()
		resp.CreatedAt = &created
	}

	return resp
}

// QuoteRequest is the create/edit body, accepted as a form post or JSON.
type QuoteRequest struct {
	Text   string `form:"text" json:"text" validate:"required,notempty,max=2000"`
	Author string `form:"author" json:"author" validate:"required,notempty,max=200"`
}

// Draft converts the request to a domain draft.
func (r QuoteRequest) Draft() domain.QuoteDraft {
	return domain.QuoteDraft{Text: r.Text, Author: r.Author}
}

// ImportRequest is the body of POST /admin/import.
type ImportRequest struct {
	Count int `form:"count" json:"count" validate:"required,gte=1"`
}
