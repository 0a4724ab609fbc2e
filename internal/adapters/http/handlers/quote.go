package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-service/internal/adapters/http/views"
	"github.com/jsamuelsen/quote-service/internal/app"
	"github.com/jsamuelsen/quote-service/internal/domain"
	"github.com/jsamuelsen/quote-service/internal/platform/logging"
)

// QuoteHandler serves the home page and the random-quote API.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// Home handles GET /, rendering one random quote server-side. The page never
// fails on the store: any error is logged and the "no quotations" quote shown.
func (h *QuoteHandler) Home(c *gin.Context) {
	ctx := c.Request.Context()

	quote, err := h.service.RandomQuote(ctx)
	if err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "home page quote unavailable",
			slog.Any("error", err),
			slog.String("trace_id", dto.GetTraceID(c)),
		)

		_ = c.Error(err)
		quote = domain.NoQuotesAvailable()
	}

	c.HTML(http.StatusOK, views.PageIndex, views.IndexPage{Quote: quoteView(quote)})
}

// GetRandomQuote handles GET /api/quote.
//
// An empty collection answers 200 with the "no quotations" sentinel. Any
// failure answers 500 with a fixed message; the cause is only logged.
func (h *QuoteHandler) GetRandomQuote(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	quote, err := h.service.RandomQuote(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err, dto.WithServerMessage(dto.MessageQuoteFailed))
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// RegisterQuoteRoutes registers GET / and GET /api/quote.
func (h *QuoteHandler) RegisterQuoteRoutes(root, api *gin.RouterGroup) {
	root.GET("/", h.Home)
	api.GET("/quote", h.GetRandomQuote)
}
