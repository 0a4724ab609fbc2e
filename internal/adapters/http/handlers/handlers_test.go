package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-service/internal/adapters/http/views"
	"github.com/jsamuelsen/quote-service/internal/app"
	"github.com/jsamuelsen/quote-service/internal/domain"
	"github.com/jsamuelsen/quote-service/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newEngine returns a gin engine with the HTML pages loaded.
func newEngine() *gin.Engine {
	engine := gin.New()
	engine.SetHTMLTemplate(views.Templates())

	return engine
}

func newQuoteService(t *testing.T) (*app.QuoteService, *mocks.MockQuoteStore) {
	t.Helper()

	store := mocks.NewMockQuoteStore(t)

	return app.NewQuoteService(app.QuoteServiceConfig{
		Store:  store,
		Pick:   func(int) int { return 0 },
		Logger: discardLogger(),
	}), store
}

func do(engine *gin.Engine, method, path, body, contentType string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	return w
}

func storeDown() error {
	return domain.NewUnavailableErrorWithCause("quote-store", "query failed", errors.New("pq: relation \"quotes\" does not exist"))
}

const formContentType = "application/x-www-form-urlencoded"
