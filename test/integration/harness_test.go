//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quote-service/internal/adapters/clients"
	"github.com/jsamuelsen/quote-service/internal/adapters/clients/acl"
	httpadapter "github.com/jsamuelsen/quote-service/internal/adapters/http"
	"github.com/jsamuelsen/quote-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-service/internal/adapters/metrics"
	"github.com/jsamuelsen/quote-service/internal/adapters/storage/sqlstore"
	"github.com/jsamuelsen/quote-service/internal/app"
	"github.com/jsamuelsen/quote-service/internal/domain"
	"github.com/jsamuelsen/quote-service/internal/platform/config"
	"github.com/jsamuelsen/quote-service/internal/ports"
)

const importMaxBatch = 5

// upstream is a quotable-style stub. It serves its current quote until
// marked down, then answers 503.
type upstream struct {
	server *httptest.Server

	mu    sync.Mutex
	quote domain.QuoteDraft
	down  bool
	calls int
}

func newUpstream() *upstream {
	u := &upstream{quote: domain.QuoteDraft{Text: "Carpe diem.", Author: "Horacio"}}
	u.server = httptest.NewServer(http.HandlerFunc(u.serveHTTP))

	return u
}

func (u *upstream) serveHTTP(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	quote, down := u.quote, u.down
	u.calls++
	u.mu.Unlock()

	if r.URL.Path != "/random" {
		http.NotFound(w, r)
		return
	}

	if down {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"_id":     "stub",
		"content": quote.Text,
		"author":  quote.Author,
	})
}

func (u *upstream) serve(text, author string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.quote, u.down = domain.QuoteDraft{Text: text, Author: author}, false
}

func (u *upstream) setDown(down bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.down = down
}

func (u *upstream) Calls() int {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.calls
}

// harness runs the whole service in-process over a SQLite file and a stub upstream.
type harness struct {
	server   *httptest.Server
	store    *sqlstore.Store
	upstream *upstream
	client   *http.Client
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func upstreamClientConfig(baseURL string) *clients.Config {
	return &clients.Config{
		BaseURL:     baseURL,
		ServiceName: "upstream-quotes",
		Timeout:     2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     50 * time.Millisecond,
			Multiplier:      2,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   100,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
		Logger: discardLogger(),
	}
}

func openStore(t testing.TB) *sqlstore.Store {
	t.Helper()

	store, err := sqlstore.Open(context.Background(), &sqlstore.Config{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "quotes.db"),
		Logger: discardLogger(),
	})
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}

	t.Cleanup(func() { _ = store.Close() })

	return store
}

func startHarness(t testing.TB) *harness {
	t.Helper()

	gin.SetMode(gin.TestMode)

	up := newUpstream()
	t.Cleanup(up.server.Close)

	client, err := clients.New(upstreamClientConfig(up.server.URL))
	if err != nil {
		t.Fatalf("creating upstream client: %v", err)
	}

	store := openStore(t)
	source := acl.NewQuoteSource(acl.QuoteSourceConfig{Client: client, Logger: discardLogger()})

	registry := ports.NewHealthRegistry()
	_ = registry.Register(store)
	_ = registry.Register(source)

	promRegistry := prometheus.NewRegistry()
	quoteMetrics := metrics.NewQuotes(promRegistry)

	quotes := app.NewQuoteService(app.QuoteServiceConfig{Store: store, Metrics: quoteMetrics, Logger: discardLogger()})
	importer := app.NewImportService(app.ImportServiceConfig{
		Source:      source,
		Store:       store,
		Metrics:     quoteMetrics,
		MaxBatch:    importMaxBatch,
		Concurrency: 2,
		Logger:      discardLogger(),
	})

	engine := gin.New()
	httpadapter.Mount(engine, httpadapter.Routes{
		Logger:         discardLogger(),
		ServiceName:    "quote-service",
		Health:         handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "none", "now"), promRegistry),
		Quotes:         handlers.NewQuoteHandler(quotes),
		Admin:          handlers.NewAdminHandler(quotes, importer),
		RequestTimeout: 5 * time.Second,
	})

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	return &harness{
		server:   srv,
		store:    store,
		upstream: up,
		client: &http.Client{
			Timeout: 10 * time.Second,
			// Admin writes answer 303; scenarios assert on the redirect itself.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// clear empties the collection between scenarios.
func (h *harness) clear(ctx context.Context) error {
	all, err := h.store.ListAll(ctx, domain.OrderNewestFirst)
	if err != nil {
		return err
	}

	for _, q := range all {
		if _, err := h.store.DeleteByID(ctx, q.ID); err != nil {
			return err
		}
	}

	return nil
}
