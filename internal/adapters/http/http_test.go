package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-service/internal/adapters/http/views"
	"github.com/jsamuelsen/quote-service/internal/app"
	"github.com/jsamuelsen/quote-service/internal/domain"
	"github.com/jsamuelsen/quote-service/internal/mocks"
	"github.com/jsamuelsen/quote-service/internal/platform/config"
	"github.com/jsamuelsen/quote-service/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serverConfig(maxBody int64) *config.ServerConfig {
	return &config.ServerConfig{
		Host:           "127.0.0.1",
		Port:           0,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    30 * time.Second,
		RequestTimeout: 2 * time.Second,
		// Long enough for a drain, short enough to fail a stuck test.
		ShutdownTimeout: 5 * time.Second,
		MaxRequestSize:  maxBody,
	}
}

// newRouter wires the full router over a mocked store.
func newRouter(t *testing.T, timeout time.Duration) (*gin.Engine, *mocks.MockQuoteStore) {
	t.Helper()

	store := mocks.NewMockQuoteStore(t)
	quotes := app.NewQuoteService(app.QuoteServiceConfig{
		Store:  store,
		Pick:   func(int) int { return 0 },
		Logger: discardLogger(),
	})

	engine := gin.New()
	Mount(engine, Routes{
		Logger:         discardLogger(),
		ServiceName:    "quote-service",
		Health:         handlers.NewHealthHandler(ports.NewHealthRegistry(), handlers.BuildInfo{Version: "test"}, prometheus.NewRegistry()),
		Quotes:         handlers.NewQuoteHandler(quotes),
		Admin:          handlers.NewAdminHandler(quotes, nil),
		RequestTimeout: timeout,
	})

	return engine, store
}

func get(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	return w
}

func TestMount_Routes(t *testing.T) {
	engine, _ := newRouter(t, time.Second)

	routes := map[string]bool{}
	for _, r := range engine.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /",
		"GET /api/quote",
		"GET /admin",
		"POST /admin/new",
		"POST /admin/edit/:id",
		"POST /admin/delete/:id",
		"GET /-/live",
		"GET /-/ready",
		"GET /-/metrics",
	} {
		assert.True(t, routes[want], want)
	}

	assert.False(t, routes["POST /admin/import"], "import needs an importer")
}

func TestMount_RandomQuote(t *testing.T) {
	engine, store := newRouter(t, time.Second)

	store.EXPECT().Count(mock.Anything).Return(1, nil).Once()
	store.EXPECT().SampleAt(mock.Anything, 0).
		Return(&domain.Quote{ID: "q1", Text: "Carpe diem.", Author: "Horacio"}, nil).Once()

	w := get(engine, "/api/quote")

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
	assert.Contains(t, w.Body.String(), `"author":"Horacio"`)
}

func TestMount_AdminUsesHTML(t *testing.T) {
	engine, store := newRouter(t, time.Second)

	store.EXPECT().ListAll(mock.Anything, mock.Anything).Return(nil, nil).Once()
	store.EXPECT().Count(mock.Anything).Return(0, nil).Once()

	w := get(engine, "/admin")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Citas (0)")
}

func TestNoRoute(t *testing.T) {
	engine, _ := newRouter(t, time.Second)

	t.Run("api answers json", func(t *testing.T) {
		w := get(engine, "/api/nope")

		require.Equal(t, http.StatusNotFound, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrorCodeNotFound, resp.Error.Code)
		assert.Equal(t, "route not found", resp.Error.Message)
		assert.NotEmpty(t, resp.TraceID)
	})

	t.Run("pages answer html", func(t *testing.T) {
		w := get(engine, "/nope")

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "Error 404")
	})
}

func TestMount_TimeoutOnAPI(t *testing.T) {
	engine, store := newRouter(t, 20*time.Millisecond)

	store.EXPECT().Count(mock.Anything).RunAndReturn(func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, domain.NewUnavailableErrorWithCause("quote-store", "count failed", ctx.Err())
	}).Once()

	w := get(engine, "/api/quote")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), dto.MessageQuoteFailed)
}

func TestRespond(t *testing.T) {
	tests := []struct {
		path        string
		contentType string
	}{
		{"/api/quote", "application/json"},
		{"/admin", "text/html"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			engine := gin.New()
			engine.SetHTMLTemplate(views.Templates())
			engine.Use(middleware.Recovery(discardLogger(), Respond))
			engine.GET(tt.path, func(*gin.Context) { panic("kaboom") })

			w := get(engine, tt.path)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), tt.contentType)
			assert.NotContains(t, w.Body.String(), "kaboom")
		})
	}
}

func TestIsAPIRequest(t *testing.T) {
	tests := map[string]bool{
		"/api":       true,
		"/api/quote": true,
		"/apiary":    false,
		"/admin":     false,
		"/":          false,
	}

	for path, want := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, path, nil)

		assert.Equal(t, want, isAPIRequest(c), path)
	}
}

func TestServer_NewAndAddr(t *testing.T) {
	cfg := serverConfig(1 << 20)
	cfg.Host, cfg.Port = "0.0.0.0", 3000

	srv := New(cfg, discardLogger())

	require.NotNil(t, srv.Engine())
	assert.Equal(t, "0.0.0.0:3000", srv.Addr())
}

func TestServer_RunServesUntilCanceled(t *testing.T) {
	srv := New(serverConfig(1<<20), discardLogger())
	srv.Engine().GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	require.NoError(t, srv.Listen())
	assert.NotEqual(t, "127.0.0.1:0", srv.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- srv.Run(ctx) }()

	resp, err := http.Get("http://" + srv.Addr() + "/ping")
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	_, err = http.Get("http://" + srv.Addr() + "/ping")
	assert.Error(t, err, "listener is closed after Run returns")
}

func TestServer_RunDrainsInFlightRequest(t *testing.T) {
	srv := New(serverConfig(1<<20), discardLogger())

	entered := make(chan struct{})
	srv.Engine().GET("/slow", func(c *gin.Context) {
		close(entered)
		time.Sleep(100 * time.Millisecond)
		c.String(http.StatusOK, "done")
	})

	require.NoError(t, srv.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- srv.Run(ctx) }()

	type result struct {
		body string
		err  error
	}

	got := make(chan result, 1)

	go func() {
		resp, err := http.Get("http://" + srv.Addr() + "/slow")
		if err != nil {
			got <- result{err: err}
			return
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(resp.Body)
		got <- result{string(b), err}
	}()

	<-entered
	cancel()

	r := <-got
	require.NoError(t, r.err)
	assert.Equal(t, "done", r.body)
	require.NoError(t, <-done)
}

func TestServer_BindFailure(t *testing.T) {
	first := New(serverConfig(1<<20), discardLogger())
	require.NoError(t, first.Listen())
	require.NoError(t, first.Listen(), "listening twice is a no-op")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- first.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		<-done
	})

	cfg := serverConfig(1 << 20)
	cfg.Port = portOf(t, first.Addr())

	err := New(cfg, discardLogger()).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listening on")
}

func TestMaxBodySize(t *testing.T) {
	srv := New(serverConfig(16), discardLogger())
	srv.Engine().POST("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}

		c.String(http.StatusOK, string(body))
	})

	for _, tc := range []struct {
		body string
		want int
	}{
		{"short", http.StatusOK},
		{strings.Repeat("x", 64), http.StatusRequestEntityTooLarge},
	} {
		w := httptest.NewRecorder()
		srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(tc.body)))

		assert.Equal(t, tc.want, w.Code)
	}
}

func portOf(t *testing.T, addr string) int {
	t.Helper()

	_, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)

	n, err := strconv.Atoi(port)
	require.NoError(t, err)

	return n
}
