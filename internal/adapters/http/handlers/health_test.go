package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-service/internal/mocks"
	"github.com/jsamuelsen/quote-service/internal/ports"
)

func checker(t *testing.T, name string, err error) *mocks.MockHealthChecker {
	t.Helper()

	c := mocks.NewMockHealthChecker(t)
	c.EXPECT().Name().Return(name).Maybe()
	c.EXPECT().Check(mock.Anything).Return(err).Maybe()

	return c
}

func healthEngine(t *testing.T, reg *prometheus.Registry, checkers ...ports.HealthChecker) *gin.Engine {
	t.Helper()

	registry := ports.NewHealthRegistry()
	for _, c := range checkers {
		require.NoError(t, registry.Register(c))
	}

	engine := gin.New()
	NewHealthHandler(registry, NewBuildInfo("1.2.3", "def456", "2024-02-01T12:00:00Z"), reg).
		RegisterHealthRoutesOnEngine(engine)

	return engine
}

func TestNewBuildInfo(t *testing.T) {
	bi := NewBuildInfo("1.0.0", "abc123", "2024-01-15T10:00:00Z")

	assert.Equal(t, "1.0.0", bi.Version)
	assert.Equal(t, "abc123", bi.Commit)
	assert.Equal(t, runtime.Version(), bi.GoVersion)
}

func TestHealthHandler_Liveness(t *testing.T) {
	w := do(healthEngine(t, prometheus.NewRegistry()), http.MethodGet, "/-/live", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		checkers   func(t *testing.T) []ports.HealthChecker
		wantStatus int
		wantBody   string
	}{
		{
			name: "store and upstream healthy",
			checkers: func(t *testing.T) []ports.HealthChecker {
				return []ports.HealthChecker{checker(t, "quote-store", nil), checker(t, "upstream-quotes", nil)}
			},
			wantStatus: http.StatusOK,
			wantBody:   "healthy",
		},
		{
			name: "store down",
			checkers: func(t *testing.T) []ports.HealthChecker {
				return []ports.HealthChecker{
					checker(t, "quote-store", errors.New("quote-store unavailable: ping failed")),
					checker(t, "upstream-quotes", nil),
				}
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "ping failed",
		},
		{
			name:       "nothing registered",
			checkers:   func(*testing.T) []ports.HealthChecker { return nil },
			wantStatus: http.StatusOK,
			wantBody:   "healthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(healthEngine(t, prometheus.NewRegistry(), tt.checkers(t)...), http.MethodGet, "/-/ready", "", "")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.Contains(t, w.Body.String(), `"version":"1.2.3"`)
		})
	}
}

func TestHealthHandler_BuildInfo(t *testing.T) {
	w := do(healthEngine(t, prometheus.NewRegistry()), http.MethodGet, "/-/build", "", "")

	require.Equal(t, http.StatusOK, w.Code)

	var resp BuildInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Equal(t, "def456", resp.Commit)
}

func TestHealthHandler_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "quotes_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	w := do(healthEngine(t, reg), http.MethodGet, "/-/metrics", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "quotes_test_total 1")
}

func TestMetricsHandler_DefaultGatherer(t *testing.T) {
	h := NewHealthHandler(ports.NewHealthRegistry(), BuildInfo{}, nil)

	w := httptest.NewRecorder()
	MetricsHandler(h.gatherer).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
