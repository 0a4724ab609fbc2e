// Package handlers provides the gin handlers of the service.
package handlers

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jsamuelsen/quote-service/internal/ports"
)

// BuildInfo describes the running binary; main fills it from ldflags.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
}

func NewBuildInfo(version, commit, buildTime string) BuildInfo {
	return BuildInfo{Version: version, Commit: commit, BuildTime: buildTime, GoVersion: runtime.Version()}
}

// HealthHandler serves the operational endpoints under /-/: liveness,
// readiness, build info and Prometheus metrics.
type HealthHandler struct {
	checks   ports.HealthRegistry
	build    BuildInfo
	gatherer prometheus.Gatherer
}

// NewHealthHandler wires the probes. A nil gatherer means the default
// Prometheus registry.
func NewHealthHandler(checks ports.HealthRegistry, build BuildInfo, gatherer prometheus.Gatherer) *HealthHandler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	return &HealthHandler{checks: checks, build: build, gatherer: gatherer}
}

// Liveness only proves the process answers; it touches no dependency.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type readiness struct {
	Status  ports.HealthStatus            `json:"status"`
	Version string                        `json:"version,omitempty"`
	Checks  map[string]*ports.CheckResult `json:"checks,omitempty"`
}

// Readiness answers 503 while the quote store or the upstream circuit is unhealthy.
func (h *HealthHandler) Readiness(c *gin.Context) {
	result := h.checks.CheckAll(c.Request.Context())

	code := http.StatusOK
	if result.Status != ports.HealthStatusHealthy {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, readiness{Status: result.Status, Version: h.build.Version, Checks: result.Checks})
}

func (h *HealthHandler) BuildInfoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.build)
}

// MetricsHandler serves gatherer in the Prometheus exposition format.
func MetricsHandler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// RegisterHealthRoutes mounts live, ready, build and metrics on rg.
func (h *HealthHandler) RegisterHealthRoutes(rg *gin.RouterGroup) {
	rg.GET("/live", h.Liveness)
	rg.GET("/ready", h.Readiness)
	rg.GET("/build", h.BuildInfoHandler)
	rg.GET("/metrics", gin.WrapH(MetricsHandler(h.gatherer)))
}

// RegisterHealthRoutesOnEngine mounts the probes under /-/.
func (h *HealthHandler) RegisterHealthRoutesOnEngine(engine *gin.Engine) {
	h.RegisterHealthRoutes(engine.Group("/-"))
}
