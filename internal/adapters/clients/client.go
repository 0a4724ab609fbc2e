package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-service/internal/platform/config"
	"github.com/jsamuelsen/quote-service/internal/platform/logging"
)

const (
	instrumentationName = "github.com/jsamuelsen/quote-service/internal/adapters/clients"

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "quote-service"
)

// Config configures a Client for one upstream.
type Config struct {
	// BaseURL is prepended to every request path (e.g. "https://api.quotable.io").
	BaseURL string

	// ServiceName identifies the upstream in logs, spans, metrics and domain errors.
	ServiceName string

	// Timeout bounds each attempt. Retries and backoff come on top.
	Timeout time.Duration

	// UserAgent defaults to "quote-service".
	UserAgent string

	Retry     config.RetryConfig
	Circuit   config.CircuitBreakerConfig
	Transport config.TransportConfig

	Logger *slog.Logger
}

// Client calls one upstream with jittered retries behind a circuit breaker.
// Every call is traced, measured and carries the inbound request and
// correlation ids.
type Client struct {
	http      *http.Client
	baseURL   string
	name      string
	userAgent string
	backoff   backoff
	breaker   *CircuitBreaker
	logger    *slog.Logger
	tracer    trace.Tracer
	inst      instruments
}

type instruments struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
}

func newInstruments() (instruments, error) {
	meter := otel.Meter(instrumentationName)

	duration, err := meter.Float64Histogram("http.client.request.duration",
		metric.WithDescription("Duration of upstream HTTP requests"),
		metric.WithUnit("s"))
	if err != nil {
		return instruments{}, fmt.Errorf("creating duration histogram: %w", err)
	}

	total, err := meter.Int64Counter("http.client.request.total",
		metric.WithDescription("Upstream HTTP requests by result"))
	if err != nil {
		return instruments{}, fmt.Errorf("creating request counter: %w", err)
	}

	return instruments{duration: duration, total: total}, nil
}

// record tags the call with its outcome: a status class like "2xx", or
// circuit_open, canceled or error.
func (i instruments) record(ctx context.Context, upstream, method, result string, status int, elapsed time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", upstream),
		attribute.String("result", result),
	}
	if status > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", status))
	}

	opt := metric.WithAttributes(attrs...)
	i.duration.Record(ctx, elapsed.Seconds(), opt)
	i.total.Add(ctx, 1, opt)
}

// New builds a Client. cfg and cfg.ServiceName are required.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	inst, err := newInstruments()
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "clients.Client"), slog.String("downstream", cfg.ServiceName))

	breaker := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:   cfg.Circuit.MaxFailures,
		Timeout:       cfg.Circuit.Timeout,
		HalfOpenLimit: cfg.Circuit.HalfOpenLimit,
	})
	breaker.OnStateChange(func(from, to State) {
		logger.Warn("circuit breaker state changed", slog.String("from", from.String()), slog.String("to", to.String()))
	})

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		http:      &http.Client{Timeout: timeout, Transport: newTransport(cfg.Transport)},
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		name:      cfg.ServiceName,
		userAgent: userAgent,
		backoff:   newBackoff(cfg.Retry),
		breaker:   breaker,
		logger:    logger,
		tracer:    otel.Tracer(instrumentationName),
		inst:      inst,
	}, nil
}

func newTransport(cfg config.TransportConfig) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.MaxIdleConns > 0 {
		t.MaxIdleConns = cfg.MaxIdleConns
	}

	if cfg.MaxIdleConnsPerHost > 0 {
		t.MaxIdleConnsPerHost = cfg.MaxIdleConnsPerHost
	}

	if cfg.IdleConnTimeout > 0 {
		t.IdleConnTimeout = cfg.IdleConnTimeout
	}

	return t
}

func (c *Client) ServiceName() string { return c.name }

// CircuitState returns the breaker's current state.
func (c *Client) CircuitState() State { return c.breaker.State() }

// RetryAfter returns when an open circuit will admit a probe, or the zero time.
func (c *Client) RetryAfter() time.Time { return c.breaker.RetryAt() }

// Get requests path relative to the base URL, accepting JSON.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	return c.Do(ctx, req)
}

// Do sends req. Retryable statuses (429, 5xx) and network errors are retried
// up to the configured attempts; the returned error then wraps
// ErrMaxRetriesExceeded and the last cause. Any other response, including
// 4xx, is returned to the caller. Only bodiless requests or requests with
// GetBody set are safe to retry.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	log := logging.FromContextOr(ctx, c.logger).With(
		slog.String("downstream", c.name),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	if !c.breaker.Allow() {
		c.inst.record(ctx, c.name, req.Method, "circuit_open", 0, time.Since(start))
		log.WarnContext(ctx, "request blocked by circuit breaker")

		return nil, ErrCircuitOpen
	}

	c.setHeaders(ctx, req)

	ctx, span := c.tracer.Start(ctx, "HTTP "+req.Method+" "+c.name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.name),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.attempts(ctx, req, log)
	elapsed := time.Since(start)

	switch {
	case err != nil && ctx.Err() != nil:
		c.breaker.RecordFailure()
		span.RecordError(err)
		span.SetStatus(codes.Error, "canceled")
		c.inst.record(ctx, c.name, req.Method, "canceled", 0, elapsed)

		return nil, err

	case err != nil:
		c.breaker.RecordFailure()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.inst.record(ctx, c.name, req.Method, "error", 0, elapsed)
		log.ErrorContext(ctx, "request failed", slog.Duration("duration", elapsed), slog.Any("error", err))

		return nil, fmt.Errorf("%w: %w", ErrMaxRetriesExceeded, err)
	}

	c.breaker.RecordSuccess()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, "HTTP "+resp.Status)
	}

	c.inst.record(ctx, c.name, req.Method, fmt.Sprintf("%dxx", resp.StatusCode/100), resp.StatusCode, elapsed)
	log.DebugContext(ctx, "request completed", slog.Int("status", resp.StatusCode), slog.Duration("duration", elapsed))

	return resp, nil
}

// attempts runs the retry loop. A non-nil error is either the caller's
// cancellation (ctx.Err()) or the last attempt's failure.
func (c *Client) attempts(ctx context.Context, req *http.Request, log *slog.Logger) (*http.Response, error) {
	var (
		last error
		hint time.Duration
	)

	for n := range c.backoff.attempts {
		if n > 0 {
			wait := c.backoff.delay(n, hint)
			log.DebugContext(ctx, "retrying request", slog.Int("attempt", n+1), slog.Duration("backoff", wait))

			if err := sleep(ctx, wait); err != nil {
				return nil, err
			}
		}

		resp, err := c.http.Do(req.WithContext(ctx))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			if !retryableErr(err) {
				return nil, err
			}

			log.DebugContext(ctx, "retryable transport error", slog.Int("attempt", n+1), slog.Any("error", err))
			last, hint = err, 0

			continue
		}

		if !retryableStatus(resp.StatusCode) {
			return resp, nil
		}

		log.DebugContext(ctx, "retryable status", slog.Int("attempt", n+1), slog.Int("status", resp.StatusCode))
		hint = retryAfter(resp.Header)
		_ = resp.Body.Close()
		last = &StatusError{StatusCode: resp.StatusCode}
	}

	return nil, last
}

func (c *Client) setHeaders(ctx context.Context, req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)

	if id := middleware.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.HeaderRequestID, id)
	}

	if id := middleware.CorrelationIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.HeaderCorrelationID, id)
	}
}

func (c *Client) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}
