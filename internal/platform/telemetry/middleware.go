package telemetry

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-service/internal/platform/logging"
)

// unmatchedRoute labels requests gin could not route, keeping metric cardinality bounded.
const unmatchedRoute = "unmatched"

// HeaderTraceID echoes the active trace id back to the caller.
const HeaderTraceID = "X-Trace-ID"

// serverInstruments are the OTLP counterparts of the Prometheus HTTP series.
type serverInstruments struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
	inFlight metric.Int64UpDownCounter
}

func newServerInstruments() (*serverInstruments, error) {
	meter := otel.Meter(instrumentationName + "/http")

	duration, durErr := meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("Time spent serving a request"), metric.WithUnit("s"))
	total, totalErr := meter.Int64Counter("http.server.request.total",
		metric.WithDescription("Requests served, by route and status"))
	inFlight, flightErr := meter.Int64UpDownCounter("http.server.active_requests",
		metric.WithDescription("Requests currently being served"))

	if err := errors.Join(durErr, totalErr, flightErr); err != nil {
		return nil, err
	}

	return &serverInstruments{duration: duration, total: total, inFlight: inFlight}, nil
}

// Middleware measures each request, echoes the trace id in X-Trace-ID and
// tags the request logger with it. It expects TracingMiddleware to have
// started the span already.
func Middleware() gin.HandlerFunc {
	inst, err := newServerInstruments()
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			id := sc.TraceID().String()
			c.Header(HeaderTraceID, id)
			c.Request = c.Request.WithContext(logging.WithTraceID(ctx, id))
		}

		if inst == nil {
			c.Next()
			return
		}

		start := time.Now()
		base := []attribute.KeyValue{
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", routeLabel(c)),
		}

		inst.inFlight.Add(ctx, 1, metric.WithAttributes(base...))
		defer inst.inFlight.Add(ctx, -1, metric.WithAttributes(base...))

		c.Next()

		done := metric.WithAttributes(append(base, attribute.Int("http.status_code", c.Writer.Status()))...)
		inst.duration.Record(ctx, time.Since(start).Seconds(), done)
		inst.total.Add(ctx, 1, done)
	}
}

// TracingMiddleware starts a server span per request.
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}

func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}

	return unmatchedRoute
}
