// Package telemetry wires OpenTelemetry tracing and metrics for the quote service.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/jsamuelsen/quote-service"

	shutdownTimeout = 5 * time.Second
)

// Config holds telemetry configuration. Endpoint is the collector's OTLP/gRPC
// URL; an http:// scheme selects a plaintext connection.
type Config struct {
	Enabled      bool
	Endpoint     string
	ServiceName  string
	Version      string
	Environment  string
	SamplingRate float64
}

// Provider remembers what New installed so it can be flushed on shutdown.
type Provider struct {
	closers []closer
}

type closer struct {
	name string
	fn   func(context.Context) error
}

// New installs global OTLP trace and metric providers. Disabled telemetry
// leaves the global no-op providers in place.
func New(ctx context.Context, cfg *Config) (*Provider, error) {
	p := &Provider{}
	if !cfg.Enabled {
		return p, nil
	}

	res, err := serviceResource(cfg)
	if err != nil {
		return nil, err
	}

	tp, err := tracerProvider(ctx, cfg, res)
	if err != nil {
		return nil, err
	}
	p.closers = append(p.closers, closer{"tracer provider", tp.Shutdown})

	mp, err := meterProvider(ctx, cfg, res)
	if err != nil {
		return nil, errors.Join(err, p.Shutdown(ctx))
	}
	p.closers = append(p.closers, closer{"meter provider", mp.Shutdown})

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return p, nil
}

func serviceResource(cfg *Config) (*resource.Resource, error) {
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.Version),
		semconv.DeploymentEnvironment(cfg.Environment),
	))
	if err != nil {
		return nil, fmt.Errorf("building telemetry resource: %w", err)
	}

	return res, nil
}

func tracerProvider(ctx context.Context, cfg *Config, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	exp, err := otlptracegrpc.New(ctx, otlptracegrpc.WithEndpointURL(cfg.Endpoint))
	if err != nil {
		return nil, fmt.Errorf("creating span exporter for %s: %w", cfg.Endpoint, err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exp),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SamplingRate))),
	), nil
}

func meterProvider(ctx context.Context, cfg *Config, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	exp, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithEndpointURL(cfg.Endpoint))
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter for %s: %w", cfg.Endpoint, err)
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
	), nil
}

// Tracer returns the tracer for one component, e.g. Tracer("sqlstore").
func Tracer(component string) trace.Tracer {
	return otel.Tracer(instrumentationName + "/" + component)
}

// Shutdown flushes pending telemetry, newest provider first. A disabled
// Provider has nothing to flush.
func (p *Provider) Shutdown(ctx context.Context) error {
	if len(p.closers) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	var errs []error

	for i := len(p.closers) - 1; i >= 0; i-- {
		c := p.closers[i]
		if err := c.fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutting down %s: %w", c.name, err))
		}
	}

	return errors.Join(errs...)
}
