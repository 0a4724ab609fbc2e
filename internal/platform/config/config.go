// Package config holds the service configuration tree and loads it with koanf.
package config

import "time"

// Database drivers understood by the quote store.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the whole configuration tree. Keys mirror the koanf tags, so
// server.read_timeout in YAML is APP_SERVER_READ_TIMEOUT in the environment.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Database  DatabaseConfig  `koanf:"database"  validate:"required"`
	Client    ClientConfig    `koanf:"client"    validate:"required"`
	Services  ServicesConfig  `koanf:"services"  validate:"required"`
	Import    ImportConfig    `koanf:"import"    validate:"required"`
}

type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig tunes the HTTP listener. RequestTimeout is the per-request
// deadline applied by middleware and must stay below WriteTimeout.
type ServerConfig struct {
	Host            string        `koanf:"host"             validate:"required"`
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	RequestTimeout  time.Duration `koanf:"request_timeout"  validate:"required,min=100ms"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig selects level and output format. "pretty" is the colored
// console format for local runs.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig adds a rotated JSON file next to the console output.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig points the OTLP exporters at a collector.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// DatabaseConfig selects the quote store backend. For sqlite the DSN is a
// file path or ":memory:".
type DatabaseConfig struct {
	Driver          string        `koanf:"driver"            validate:"required,oneof=postgres sqlite"`
	DSN             string        `koanf:"dsn"               validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns"    validate:"min=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns"    validate:"min=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

// ClientConfig is shared by every upstream HTTP client.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	Retry          RetryConfig          `koanf:"retry"           validate:"required"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
}

// RetryConfig describes the backoff schedule. MaxAttempts counts the first
// try; JitterFactor spreads each delay by that fraction either way.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"     validate:"required,min=1,max=10"`
	InitialInterval time.Duration `koanf:"initial_interval" validate:"required,min=10ms"`
	MaxInterval     time.Duration `koanf:"max_interval"     validate:"required,min=100ms"`
	Multiplier      float64       `koanf:"multiplier"       validate:"required,min=1.1,max=10"`
	JitterFactor    float64       `koanf:"jitter_factor"    validate:"min=0,max=1"`
}

// CircuitBreakerConfig opens after MaxFailures consecutive failures, waits
// Timeout, then admits HalfOpenLimit probes.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
}

// ServicesConfig lists the upstreams the service calls.
type ServicesConfig struct {
	Quote ServiceEndpointConfig `koanf:"quote" validate:"required"`
}

// ServiceEndpointConfig names an upstream and where to reach it.
type ServiceEndpointConfig struct {
	Name    string `koanf:"name"     validate:"required"`
	BaseURL string `koanf:"base_url" validate:"required,url"`
}

// ImportConfig bounds one admin import: quotes per request and upstream
// calls in flight.
type ImportConfig struct {
	MaxBatch    int `koanf:"max_batch"   validate:"required,min=1,max=500"`
	Concurrency int `koanf:"concurrency" validate:"required,min=1,max=32"`
}
