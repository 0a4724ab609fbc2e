// Command service runs the quote service: the public random-quote page and
// API, the admin pages and the upstream import.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jsamuelsen/quote-service/internal/adapters/clients"
	"github.com/jsamuelsen/quote-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quote-service/internal/adapters/http"
	"github.com/jsamuelsen/quote-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-service/internal/adapters/metrics"
	"github.com/jsamuelsen/quote-service/internal/adapters/storage/sqlstore"
	"github.com/jsamuelsen/quote-service/internal/app"
	"github.com/jsamuelsen/quote-service/internal/platform/config"
	"github.com/jsamuelsen/quote-service/internal/platform/logging"
	"github.com/jsamuelsen/quote-service/internal/platform/telemetry"
	"github.com/jsamuelsen/quote-service/internal/ports"
)

// Set with -ldflags "-X main.Version=... -X main.Commit=... -X main.BuildTime=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "quote-service: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// run wires the service and blocks until ctx is canceled or the server fails.
func run(ctx context.Context) (err error) {
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg)
	logging.SetDefault(logger)

	logger.Info("starting quote service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("profile", profile),
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("upstream", cfg.Services.Quote.BaseURL),
	)

	tel, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("starting telemetry: %w", err)
	}
	defer func() { err = errors.Join(err, tel.Shutdown(ctx)) }()

	store, err := sqlstore.Open(ctx, &sqlstore.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("opening quote store: %w", err)
	}
	defer func() { err = errors.Join(err, store.Close()) }()

	source, err := newQuoteSource(cfg, logger)
	if err != nil {
		return err
	}

	health := ports.NewHealthRegistry()
	for _, c := range []ports.HealthChecker{store, source} {
		if err := health.Register(c); err != nil {
			return err
		}
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	quoteMetrics := metrics.NewQuotes(promRegistry)

	quotes := app.NewQuoteService(app.QuoteServiceConfig{Store: store, Metrics: quoteMetrics, Logger: logger})
	importer := app.NewImportService(app.ImportServiceConfig{
		Source:      source,
		Store:       store,
		Metrics:     quoteMetrics,
		MaxBatch:    cfg.Import.MaxBatch,
		Concurrency: cfg.Import.Concurrency,
		Logger:      logger,
	})

	if cfg.App.Environment != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := http.New(&cfg.Server, logger)
	http.Mount(server.Engine(), http.Routes{
		Logger:         logger,
		ServiceName:    cfg.App.Name,
		Health:         handlers.NewHealthHandler(health, handlers.NewBuildInfo(Version, Commit, BuildTime), promRegistry),
		Quotes:         handlers.NewQuoteHandler(quotes),
		Admin:          handlers.NewAdminHandler(quotes, importer),
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	if err := server.Run(ctx); err != nil {
		return err
	}

	logger.Info("quote service stopped")

	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	f := cfg.Log.File

	return logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: Version,
		File: logging.FileConfig{
			Enabled:    f.Enabled,
			Path:       f.Path,
			MaxSizeMB:  f.MaxSizeMB,
			MaxBackups: f.MaxBackups,
			MaxAgeDays: f.MaxAgeDays,
			Compress:   f.Compress,
		},
	})
}

func newQuoteSource(cfg *config.Config, logger *slog.Logger) (*acl.QuoteSource, error) {
	upstream, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Quote.BaseURL,
		ServiceName: cfg.Services.Quote.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		UserAgent:   cfg.App.Name + "/" + Version,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating upstream client: %w", err)
	}

	return acl.NewQuoteSource(acl.QuoteSourceConfig{Client: upstream, Logger: logger}), nil
}
