// Package sqlstore implements ports.QuoteStore on PostgreSQL or SQLite through sqlx.
//
// Queries are written once with '?' placeholders and rebound per driver.
// Timestamps are stored as UTC Unix milliseconds so both engines compare them
// the same way. IDs are UUIDv7 strings, which makes ORDER BY id a stable,
// roughly insertion-ordered walk used for offset sampling.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	_ "modernc.org/sqlite" // sqlite driver

	"github.com/jsamuelsen/quote-service/internal/adapters/storage/sqlstore/migrations"
	"github.com/jsamuelsen/quote-service/internal/domain"
	"github.com/jsamuelsen/quote-service/internal/platform/config"
	"github.com/jsamuelsen/quote-service/internal/platform/logging"
	"github.com/jsamuelsen/quote-service/internal/platform/telemetry"
)

const (
	// checkerName identifies the store in readiness responses and error messages.
	checkerName = "quote-store"

	sqliteMemoryDSN = ":memory:"
	sqlitePragmas   = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
)

func init() {
	// sqlx has no bind type registered for modernc's driver name.
	sqlx.BindDriver(config.DriverSQLite, sqlx.QUESTION)
}

// Config configures a Store.
type Config struct {
	// Driver is config.DriverPostgres or config.DriverSQLite.
	Driver string

	// DSN is a lib/pq connection string or a SQLite file path (":memory:" for tests).
	DSN string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// Now overrides the clock used to stamp new quotes. Defaults to time.Now.
	Now func() time.Time

	// Logger is an optional logger. If nil, the default logger is used.
	Logger *slog.Logger
}

// Store is a SQL-backed quote collection.
type Store struct {
	db     *sqlx.DB
	now    func() time.Time
	logger *slog.Logger
	tracer trace.Tracer
	driver string
}

type quoteRow struct {
	ID        string `db:"id"`
	Text      string `db:"text"`
	Author    string `db:"author"`
	CreatedAt int64  `db:"created_at"`
}

func (r *quoteRow) toDomain() *domain.Quote {
	return &domain.Quote{
		ID:        r.ID,
		Text:      r.Text,
		Author:    r.Author,
		CreatedAt: fromMillis(r.CreatedAt),
	}
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// Open connects, verifies the connection and applies embedded migrations.
// The returned Store owns the connection pool; call Close on shutdown.
func Open(ctx context.Context, cfg *Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, errors.New("dsn is required")
	}

	dsn, err := driverDSN(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", cfg.Driver, err)
	}

	configurePool(db, cfg)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s db: %w", cfg.Driver, err)
	}

	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		db:     db,
		now:    now,
		logger: logger.With(slog.String("component", "sqlstore.Store"), slog.String("driver", cfg.Driver)),
		tracer: telemetry.Tracer("sqlstore"),
		driver: cfg.Driver,
	}, nil
}

func driverDSN(driver, dsn string) (string, error) {
	switch driver {
	case config.DriverPostgres:
		return dsn, nil
	case config.DriverSQLite:
		if dsn == sqliteMemoryDSN || strings.Contains(dsn, "?") {
			return dsn, nil
		}

		return dsn + "?" + sqlitePragmas, nil
	default:
		return "", fmt.Errorf("unsupported driver %q", driver)
	}
}

func configurePool(db *sqlx.DB, cfg *Config) {
	// SQLite serializes writers anyway, and every :memory: connection is a separate database.
	if cfg.Driver == config.DriverSQLite {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)

		return
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return checkerName
}

// Check implements ports.HealthChecker by pinging the database.
func (s *Store) Check(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Count returns the number of stored quotes.
func (s *Store) Count(ctx context.Context) (int, error) {
	ctx, span := s.startSpan(ctx, "quotes.count", "SELECT")
	defer span.End()

	var n int

	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM quotes`); err != nil {
		return 0, s.fail(span, "count", err)
	}

	return n, nil
}

// SampleAt returns the quote at offset under ORDER BY id.
func (s *Store) SampleAt(ctx context.Context, offset int) (*domain.Quote, error) {
	ctx, span := s.startSpan(ctx, "quotes.sample", "SELECT")
	defer span.End()

	span.SetAttributes(attribute.Int("quotes.offset", offset))

	if offset < 0 {
		return nil, domain.NewNotFoundError(domain.EntityQuote, "")
	}

	var row quoteRow

	err := s.db.GetContext(ctx, &row,
		s.db.Rebind(`SELECT id, text, author, created_at FROM quotes ORDER BY id LIMIT 1 OFFSET ?`),
		offset,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError(domain.EntityQuote, "")
	}

	if err != nil {
		return nil, s.fail(span, "sample", err)
	}

	return row.toDomain(), nil
}

// ListAll returns every quote in the requested order.
func (s *Store) ListAll(ctx context.Context, order domain.ListOrder) ([]*domain.Quote, error) {
	ctx, span := s.startSpan(ctx, "quotes.list", "SELECT")
	defer span.End()

	orderBy, err := orderClause(order)
	if err != nil {
		return nil, err
	}

	var rows []quoteRow

	if err := s.db.SelectContext(ctx, &rows, `SELECT id, text, author, created_at FROM quotes ORDER BY `+orderBy); err != nil {
		return nil, s.fail(span, "list", err)
	}

	quotes := make([]*domain.Quote, 0, len(rows))
	for i := range rows {
		quotes = append(quotes, rows[i].toDomain())
	}

	span.SetAttributes(attribute.Int("quotes.count", len(quotes)))

	return quotes, nil
}

func orderClause(order domain.ListOrder) (string, error) {
	switch order {
	case domain.OrderNewestFirst, "":
		return "created_at DESC, id DESC", nil
	case domain.OrderOldestFirst:
		return "created_at ASC, id ASC", nil
	default:
		return "", domain.NewValidationError("order", fmt.Sprintf("unknown order %q", order))
	}
}

// FindByID returns the quote with id.
func (s *Store) FindByID(ctx context.Context, id string) (*domain.Quote, error) {
	ctx, span := s.startSpan(ctx, "quotes.find", "SELECT")
	defer span.End()

	var row quoteRow

	err := s.db.GetContext(ctx, &row,
		s.db.Rebind(`SELECT id, text, author, created_at FROM quotes WHERE id = ?`),
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError(domain.EntityQuote, id)
	}

	if err != nil {
		return nil, s.fail(span, "find", err)
	}

	return row.toDomain(), nil
}

// Insert trims and validates the draft, stamps it with a fresh UUIDv7 and the
// store clock, then persists it.
func (s *Store) Insert(ctx context.Context, draft domain.QuoteDraft) (*domain.Quote, error) {
	draft = draft.Normalize()
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	ctx, span := s.startSpan(ctx, "quotes.insert", "INSERT")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, s.fail(span, "generate id", err)
	}

	row := quoteRow{
		ID:        id.String(),
		Text:      draft.Text,
		Author:    draft.Author,
		CreatedAt: toMillis(s.now()),
	}

	_, err = s.db.NamedExecContext(ctx,
		`INSERT INTO quotes (id, text, author, created_at) VALUES (:id, :text, :author, :created_at)`,
		row,
	)
	if err != nil {
		return nil, s.fail(span, "insert", err)
	}

	logging.FromContext(ctx).Log(ctx, logging.LevelTrace, "quote inserted", slog.String("quote_id", row.ID))

	return row.toDomain(), nil
}

// UpdateByID trims and validates the draft and replaces text and author in
// one statement.
func (s *Store) UpdateByID(ctx context.Context, id string, draft domain.QuoteDraft) (*domain.Quote, error) {
	draft = draft.Normalize()
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	ctx, span := s.startSpan(ctx, "quotes.update", "UPDATE")
	defer span.End()

	var row quoteRow

	err := s.db.GetContext(ctx, &row,
		s.db.Rebind(`UPDATE quotes SET text = ?, author = ? WHERE id = ? RETURNING id, text, author, created_at`),
		draft.Text, draft.Author, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError(domain.EntityQuote, id)
	}

	if err != nil {
		return nil, s.fail(span, "update", err)
	}

	return row.toDomain(), nil
}

// DeleteByID removes the quote with id and reports whether it existed.
func (s *Store) DeleteByID(ctx context.Context, id string) (bool, error) {
	ctx, span := s.startSpan(ctx, "quotes.delete", "DELETE")
	defer span.End()

	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM quotes WHERE id = ?`), id)
	if err != nil {
		return false, s.fail(span, "delete", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, s.fail(span, "delete", err)
	}

	return n > 0, nil
}

func (s *Store) startSpan(ctx context.Context, name, operation string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", s.driver),
			attribute.String("db.operation", operation),
			attribute.String("db.sql.table", "quotes"),
		),
	)
}

// fail records err on the span and hides driver detail behind domain.ErrUnavailable.
func (s *Store) fail(span trace.Span, op string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, op+" failed")

	s.logger.Warn("quote store operation failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)

	return domain.NewUnavailableErrorWithCause(checkerName, op+" failed", err)
}
