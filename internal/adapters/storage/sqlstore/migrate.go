package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	migrationTable = "schema_migrations"

	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

// applyMigrations runs every *.sql file in fsys at most once, in lexical order.
// Each file runs in its own transaction together with its bookkeeping row.
func applyMigrations(ctx context.Context, db *sqlx.DB, fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}

	sort.Strings(files)

	_, err = db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+migrationTable+` (
    name       TEXT PRIMARY KEY,
    applied_at BIGINT NOT NULL
)`)
	if err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, name := range files {
		if err := applyMigration(ctx, db, fsys, name); err != nil {
			return err
		}
	}

	return nil
}

func applyMigration(ctx context.Context, db *sqlx.DB, fsys fs.FS, name string) error {
	applied, err := isApplied(ctx, db, name)
	if err != nil {
		return fmt.Errorf("check migration %s: %w", name, err)
	}

	if applied {
		return nil
	}

	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", name, err)
	}

	up := extractUp(string(content))
	if strings.TrimSpace(up) == "" {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", name, err)
	}

	if _, err := tx.ExecContext(ctx, up); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("exec migration %s: %w", name, err)
	}

	_, err = tx.ExecContext(ctx,
		tx.Rebind(`INSERT INTO `+migrationTable+` (name, applied_at) VALUES (?, ?)`),
		name, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", name, err)
	}

	return nil
}

// extractUp returns the statements between the Up and Down markers.
// A file without markers is treated as entirely Up.
func extractUp(content string) string {
	upIdx := strings.Index(content, upMarker)
	if upIdx == -1 {
		return content
	}

	body := content[upIdx+len(upMarker):]
	if downIdx := strings.Index(body, downMarker); downIdx != -1 {
		body = body[:downIdx]
	}

	return body
}

func isApplied(ctx context.Context, db *sqlx.DB, name string) (bool, error) {
	var found int

	err := db.GetContext(ctx, &found, db.Rebind(`SELECT 1 FROM `+migrationTable+` WHERE name = ?`), name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}
