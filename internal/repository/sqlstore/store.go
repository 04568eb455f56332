// Package sqlstore is the embedded SQLite backend of the repository
// interfaces. It is used for single-node deployments, the CLI and tests.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"riskwatch/internal/model"
	"riskwatch/internal/repository"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite handle shared by all repositories
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the database at path, applies migrations and
// returns the repository bundle. Use ":memory:" for an ephemeral store.
func Open(ctx context.Context, path string) (*repository.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database at %q: %w", path, err)
	}
	// Limit SQLite to a single open connection to avoid "database is locked"
	// errors; it also keeps a :memory: database alive.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}
	if _, _, err := Migrate(db, -1); err != nil {
		_ = db.Close()
		return nil, err
	}

	d := &DB{db: db}
	return &repository.Store{
		Students:    &studentRepo{d},
		Assessments: &assessmentRepo{d},
		Journals:    &journalRepo{d},
		Users:       &userRepo{d},
		Audit:       &auditRepo{d},
		Close:       func(context.Context) error { return db.Close() },
	}, nil
}

// withTx commits when fn succeeds and rolls back otherwise
func (d *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func insertAudit(ctx context.Context, tx *sql.Tx, a *model.AuditLog) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO audit_logs (id, user_id, action, subject_id, timestamp) VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.Action, a.SubjectID, toUnix(a.Timestamp))
	return err
}

func toUnix(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromUnix(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
