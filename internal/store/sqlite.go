package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/artem20051205/bady/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database. Each user
// record is one row holding a self-describing JSON document, so the schema
// tolerates field growth across versions without migrations per field.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Reasonable pooling for SQLite; it's a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// Get loads and decodes a user record, or returns ErrNotFound.
func (r *SQLiteRepo) Get(ctx context.Context, chatID int64) (*domain.UserRecord, error) {
	var doc string
	err := r.db.QueryRowContext(ctx, `
		SELECT record FROM users WHERE chat_id = ?`, chatID,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec domain.UserRecord
	if err := json.Unmarshal([]byte(doc), &rec); err != nil {
		return nil, fmt.Errorf("decode record %d: %w", chatID, err)
	}
	rec.ChatID = chatID
	return &rec, nil
}

// Put encodes and upserts a user record, whole-document, last-write-wins.
func (r *SQLiteRepo) Put(ctx context.Context, rec *domain.UserRecord) error {
	if rec == nil {
		return errors.New("nil record")
	}
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record %d: %w", rec.ChatID, err)
	}

	now := time.Now().UTC().Unix()
	created := rec.CreatedAt.UTC().Unix()
	if created <= 0 {
		created = now
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (chat_id, record, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			record     = excluded.record,
			updated_at = excluded.updated_at`,
		rec.ChatID, string(doc), created, now,
	)
	return err
}

// ListIDs returns every stored chat id. The scheduler iterates this snapshot
// so a record deleted mid-tick cannot invalidate the iteration.
func (r *SQLiteRepo) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT chat_id FROM users ORDER BY chat_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Delete removes a user record. Deleting a missing record is not an error.
func (r *SQLiteRepo) Delete(ctx context.Context, chatID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE chat_id = ?`, chatID)
	return err
}
