// Package auditdb keeps a relational audit trail of every explanation the
// bot posts.
package auditdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // sqlite driver

	"github.com/LeJamon/xrpl-bot/internal/bot"
)

const schema = `
CREATE TABLE IF NOT EXISTS posted_comments (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	delivery_id TEXT NOT NULL,
	repo        TEXT NOT NULL,
	issue       INTEGER NOT NULL,
	tx_hash     TEXT NOT NULL,
	tx_type     TEXT NOT NULL,
	posted_at   TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_posted_comments_hash ON posted_comments(tx_hash);
`

// DB is the sqlite-backed audit log.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the audit database at the given path and ensures
// the schema exists.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database at %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create audit schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Record appends one posted-comment record.
func (d *DB) Record(ctx context.Context, rec bot.AuditRecord) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO posted_comments (delivery_id, repo, issue, tx_hash, tx_type, posted_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.DeliveryID, rec.Repo, rec.Issue, rec.TxHash, rec.TxType, rec.PostedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// Recent returns the most recently posted records, newest first.
func (d *DB) Recent(ctx context.Context, limit int) ([]bot.AuditRecord, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT delivery_id, repo, issue, tx_hash, tx_type, posted_at
		 FROM posted_comments ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	defer rows.Close()

	var records []bot.AuditRecord
	for rows.Next() {
		var rec bot.AuditRecord
		var postedAt string
		if err := rows.Scan(&rec.DeliveryID, &rec.Repo, &rec.Issue, &rec.TxHash, &rec.TxType, &postedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}
		rec.PostedAt, _ = time.Parse(time.RFC3339, postedAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.db.Close()
}
