// Package exportlog journals every document export attempt for operators.
package exportlog

import (
	"context"
	"database/sql"
	"fmt"
)

// Status is the outcome of an export attempt.
type Status string

const (
	StatusOK       Status = "ok"
	StatusFailed   Status = "failed"
	StatusNotReady Status = "not_ready"
)

// Entry is one journaled export attempt.
type Entry struct {
	ID          int64
	CreatedAt   string
	QuoteRef    string
	ClientName  string
	Format      string
	Filename    string
	FinalAmount string
	Status      Status
	Error       string
}

// Journal reads and writes the export_log table.
type Journal struct {
	db *sql.DB
}

// New returns a journal backed by db.
func New(db *sql.DB) *Journal {
	return &Journal{db: db}
}

// Record appends e to the journal. ID and CreatedAt are assigned by the database.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO export_log (quote_ref, client_name, format, filename, final_amount, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.QuoteRef, e.ClientName, e.Format, e.Filename, e.FinalAmount, string(e.Status), e.Error)
	if err != nil {
		return fmt.Errorf("insert export_log: %w", err)
	}
	return nil
}

// List returns journal entries newest first. A non-empty query filters by
// quote reference, client name or filename.
func (j *Journal) List(ctx context.Context, query string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	search := "%" + query + "%"
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, created_at, quote_ref, client_name, format, filename, final_amount, status, error
		FROM export_log
		WHERE (? = '' OR quote_ref LIKE ? OR client_name LIKE ? OR filename LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
		LIMIT ?
	`, query, search, search, search, limit)
	if err != nil {
		return nil, fmt.Errorf("query export_log: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		var status string
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.QuoteRef, &e.ClientName, &e.Format, &e.Filename, &e.FinalAmount, &status, &e.Error); err != nil {
			return nil, fmt.Errorf("scan export_log: %w", err)
		}
		e.Status = Status(status)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate export_log: %w", err)
	}

	return entries, nil
}
