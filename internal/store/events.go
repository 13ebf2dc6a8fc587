package store

import (
	"context"
	"fmt"

	"github.com/starford/harmoni/internal/models"
)

// EventsByYear returns the imported events dated in year, ordered by date and
// then by import order.
func (db *DB) EventsByYear(ctx context.Context, year int) ([]models.Event, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT date, title, location, agama
		FROM events
		WHERE date LIKE ?
		ORDER BY date, id
	`, fmt.Sprintf("%04d-%%", year))
	if err != nil {
		return nil, fmt.Errorf("store: events by year: %w", err)
	}
	defer rows.Close()

	out := []models.Event{}
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.Date, &e.Title, &e.Location, &e.Religion); err != nil {
			return nil, fmt.Errorf("store: scan event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ReplaceFileEvents records checksum for path and replaces every event that
// was imported from it.
func (db *DB) ReplaceFileEvents(ctx context.Context, path, checksum string, events []models.Event) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.ExecContext(ctx, `
		INSERT INTO calendar_files (path, checksum, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(path) DO UPDATE SET
			checksum   = excluded.checksum,
			updated_at = excluded.updated_at
	`, path, checksum)
	if err != nil {
		return fmt.Errorf("store: upsert calendar file: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE source = ?`, path); err != nil {
		return fmt.Errorf("store: clear events: %w", err)
	}
	if len(events) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO events (date, title, location, agama, source) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("store: prepare event insert: %w", err)
		}
		defer stmt.Close()
		for _, e := range events {
			if _, err := stmt.ExecContext(ctx, e.Date, e.Title, e.Location, string(e.Religion), path); err != nil {
				return fmt.Errorf("store: insert event: %w", err)
			}
		}
	}

	return tx.Commit()
}

// DeleteFileEvents forgets path and every event imported from it.
func (db *DB) DeleteFileEvents(ctx context.Context, path string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE source = ?`, path); err != nil {
		return fmt.Errorf("store: delete events: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM calendar_files WHERE path = ?`, path); err != nil {
		return fmt.Errorf("store: delete calendar file: %w", err)
	}
	return tx.Commit()
}

// AllFileChecksums returns the checksum of every imported calendar file.
func (db *DB) AllFileChecksums(ctx context.Context) (map[string]string, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT path, checksum FROM calendar_files`)
	if err != nil {
		return nil, fmt.Errorf("store: all checksums: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}
