// Package store provides SQLite-backed persistence for sites and calendar events.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/harmoni/internal/models"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS sites (
	id                 TEXT PRIMARY KEY,
	nama               TEXT NOT NULL,
	alamat             TEXT,
	wilayah            TEXT,
	kecamatan          TEXT,
	kode_pos           TEXT,
	tipe               TEXT,
	agama              TEXT,
	jam_buka           TEXT,
	kapasitas          INTEGER,
	luas               TEXT,
	arsitek            TEXT,
	tahun_berdiri      INTEGER,
	is_heritage        INTEGER NOT NULL DEFAULT 0,
	heritage_code      TEXT,
	transport_terdekat TEXT,
	latitude           REAL,
	longitude          REAL,
	gambar_url         TEXT,
	deskripsi          TEXT
);

CREATE TABLE IF NOT EXISTS calendar_files (
	path       TEXT PRIMARY KEY,
	checksum   TEXT NOT NULL DEFAULT '',
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS events (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	date     TEXT NOT NULL,
	title    TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	agama    TEXT NOT NULL DEFAULT '',
	source   TEXT NOT NULL REFERENCES calendar_files(path) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);
CREATE INDEX IF NOT EXISTS idx_events_source ON events(source);
`

// Store defines the persistence operations used by the service layer.
// Consumers depend on this interface rather than *DB so they can be tested
// with fakes.
type Store interface {
	ListSites(ctx context.Context) ([]models.Site, error)
	GetSite(ctx context.Context, id string) (*models.Site, error)
	CreateSite(ctx context.Context, s *models.Site) error
	UpdateSite(ctx context.Context, s *models.Site) error
	DeleteSite(ctx context.Context, id string) error
	Locations(ctx context.Context) ([]string, error)
	Religions(ctx context.Context) ([]models.Religion, error)
	Stats(ctx context.Context) (models.Stats, error)
	EventsByYear(ctx context.Context, year int) ([]models.Event, error)
	ReplaceFileEvents(ctx context.Context, path, checksum string, events []models.Event) error
	DeleteFileEvents(ctx context.Context, path string) error
	AllFileChecksums(ctx context.Context) (map[string]string, error)
	Close() error
}

var _ Store = (*DB)(nil)

// DB wraps a sql.DB with the directory queries.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &DB{conn: conn, path: dsn}, nil
}

// Path returns the database file the store was opened from.
func (db *DB) Path() string { return db.path }

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// BackupTo writes a consistent snapshot of the database to path, which must
// not exist yet.
func (db *DB) BackupTo(ctx context.Context, path string) error {
	if _, err := db.conn.ExecContext(ctx, `VACUUM INTO ?`, path); err != nil {
		return fmt.Errorf("store: backup to %s: %w", path, err)
	}
	return nil
}
