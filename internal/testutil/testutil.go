// Package testutil provides shared test helpers for temporary databases.
package testutil

import (
	"os"
	"testing"

	"github.com/starford/harmoni/internal/store"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *store.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "harmoni-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// SeededDB creates a temporary database holding store.SeedSites.
func SeededDB(t *testing.T) *store.DB {
	t.Helper()
	db := TestDB(t)
	if _, err := db.Seed(t.Context(), store.SeedSites); err != nil {
		t.Fatal(err)
	}
	return db
}
