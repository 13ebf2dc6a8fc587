// Package backup keeps timestamped snapshots of the site database.
package backup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// DefaultKeep is the number of snapshots kept when none is configured.
const DefaultKeep = 10

const (
	prefix   = "sites_backup_"
	suffix   = ".db"
	stampFmt = "20060102_150405"
)

// Snapshotter writes a consistent copy of a database to a new file.
type Snapshotter interface {
	BackupTo(ctx context.Context, path string) error
}

// Name returns the backup file name for t.
func Name(t time.Time) string {
	return prefix + t.Format(stampFmt) + suffix
}

// Run writes a snapshot into dir and prunes old ones so that at most keep
// remain. It returns the path of the new snapshot.
func Run(ctx context.Context, db Snapshotter, dir string, keep int, now time.Time, logger *slog.Logger) (string, error) {
	if keep < 1 {
		keep = DefaultKeep
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("backup: mkdir: %w", err)
	}
	path := filepath.Join(dir, Name(now))
	if err := db.BackupTo(ctx, path); err != nil {
		return "", err
	}
	logger.Info("backup: written", slog.String("path", path))

	removed, err := Prune(dir, keep)
	for _, p := range removed {
		logger.Debug("backup: pruned", slog.String("path", p))
	}
	return path, err
}

// List returns the backups in dir, oldest first.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("backup: read dir: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		out = append(out, e.Name())
	}
	// The timestamp format sorts lexically.
	slices.Sort(out)
	return out, nil
}

// Prune deletes the oldest backups in dir until at most keep remain and
// returns the removed paths.
func Prune(dir string, keep int) ([]string, error) {
	names, err := List(dir)
	if err != nil {
		return nil, err
	}
	var removed []string
	for len(names) > keep {
		p := filepath.Join(dir, names[0])
		if err := os.Remove(p); err != nil {
			return removed, fmt.Errorf("backup: remove %s: %w", p, err)
		}
		removed = append(removed, p)
		names = names[1:]
	}
	return removed, nil
}
