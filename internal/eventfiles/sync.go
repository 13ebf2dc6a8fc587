package eventfiles

import (
	"context"
	"log/slog"

	"github.com/starford/harmoni/internal/models"
)

// Index is the part of the store the calendar import writes to.
type Index interface {
	ReplaceFileEvents(ctx context.Context, path, checksum string, events []models.Event) error
	DeleteFileEvents(ctx context.Context, path string) error
	AllFileChecksums(ctx context.Context) (map[string]string, error)
}

// Sync walks the directory and brings the index up to date:
//   - new/changed files are parsed and imported
//   - files removed from disk have their events deleted
//
// It reports whether anything changed.
func Sync(ctx context.Context, idx Index, dir *Dir, logger *slog.Logger) (bool, error) {
	metas, err := dir.List()
	if err != nil {
		return false, err
	}
	checksums, err := idx.AllFileChecksums(ctx)
	if err != nil {
		return false, err
	}

	changed := false
	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}
		if checksums[m.Path] == m.Checksum {
			continue
		}
		if err := importFile(ctx, idx, dir, m.Path); err != nil {
			logger.Warn("sync: import failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		logger.Debug("sync: imported", slog.String("path", m.Path))
		changed = true
	}

	for p := range checksums {
		if _, ok := disk[p]; ok {
			continue
		}
		if err := idx.DeleteFileEvents(ctx, p); err != nil {
			logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			continue
		}
		logger.Debug("sync: removed stale", slog.String("path", p))
		changed = true
	}
	return changed, nil
}

// importFile parses the file at path and replaces its events in the index.
func importFile(ctx context.Context, idx Index, dir *Dir, path string) error {
	data, err := dir.Read(path)
	if err != nil {
		return err
	}
	events, err := Parse(data)
	if err != nil {
		return err
	}
	return idx.ReplaceFileEvents(ctx, path, Sum(data), events)
}
