// Package eventfiles keeps the calendar events of a directory of YAML files
// imported into the store.
package eventfiles

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileMeta describes one calendar file on disk.
type FileMeta struct {
	Path      string
	Checksum  string
	UpdatedAt time.Time
}

// Dir is a calendar data directory on the local file system.
type Dir struct {
	root string // absolute path
}

// NewDir opens the directory at root, which must already exist.
func NewDir(root string) (*Dir, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("eventfiles: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("eventfiles: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("eventfiles: root is not a directory: %s", abs)
	}
	return &Dir{root: abs}, nil
}

// Root returns the absolute directory path.
func (d *Dir) Root() string { return d.root }

// IsCalendarFile reports whether name has a YAML extension.
func IsCalendarFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// safePath resolves rel against the root and rejects anything that escapes it.
func (d *Dir) safePath(rel string) (string, error) {
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("eventfiles: absolute paths not allowed: %s", rel)
	}
	abs := filepath.Join(d.root, cleaned)
	if !strings.HasPrefix(abs, d.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("eventfiles: path escapes root: %s", rel)
	}
	return abs, nil
}

// List returns metadata for every calendar file under the root.
func (d *Dir) List() ([]FileMeta, error) {
	var out []FileMeta
	err := filepath.WalkDir(d.root, func(p string, e fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if e.IsDir() || !IsCalendarFile(e.Name()) || strings.HasPrefix(e.Name(), ".") {
			return nil
		}
		info, err := e.Info()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(d.root, p)
		out = append(out, FileMeta{Path: rel, Checksum: Sum(data), UpdatedAt: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("eventfiles: list: %w", err)
	}
	return out, nil
}

// Read returns the raw bytes of the file at rel.
func (d *Dir) Read(rel string) ([]byte, error) {
	abs, err := d.safePath(rel)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("eventfiles: read %s: %w", rel, err)
	}
	return data, nil
}

// Write atomically replaces the file at rel: temp file, fsync, rename.
func (d *Dir) Write(rel string, content []byte) error {
	abs, err := d.safePath(rel)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("eventfiles: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".harmoni-tmp-*")
	if err != nil {
		return fmt.Errorf("eventfiles: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("eventfiles: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("eventfiles: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("eventfiles: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("eventfiles: rename: %w", err)
	}
	success = true
	return nil
}

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
