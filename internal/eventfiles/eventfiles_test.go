package eventfiles

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/harmoni/internal/models"
	"github.com/starford/harmoni/internal/testutil"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

const idulFitri = `events:
  - date: "2026-03-19"
    title: Idul Fitri 1447 H
    location: Masjid Istiqlal
    agama: Islam
  - date: "2026-02-17"
    title: Tahun Baru Imlek 2577
    location: Vihara Sin Tek Bio
    agama: Konghucu
`

const waisak = `events:
  - date: "2026-05-31"
    title: Hari Raya Waisak 2570
    location: Vihara Sin Tek Bio
    agama: Buddha
`

func newDir(t *testing.T) (string, *Dir) {
	t.Helper()
	root := t.TempDir()
	d, err := NewDir(root)
	require.NoError(t, err)
	return root, d
}

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func TestParse(t *testing.T) {
	events, err := Parse([]byte(idulFitri))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.Event{Date: "2026-03-19", Title: "Idul Fitri 1447 H", Location: "Masjid Istiqlal", Religion: models.Islam}, events[0])

	events, err = Parse([]byte("events: []\n"))
	require.NoError(t, err)
	assert.Empty(t, events)

	bad := []string{
		"events: [",
		"events:\n  - date: \"19-03-2026\"\n    title: x\n    agama: Islam\n",
		"events:\n  - date: \"2026-03-19\"\n    agama: Islam\n",
		"events:\n  - date: \"2026-03-19\"\n    title: x\n    agama: Jedi\n",
	}
	for _, b := range bad {
		_, err := Parse([]byte(b))
		assert.Error(t, err, b)
	}
}

func TestDirListAndTraversal(t *testing.T) {
	root, d := newDir(t)
	require.NoError(t, d.Write("2026.yaml", []byte(idulFitri)))
	require.NoError(t, d.Write("extra/2026-waisak.yml", []byte(waisak)))
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("not yaml"), 0o644))

	metas, err := d.List()
	require.NoError(t, err)
	assert.Len(t, metas, 2)
	for _, m := range metas {
		assert.Len(t, m.Checksum, 64)
	}

	for _, p := range []string{"../../etc/passwd", "../outside.yaml", "/etc/shadow"} {
		_, err := d.Read(p)
		assert.Error(t, err, p)
		assert.Error(t, d.Write(p, []byte("x")), p)
	}

	matches, _ := filepath.Glob(filepath.Join(root, ".harmoni-tmp-*"))
	assert.Empty(t, matches)
}

func TestNewDirRejectsMissingAndFiles(t *testing.T) {
	_, err := NewDir(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	f := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(f, nil, 0o644))
	_, err = NewDir(f)
	assert.Error(t, err)
}

func TestSync(t *testing.T) {
	db := testutil.TestDB(t)
	_, d := newDir(t)
	ctx := context.Background()

	require.NoError(t, d.Write("2026.yaml", []byte(idulFitri)))
	require.NoError(t, d.Write("waisak.yaml", []byte(waisak)))
	require.NoError(t, d.Write("broken.yaml", []byte("events: [")))

	changed, err := Sync(ctx, db, d, quiet)
	require.NoError(t, err)
	assert.True(t, changed)

	events, err := db.EventsByYear(ctx, 2026)
	require.NoError(t, err)
	assert.Len(t, events, 3)

	changed, err = Sync(ctx, db, d, quiet)
	require.NoError(t, err)
	assert.False(t, changed, "unchanged checksums are skipped")

	require.NoError(t, os.Remove(filepath.Join(d.Root(), "waisak.yaml")))
	changed, err = Sync(ctx, db, d, quiet)
	require.NoError(t, err)
	assert.True(t, changed)

	events, err = db.EventsByYear(ctx, 2026)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestWatcherImportsAndDeletes(t *testing.T) {
	db := testutil.TestDB(t)
	root, d := newDir(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var seen []string
	go Watch(ctx, db, d, quiet, func(kind, path string) {
		mu.Lock()
		seen = append(seen, kind+":"+path)
		mu.Unlock()
	})
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(root, "2026.yaml"), []byte(idulFitri), 0o644))

	count := func() int {
		events, _ := db.EventsByYear(context.Background(), 2026)
		return len(events)
	}
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool { return count() == 2 },
		"new calendar file not imported by watcher")

	require.NoError(t, os.Remove(filepath.Join(root, "2026.yaml")))
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool { return count() == 0 },
		"removed calendar file still imported")

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, seen, "deleted:2026.yaml")
}

func TestWatcherRenameReconciles(t *testing.T) {
	db := testutil.TestDB(t)
	root, d := newDir(t)
	require.NoError(t, d.Write("old.yaml", []byte(waisak)))
	_, err := Sync(context.Background(), db, d, quiet)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Watch(ctx, db, d, quiet, nil)
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.Rename(filepath.Join(root, "old.yaml"), filepath.Join(root, "renamed.yaml")))

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		sums, _ := db.AllFileChecksums(context.Background())
		_, oldOK := sums["old.yaml"]
		_, newOK := sums["renamed.yaml"]
		return !oldOK && newOK
	}, "rename reconciliation failed")
}
