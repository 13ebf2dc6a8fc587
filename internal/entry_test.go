package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/starford/harmoni/internal/backup"
	"github.com/starford/harmoni/internal/metrics"
	"github.com/starford/harmoni/internal/sse"
	"github.com/starford/harmoni/internal/testutil"
)

func testHandler(t *testing.T, cfg *Config) http.Handler {
	t.Helper()
	db := testutil.SeededDB(t)
	broker := sse.NewBroker(cfg.SSE.StatsThrottle)
	t.Cleanup(broker.Close)
	m := metrics.New()
	app := &application{config: cfg, now: time.Now}
	svc := newService(app, db, changePublisher{broker: broker, metrics: m}, newLogger(os.Stderr, cfg.App.LogLevel))
	return newHTTPHandler(cfg, svc, db, broker, m)
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthEndpoints(t *testing.T) {
	h := testHandler(t, NewDefaultConfig())

	for _, path := range []string{"/health/live", "/health/ready"} {
		w := get(h, path)
		if w.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, w.Code)
		}
		if body := strings.TrimSpace(w.Body.String()); body != `{"status":"ok"}` {
			t.Errorf("%s body = %s", path, body)
		}
	}
}

func TestAPIMountedAndMetricsRecorded(t *testing.T) {
	h := testHandler(t, NewDefaultConfig())

	if w := get(h, "/api/stats"); w.Code != http.StatusOK {
		t.Fatalf("/api/stats status = %d", w.Code)
	}
	w := get(h, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `route="/api/stats"`) {
		t.Errorf("request metric missing:\n%s", w.Body.String())
	}
}

func TestMetricsDisabled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Metrics.Enabled = false
	h := testHandler(t, cfg)
	if w := get(h, "/metrics"); w.Code != http.StatusNotFound {
		t.Errorf("/metrics status = %d, want 404", w.Code)
	}
}

func TestAdminRoutesUseConfiguredAuth(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth = AuthConfig{Mode: AuthModeToken, Token: "secret"}
	h := testHandler(t, cfg)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/sites/GerejaSion", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestBackupCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := NewDefaultConfig()
	cfg.SQLite.Path = filepath.Join(dir, "sites.db")
	cfg.Backup.Dir = filepath.Join(dir, "backups")
	cfg.Backup.Keep = 1

	stamp := time.Date(2026, time.February, 20, 8, 30, 0, 0, time.UTC)
	path, err := Backup(context.Background(), WithConfig(cfg), WithClock(func() time.Time { return stamp }))
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	if filepath.Base(path) != backup.Name(stamp) {
		t.Errorf("path = %s", path)
	}

	_, err = Backup(context.Background(), WithConfig(cfg), WithClock(func() time.Time { return stamp.Add(time.Minute) }))
	if err != nil {
		t.Fatalf("second backup: %v", err)
	}
	files, err := backup.List(cfg.Backup.Dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Errorf("kept %d backups, want 1", len(files))
	}
}

func TestRunRequiresConfig(t *testing.T) {
	if err := Run(context.Background()); err == nil {
		t.Fatal("expected error without config")
	}
}
