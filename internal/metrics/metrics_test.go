package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/site/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/site/"+id, nil))
	}

	got := testutil.ToFloat64(m.reqTotal.WithLabelValues(http.MethodGet, "/api/site/{id}", "404"))
	if got != 3 {
		t.Errorf("requests = %v, want 3", got)
	}
}

func TestCountersAndHandler(t *testing.T) {
	m := New()
	m.SiteChanged("created")
	m.SiteChanged("created")
	m.CalendarChanged("deleted")
	m.BackupDone(nil)
	m.BackupDone(errors.New("disk full"))
	m.ObserveSSEClients(func() int { return 2 })

	if got := testutil.ToFloat64(m.siteChanges.WithLabelValues("created")); got != 2 {
		t.Errorf("site changes = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.backups.WithLabelValues("error")); got != 1 {
		t.Errorf("failed backups = %v, want 1", got)
	}

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	for _, want := range []string{
		"harmoni_sse_clients 2",
		`harmoni_calendar_file_changes_total{kind="deleted"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
