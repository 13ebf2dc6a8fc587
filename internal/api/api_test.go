package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/starford/harmoni/internal/auth"
	"github.com/starford/harmoni/internal/calendar"
	"github.com/starford/harmoni/internal/explore"
	"github.com/starford/harmoni/internal/format"
	"github.com/starford/harmoni/internal/models"
	"github.com/starford/harmoni/internal/siteservice"
	"github.com/starford/harmoni/internal/testutil"
)

// testEnv sets up a seeded SQLite DB, service, and router for testing.
// "Today" is pinned to 2026-02-20.
func testEnv(t *testing.T, ac AuthConfig) http.Handler {
	t.Helper()
	db := testutil.SeededDB(t)
	svc := siteservice.New(db, siteservice.WithClock(func() time.Time {
		return time.Date(2026, time.February, 20, 9, 0, 0, 0, time.UTC)
	}))
	return NewRouter(svc, ac, nil)
}

func do(t *testing.T, h http.Handler, method, target string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, rd)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func disabled() AuthConfig { return AuthConfig{Mode: AuthDisabled} }

func TestListAndGetSite(t *testing.T) {
	router := testEnv(t, disabled())

	w := do(t, router, http.MethodGet, "/sites", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	sites := decode[[]map[string]any](t, w)
	if len(sites) != 6 {
		t.Fatalf("sites = %d, want 6", len(sites))
	}
	if _, ok := sites[0]["tahun"]; !ok {
		t.Errorf("list item missing tahun: %v", sites[0])
	}

	w = do(t, router, http.MethodGet, "/site/GerejaKatedral", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	site := decode[models.SiteDetail](t, w)
	if site.Founded == nil || *site.Founded != 1901 {
		t.Errorf("tahun_berdiri = %v, want 1901", site.Founded)
	}

	w = do(t, router, http.MethodGet, "/site/Nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing site status = %d, want 404", w.Code)
	}
	if e := decode[errResponse](t, w); e.Error != "not found" {
		t.Errorf("error = %q", e.Error)
	}
}

func TestSiteView(t *testing.T) {
	router := testEnv(t, disabled())

	w := do(t, router, http.MethodGet, "/site/MasjidIstiqlal/view", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("view status = %d", w.Code)
	}
	v := decode[format.DetailView](t, w)
	if v.Capacity != "200.000" {
		t.Errorf("kapasitas = %q, want 200.000", v.Capacity)
	}
	if !v.Found {
		t.Error("found = false")
	}

	w = do(t, router, http.MethodGet, "/site/Nope/view", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing view status = %d, want 404", w.Code)
	}
}

func TestDirectoryLookups(t *testing.T) {
	router := testEnv(t, disabled())

	st := decode[models.Stats](t, do(t, router, http.MethodGet, "/stats", nil))
	if st.TotalSites != 6 || st.TotalHeritage != 4 {
		t.Errorf("stats = %+v, want 6/4", st)
	}

	locs := decode[[]string](t, do(t, router, http.MethodGet, "/locations", nil))
	if len(locs) == 0 {
		t.Error("no locations")
	}

	rels := decode[[]models.Religion](t, do(t, router, http.MethodGet, "/religions", nil))
	if len(rels) != 5 {
		t.Errorf("religions = %v, want 5", rels)
	}
}

func TestExploreAndMap(t *testing.T) {
	router := testEnv(t, disabled())

	p := decode[explore.ListPage](t, do(t, router, http.MethodGet, "/explore?tipe=Mosque&sort=tahun-desc", nil))
	if p.Total != 2 {
		t.Fatalf("mosques = %d, want 2", p.Total)
	}
	if p.Items[0].ID != "MasjidIstiqlal" {
		t.Errorf("first = %q, want MasjidIstiqlal", p.Items[0].ID)
	}

	p = decode[explore.ListPage](t, do(t, router, http.MethodGet, "/explore?q=zzz", nil))
	if !p.Empty || p.Total != 0 {
		t.Errorf("expected empty result, got %+v", p)
	}

	m := decode[explore.MapView](t, do(t, router, http.MethodGet, "/map?agama=Islam&agama=Katolik", nil))
	if m.Total != 3 {
		t.Errorf("markers = %d, want 3", m.Total)
	}

	m = decode[explore.MapView](t, do(t, router, http.MethodGet, "/map?agama=Islam,Hindu&heritage=true", nil))
	if m.Total != 1 {
		t.Errorf("heritage markers = %d, want 1", m.Total)
	}
}

func TestCalendarRoutes(t *testing.T) {
	router := testEnv(t, disabled())

	w := do(t, router, http.MethodGet, "/calendar/2026", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("year status = %d", w.Code)
	}
	y := decode[CalendarYearResponse](t, w)
	if !y.Success || y.Year != 2026 || len(y.Events) != 8 {
		t.Errorf("year = %+v", y)
	}

	w = do(t, router, http.MethodGet, "/calendar/2026/2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("month status = %d", w.Code)
	}
	m := decode[CalendarMonthResponse](t, w)
	if len(m.Grid.Days) != 28 || m.Grid.Leading != 0 {
		t.Errorf("grid = %d days, leading %d", len(m.Grid.Days), m.Grid.Leading)
	}

	for _, target := range []string{"/calendar/2026/13", "/calendar/abc", "/calendar/0", "/calendar/day/19-03-2026"} {
		if w := do(t, router, http.MethodGet, target, nil); w.Code != http.StatusBadRequest {
			t.Errorf("%s status = %d, want 400", target, w.Code)
		}
	}

	d := decode[calendar.DayDetail](t, do(t, router, http.MethodGet, "/calendar/day/2026-03-19", nil))
	if len(d.Events) != 1 {
		t.Errorf("day events = %d, want 1", len(d.Events))
	}

	up := decode[calendar.UpcomingPage](t, do(t, router, http.MethodGet, "/calendar/upcoming", nil))
	if len(up.Events) == 0 || up.Events[0].Date != "2026-03-19" {
		t.Errorf("upcoming = %+v", up.Events)
	}
	if !up.PrevDisabled {
		t.Error("prev should be disabled on page 0")
	}
}

func newSite() map[string]any {
	return map[string]any{
		"id":            "GerejaImmanuel",
		"nama":          "GEREJA IMMANUEL",
		"wilayah":       "JakartaPusat",
		"tipe":          "Church",
		"agama":         "KristenProtestan",
		"tahun_berdiri": 1839,
		"koordinat":     "-6.1766, 106.8305",
	}
}

func TestAdminCRUD(t *testing.T) {
	router := testEnv(t, disabled())

	w := do(t, router, http.MethodPost, "/admin/sites", newSite())
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	created := decode[models.SiteDetail](t, w)
	if created.Latitude == nil || *created.Latitude != -6.1766 || *created.Longitude != 106.8305 {
		t.Errorf("koordinat not applied: %v %v", created.Latitude, created.Longitude)
	}

	if w := do(t, router, http.MethodPost, "/admin/sites", newSite()); w.Code != http.StatusConflict {
		t.Errorf("duplicate create = %d, want 409", w.Code)
	}

	upd := newSite()
	upd["id"] = "ignored"
	upd["koordinat"] = ""
	upd["is_heritage"] = true
	w = do(t, router, http.MethodPut, "/admin/sites/GerejaImmanuel", upd)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", w.Code, w.Body.String())
	}
	updated := decode[models.SiteDetail](t, w)
	if updated.ID != "GerejaImmanuel" || !updated.Heritage || updated.Latitude != nil {
		t.Errorf("updated = %+v", updated)
	}

	if w := do(t, router, http.MethodPut, "/admin/sites/Nope", newSite()); w.Code != http.StatusNotFound {
		t.Errorf("update missing = %d, want 404", w.Code)
	}

	if w := do(t, router, http.MethodDelete, "/admin/sites/GerejaImmanuel", nil); w.Code != http.StatusNoContent {
		t.Errorf("delete = %d, want 204", w.Code)
	}
	if w := do(t, router, http.MethodDelete, "/admin/sites/GerejaImmanuel", nil); w.Code != http.StatusNotFound {
		t.Errorf("second delete = %d, want 404", w.Code)
	}
}

func TestAdminValidation(t *testing.T) {
	router := testEnv(t, disabled())

	cases := map[string]func(map[string]any){
		"missing name":      func(m map[string]any) { delete(m, "nama") },
		"unknown type":      func(m map[string]any) { m["tipe"] = "Castle" },
		"unknown agama":     func(m map[string]any) { m["agama"] = "Jedi" },
		"bad koordinat":     func(m map[string]any) { m["koordinat"] = "somewhere" },
		"bad id":            func(m map[string]any) { m["id"] = "has space" },
		"negative capacity": func(m map[string]any) { m["kapasitas"] = -5 },
		"year out of range": func(m map[string]any) { m["tahun_berdiri"] = 12000 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			body := newSite()
			mutate(body)
			if w := do(t, router, http.MethodPost, "/admin/sites", body); w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400, body = %s", w.Code, w.Body.String())
			}
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/sites", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid JSON = %d, want 400", w.Code)
	}
}

func TestAdminTokenAuth(t *testing.T) {
	router := testEnv(t, AuthConfig{Mode: AuthToken, Token: "secret"})

	if w := do(t, router, http.MethodPost, "/admin/sites", newSite()); w.Code != http.StatusUnauthorized {
		t.Errorf("no token = %d, want 401", w.Code)
	}
	if w := do(t, router, http.MethodPost, "/admin/sites", newSite(), "Authorization", "Bearer wrong"); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token = %d, want 401", w.Code)
	}
	if w := do(t, router, http.MethodPost, "/admin/sites", newSite(), "Authorization", "Bearer secret"); w.Code != http.StatusCreated {
		t.Errorf("valid token = %d, want 201", w.Code)
	}

	// Reads stay public.
	if w := do(t, router, http.MethodGet, "/sites", nil); w.Code != http.StatusOK {
		t.Errorf("public read = %d, want 200", w.Code)
	}
}

func TestAdminBasicAuth(t *testing.T) {
	hash, err := auth.HashPassword("rahasia")
	if err != nil {
		t.Fatal(err)
	}
	router := testEnv(t, AuthConfig{Mode: AuthBasic, Username: "admin", PasswordHash: hash})

	basic := func(user, pass string) *httptest.ResponseRecorder {
		b, _ := json.Marshal(newSite())
		req := httptest.NewRequest(http.MethodDelete, "/admin/sites/GerejaSion", bytes.NewReader(b))
		req.SetBasicAuth(user, pass)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := basic("admin", "salah")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password = %d, want 401", w.Code)
	}
	if !strings.HasPrefix(w.Header().Get("WWW-Authenticate"), "Basic ") {
		t.Errorf("missing WWW-Authenticate challenge")
	}
	if w := basic("root", "rahasia"); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong user = %d, want 401", w.Code)
	}
	if w := basic("admin", "rahasia"); w.Code != http.StatusNoContent {
		t.Errorf("valid credentials = %d, want 204", w.Code)
	}
}

func TestEventsRoute(t *testing.T) {
	db := testutil.SeededDB(t)
	sse := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
	})
	router := NewRouter(siteservice.New(db), disabled(), sse)

	w := do(t, router, http.MethodGet, "/events", nil)
	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}
}
