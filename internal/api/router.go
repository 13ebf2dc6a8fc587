package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/harmoni/internal/siteservice"
)

// NewRouter creates a chi router with all API routes mounted.
// Read routes are public; the admin group is guarded by AuthMiddleware(auth).
// sseHandler, if non-nil, is mounted at GET /events.
func NewRouter(svc *siteservice.Service, auth AuthConfig, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()

	// Directory.
	r.Get("/sites", h.ListSites)
	r.Get("/site/{id}", h.GetSite)
	r.Get("/site/{id}/view", h.GetSiteView)
	r.Get("/locations", h.Locations)
	r.Get("/religions", h.Religions)
	r.Get("/stats", h.Stats)

	// Views.
	r.Get("/explore", h.Explore)
	r.Get("/map", h.Map)

	// Calendar. The static segments take precedence over {year}.
	r.Get("/calendar/upcoming", h.Upcoming)
	r.Get("/calendar/day/{date}", h.CalendarDay)
	r.Get("/calendar/{year}", h.CalendarYear)
	r.Get("/calendar/{year}/{month}", h.CalendarMonth)

	r.Route("/admin", func(r chi.Router) {
		r.Use(AuthMiddleware(auth))
		r.Post("/sites", h.CreateSite)
		r.Put("/sites/{id}", h.UpdateSite)
		r.Delete("/sites/{id}", h.DeleteSite)
	})

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
