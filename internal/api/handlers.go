package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/starford/harmoni/internal/explore"
	"github.com/starford/harmoni/internal/models"
	"github.com/starford/harmoni/internal/siteservice"
)

const maxBodyBytes = 1 << 20

// Handler holds API route handlers.
type Handler struct {
	svc *siteservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *siteservice.Service) *Handler {
	return &Handler{svc: svc}
}

// criteriaFromQuery reads the explore and map filters. agama may be repeated
// or comma separated; heritage accepts "1" and "true".
func criteriaFromQuery(r *http.Request) explore.Criteria {
	q := r.URL.Query()
	c := explore.Criteria{
		Type:   models.PlaceType(q.Get("tipe")),
		Region: q.Get("wilayah"),
		Query:  q.Get("q"),
		Sort:   explore.SortKey(q.Get("sort")),
	}
	for _, v := range q["agama"] {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				c.Religions = append(c.Religions, models.Religion(name))
			}
		}
	}
	if h, err := strconv.ParseBool(q.Get("heritage")); err == nil {
		c.Heritage = h
	}
	return c
}

// ListSites handles GET /api/sites.
//
//	@Summary		List every site ordered by name
//	@Tags			sites
//	@Produce		json
//	@Success		200	{array}	models.Site
//	@Router			/sites [get]
func (h *Handler) ListSites(w http.ResponseWriter, r *http.Request) {
	sites, err := h.svc.Sites(r.Context())
	if err != nil {
		writeServiceError(w, "list sites", err)
		return
	}
	writeJSON(w, http.StatusOK, sites)
}

// GetSite handles GET /api/site/{id}.
//
//	@Summary		Get a single site
//	@Tags			sites
//	@Produce		json
//	@Param			id	path		string	true	"Site ID"
//	@Success		200	{object}	SiteDetail
//	@Failure		404	{object}	errResponse
//	@Router			/site/{id} [get]
func (h *Handler) GetSite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	site, err := h.svc.Site(r.Context(), id)
	if err != nil {
		writeServiceError(w, "get site", err, slog.String("id", id))
		return
	}
	writeJSON(w, http.StatusOK, site)
}

// GetSiteView handles GET /api/site/{id}/view.
//
//	@Summary		Get the formatted detail page of a site
//	@Tags			sites
//	@Produce		json
//	@Param			id	path		string	true	"Site ID"
//	@Success		200	{object}	format.DetailView
//	@Failure		404	{object}	errResponse
//	@Router			/site/{id}/view [get]
func (h *Handler) GetSiteView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view, err := h.svc.SiteView(r.Context(), id)
	if err != nil {
		writeServiceError(w, "get site view", err, slog.String("id", id))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Locations handles GET /api/locations.
//
//	@Summary		List the distinct regions
//	@Tags			sites
//	@Produce		json
//	@Success		200	{array}	string
//	@Router			/locations [get]
func (h *Handler) Locations(w http.ResponseWriter, r *http.Request) {
	locs, err := h.svc.Locations(r.Context())
	if err != nil {
		writeServiceError(w, "list locations", err)
		return
	}
	writeJSON(w, http.StatusOK, locs)
}

// Religions handles GET /api/religions.
//
//	@Summary		List the religions present in the directory
//	@Tags			sites
//	@Produce		json
//	@Success		200	{array}	string
//	@Router			/religions [get]
func (h *Handler) Religions(w http.ResponseWriter, r *http.Request) {
	rels, err := h.svc.Religions(r.Context())
	if err != nil {
		writeServiceError(w, "list religions", err)
		return
	}
	writeJSON(w, http.StatusOK, rels)
}

// Stats handles GET /api/stats.
//
//	@Summary		Directory totals
//	@Tags			sites
//	@Produce		json
//	@Success		200	{object}	StatsResponse
//	@Router			/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		writeServiceError(w, "stats", err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// Explore handles GET /api/explore.
//
//	@Summary		Filtered, sorted and paginated site list
//	@Tags			views
//	@Produce		json
//	@Param			tipe	query		string	false	"Place type"	Enums(Mosque, Church, Vihara, Temple)
//	@Param			wilayah	query		string	false	"Region"
//	@Param			q		query		string	false	"Name search"
//	@Param			sort	query		string	false	"Sort key"	Enums(nama-asc, nama-desc, tahun-asc, tahun-desc, agama, wilayah)
//	@Param			page	query		int		false	"1-based page"
//	@Success		200		{object}	ExploreResponse
//	@Router			/explore [get]
func (h *Handler) Explore(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	p, err := h.svc.Explore(r.Context(), criteriaFromQuery(r), page)
	if err != nil {
		writeServiceError(w, "explore", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Map handles GET /api/map.
//
//	@Summary		Map markers and bounds
//	@Tags			views
//	@Produce		json
//	@Param			agama		query		[]string	false	"Religions"	collectionFormat(multi)
//	@Param			heritage	query		bool		false	"Heritage sites only"
//	@Param			wilayah		query		string		false	"Region"
//	@Param			sort		query		string		false	"Sort key"	Enums(nama, tahun)
//	@Success		200			{object}	MapResponse
//	@Router			/map [get]
func (h *Handler) Map(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Map(r.Context(), criteriaFromQuery(r))
	if err != nil {
		writeServiceError(w, "map", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// CalendarYear handles GET /api/calendar/{year}.
//
//	@Summary		Events of a year
//	@Tags			calendar
//	@Produce		json
//	@Param			year	path		int	true	"Year"
//	@Success		200		{object}	CalendarYearResponse
//	@Failure		400		{object}	errResponse
//	@Router			/calendar/{year} [get]
func (h *Handler) CalendarYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid year"))
		return
	}
	events, err := h.svc.CalendarYear(r.Context(), year)
	if err != nil {
		writeServiceError(w, "calendar year", err, slog.Int("year", year))
		return
	}
	writeJSON(w, http.StatusOK, CalendarYearResponse{Success: true, Year: year, Events: events})
}

// CalendarMonth handles GET /api/calendar/{year}/{month}.
//
//	@Summary		Month grid
//	@Tags			calendar
//	@Produce		json
//	@Param			year	path		int	true	"Year"
//	@Param			month	path		int	true	"Month (1-12)"
//	@Success		200		{object}	CalendarMonthResponse
//	@Failure		400		{object}	errResponse
//	@Router			/calendar/{year}/{month} [get]
func (h *Handler) CalendarMonth(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid year"))
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid month"))
		return
	}
	g, err := h.svc.CalendarMonth(r.Context(), year, time.Month(month))
	if err != nil {
		writeServiceError(w, "calendar month", err, slog.Int("year", year), slog.Int("month", month))
		return
	}
	writeJSON(w, http.StatusOK, CalendarMonthResponse{Success: true, Grid: g})
}

// CalendarDay handles GET /api/calendar/day/{date}.
//
//	@Summary		Every event on one date
//	@Tags			calendar
//	@Produce		json
//	@Param			date	path		string	true	"Date (YYYY-MM-DD)"
//	@Success		200		{object}	calendar.DayDetail
//	@Failure		400		{object}	errResponse
//	@Router			/calendar/day/{date} [get]
func (h *Handler) CalendarDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	d, err := h.svc.CalendarDay(r.Context(), date)
	if err != nil {
		writeServiceError(w, "calendar day", err, slog.String("date", date))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Upcoming handles GET /api/calendar/upcoming.
//
//	@Summary		Upcoming events from today
//	@Tags			calendar
//	@Produce		json
//	@Param			page	query		int	false	"0-based page"
//	@Success		200		{object}	calendar.UpcomingPage
//	@Router			/calendar/upcoming [get]
func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	up, err := h.svc.Upcoming(r.Context(), page)
	if err != nil {
		writeServiceError(w, "upcoming", err)
		return
	}
	writeJSON(w, http.StatusOK, up)
}

func decodeSite(w http.ResponseWriter, r *http.Request) (SiteRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req SiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return req, false
	}
	if id := chi.URLParam(r, "id"); id != "" {
		req.ID = id
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return req, false
	}
	return req, true
}

// CreateSite handles POST /api/admin/sites.
//
//	@Summary		Add a site
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			body	body		SiteRequest	true	"Site to create"
//	@Success		201		{object}	SiteDetail
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Security		BasicAuth
//	@Router			/admin/sites [post]
func (h *Handler) CreateSite(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSite(w, r)
	if !ok {
		return
	}
	site := req.Site()
	d, err := h.svc.CreateSite(r.Context(), &site)
	if err != nil {
		writeServiceError(w, "create site", err, slog.String("id", site.ID))
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// UpdateSite handles PUT /api/admin/sites/{id}.
//
//	@Summary		Replace a site
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string		true	"Site ID"
//	@Param			body	body		SiteRequest	true	"New site data"
//	@Success		200		{object}	SiteDetail
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Security		BasicAuth
//	@Router			/admin/sites/{id} [put]
func (h *Handler) UpdateSite(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSite(w, r)
	if !ok {
		return
	}
	site := req.Site()
	d, err := h.svc.UpdateSite(r.Context(), &site)
	if err != nil {
		writeServiceError(w, "update site", err, slog.String("id", site.ID))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// DeleteSite handles DELETE /api/admin/sites/{id}.
//
//	@Summary		Delete a site
//	@Tags			admin
//	@Param			id	path	string	true	"Site ID"
//	@Success		204	"Site deleted"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Security		BasicAuth
//	@Router			/admin/sites/{id} [delete]
func (h *Handler) DeleteSite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.DeleteSite(r.Context(), id); err != nil {
		writeServiceError(w, "delete site", err, slog.String("id", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
