// Package siteservice sits between the HTTP/MCP layers and the store: it
// renders directory and calendar views and publishes site changes.
package siteservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/starford/harmoni/internal/calendar"
	"github.com/starford/harmoni/internal/explore"
	"github.com/starford/harmoni/internal/format"
	"github.com/starford/harmoni/internal/models"
	"github.com/starford/harmoni/internal/store"
)

// Publisher receives site changes. kind is "created", "updated" or "deleted".
type Publisher interface {
	PublishSiteEvent(kind, id string)
}

type nopPublisher struct{}

func (nopPublisher) PublishSiteEvent(string, string) {}

// Service coordinates store reads and writes for the API and MCP layers.
type Service struct {
	db       store.Store
	pub      Publisher
	logger   *slog.Logger
	now      func() time.Time
	loc      *time.Location
	pageSize int
	upcoming int
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher sets the receiver of site change events.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.pub = p
		}
	}
}

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the time zone "today" is computed in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// WithPageSizes sets the list and upcoming-events page sizes.
func WithPageSizes(list, upcoming int) Option {
	return func(s *Service) {
		if list > 0 {
			s.pageSize = list
		}
		if upcoming > 0 {
			s.upcoming = upcoming
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New creates a service over db.
func New(db store.Store, opts ...Option) *Service {
	s := &Service{
		db:       db,
		pub:      nopPublisher{},
		logger:   slog.Default(),
		now:      time.Now,
		loc:      time.UTC,
		pageSize: explore.DefaultPageSize,
		upcoming: calendar.UpcomingPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the current date in the service time zone.
func (s *Service) Today() time.Time {
	return s.now().In(s.loc)
}

// Sites returns every site ordered by name.
func (s *Service) Sites(ctx context.Context) ([]models.Site, error) {
	return s.db.ListSites(ctx)
}

// Site returns one site as its detail payload.
func (s *Service) Site(ctx context.Context, id string) (*models.SiteDetail, error) {
	site, err := s.db.GetSite(ctx, id)
	if err != nil {
		return nil, err
	}
	d := site.Detail()
	return &d, nil
}

// SiteView returns the formatted detail page of one site.
func (s *Service) SiteView(ctx context.Context, id string) (format.DetailView, error) {
	d, err := s.Site(ctx, id)
	if err != nil {
		return format.NotFoundDetail(), err
	}
	return format.Detail(d), nil
}

// Locations returns the distinct regions.
func (s *Service) Locations(ctx context.Context) ([]string, error) {
	return s.db.Locations(ctx)
}

// Religions returns the distinct religions present in the directory.
func (s *Service) Religions(ctx context.Context) ([]models.Religion, error) {
	return s.db.Religions(ctx)
}

// Stats returns the directory totals.
func (s *Service) Stats(ctx context.Context) (models.Stats, error) {
	return s.db.Stats(ctx)
}

// Explore renders one list page for c.
func (s *Service) Explore(ctx context.Context, c explore.Criteria, page int) (explore.ListPage, error) {
	sites, err := s.db.ListSites(ctx)
	if err != nil {
		return explore.ListPage{}, err
	}
	return explore.List(sites, c, page, s.pageSize), nil
}

// Map renders the marker set for c.
func (s *Service) Map(ctx context.Context, c explore.Criteria) (explore.MapView, error) {
	sites, err := s.db.ListSites(ctx)
	if err != nil {
		return explore.MapView{}, err
	}
	return explore.Map(sites, c), nil
}

// CreateSite stores a new site and announces it.
func (s *Service) CreateSite(ctx context.Context, site *models.Site) (*models.SiteDetail, error) {
	if err := s.db.CreateSite(ctx, site); err != nil {
		return nil, err
	}
	s.pub.PublishSiteEvent("created", site.ID)
	s.logger.Info("site created", slog.String("id", site.ID))
	return s.Site(ctx, site.ID)
}

// UpdateSite replaces an existing site and announces it.
func (s *Service) UpdateSite(ctx context.Context, site *models.Site) (*models.SiteDetail, error) {
	if err := s.db.UpdateSite(ctx, site); err != nil {
		return nil, err
	}
	s.pub.PublishSiteEvent("updated", site.ID)
	s.logger.Info("site updated", slog.String("id", site.ID))
	return s.Site(ctx, site.ID)
}

// DeleteSite removes a site and announces it.
func (s *Service) DeleteSite(ctx context.Context, id string) error {
	if err := s.db.DeleteSite(ctx, id); err != nil {
		return err
	}
	s.pub.PublishSiteEvent("deleted", id)
	s.logger.Info("site deleted", slog.String("id", id))
	return nil
}

// CalendarYear returns the events of year: the imported ones, or the
// built-in ones when nothing was imported for that year, merged with the
// computed Christian holidays.
func (s *Service) CalendarYear(ctx context.Context, year int) ([]models.Event, error) {
	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("siteservice: year %d: %w", year, errInvalidYear)
	}
	events, err := s.db.EventsByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		events = calendar.Fallback(year)
	}
	return calendar.Merge(events, calendar.Holidays(year)), nil
}

// CalendarMonth renders the grid of month in year.
func (s *Service) CalendarMonth(ctx context.Context, year int, month time.Month) (calendar.Grid, error) {
	if month < time.January || month > time.December {
		return calendar.Grid{}, fmt.Errorf("siteservice: month %d: %w", month, errInvalidMonth)
	}
	events, err := s.CalendarYear(ctx, year)
	if err != nil {
		return calendar.Grid{}, err
	}
	return calendar.Month(year, month, s.Today(), events), nil
}

// CalendarDay lists every event on date (YYYY-MM-DD).
func (s *Service) CalendarDay(ctx context.Context, date string) (calendar.DayDetail, error) {
	t, err := calendar.ParseDate(date)
	if err != nil {
		return calendar.DayDetail{}, err
	}
	events, err := s.CalendarYear(ctx, t.Year())
	if err != nil {
		return calendar.DayDetail{}, err
	}
	return calendar.DayEvents(events, date)
}

// Upcoming renders the 0-based page of events from today on. The current and
// the next year are considered so the list does not run dry in December.
func (s *Service) Upcoming(ctx context.Context, page int) (calendar.UpcomingPage, error) {
	today := s.Today()
	this, err := s.CalendarYear(ctx, today.Year())
	if err != nil {
		return calendar.UpcomingPage{}, err
	}
	next, err := s.CalendarYear(ctx, today.Year()+1)
	if err != nil {
		return calendar.UpcomingPage{}, err
	}
	return calendar.Upcoming(append(this, next...), today, page, s.upcoming), nil
}
