package client

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/starford/harmoni/internal/calendar"
	"github.com/starford/harmoni/internal/models"
	"github.com/starford/harmoni/internal/paging"
)

// ErrStaleResponse is returned when a calendar response arrives after the
// session has moved to another year. The response is dropped.
var ErrStaleResponse = errors.New("client: stale calendar response")

// YearFetcher loads the events of one year.
type YearFetcher interface {
	CalendarYear(ctx context.Context, year int) ([]models.Event, error)
}

// CalendarSession is the state of one calendar page: the visible month, the
// per-year event cache and the upcoming-events page.
//
// Fetches run outside the lock. Every fetch and every change of the visible
// year takes a new token; a response is merged only if its token is still the
// latest one.
type CalendarSession struct {
	fetcher  YearFetcher
	logger   *slog.Logger
	pageSize int

	mu       sync.Mutex
	nav      calendar.Navigator
	cache    map[int][]models.Event
	events   []models.Event
	token    uint64
	upcoming paging.Offset
}

// NewCalendarSession creates a session showing the month of today.
func NewCalendarSession(f YearFetcher, logger *slog.Logger, today time.Time) *CalendarSession {
	if logger == nil {
		logger = slog.Default()
	}
	return &CalendarSession{
		fetcher:  f,
		logger:   logger,
		pageSize: calendar.UpcomingPageSize,
		nav:      calendar.NavigatorAt(today),
		cache:    make(map[int][]models.Event),
	}
}

// Init loads the current year and, in December, the next year as well.
func (s *CalendarSession) Init(ctx context.Context, today time.Time) error {
	s.mu.Lock()
	s.nav = calendar.NavigatorAt(today)
	s.mu.Unlock()

	err := s.EnsureYear(ctx, today.Year())
	if today.Month() == time.December {
		err = errors.Join(err, s.EnsureYear(ctx, today.Year()+1))
	}
	return err
}

// EnsureYear fetches year unless it is cached. On failure the built-in events
// of that year are merged instead; they are not cached, so a later call tries
// again. A response overtaken by navigation is dropped with ErrStaleResponse.
func (s *CalendarSession) EnsureYear(ctx context.Context, year int) error {
	s.mu.Lock()
	if _, ok := s.cache[year]; ok {
		s.mu.Unlock()
		return nil
	}
	s.token++
	token := s.token
	s.mu.Unlock()

	events, err := s.fetcher.CalendarYear(ctx, year)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token {
		s.logger.Debug("calendar: dropping stale response", slog.Int("year", year))
		return ErrStaleResponse
	}
	if err != nil {
		s.logger.Warn("calendar: fetch failed, using built-in events",
			slog.Int("year", year), slog.String("error", err.Error()))
		s.replaceYear(year, calendar.Fallback(year))
		return err
	}
	s.cache[year] = events
	s.replaceYear(year, events)
	return nil
}

// replaceYear swaps the events of year in the merged list. Callers hold s.mu.
func (s *CalendarSession) replaceYear(year int, events []models.Event) {
	kept := slices.DeleteFunc(slices.Clone(s.events), func(e models.Event) bool { return e.InYear(year) })
	s.events = append(kept, events...)
}

// Prev shows the previous month, fetching its year when the year changed.
func (s *CalendarSession) Prev(ctx context.Context) error {
	return s.step(ctx, (*calendar.Navigator).Prev)
}

// Next shows the next month, fetching its year when the year changed.
func (s *CalendarSession) Next(ctx context.Context) error {
	return s.step(ctx, (*calendar.Navigator).Next)
}

func (s *CalendarSession) step(ctx context.Context, move func(*calendar.Navigator) bool) error {
	s.mu.Lock()
	changed := move(&s.nav)
	year := s.nav.Year
	if changed {
		s.token++
	}
	s.mu.Unlock()

	if !changed {
		return nil
	}
	return s.EnsureYear(ctx, year)
}

// Navigator returns the visible month.
func (s *CalendarSession) Navigator() calendar.Navigator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav
}

// Cached reports whether year has been fetched successfully.
func (s *CalendarSession) Cached(year int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.cache[year]
	return ok
}

// Events returns a copy of the merged event list.
func (s *CalendarSession) Events() []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.events)
}

// Grid renders the visible month.
func (s *CalendarSession) Grid(today time.Time) calendar.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return calendar.Month(s.nav.Year, s.nav.Month, today, s.events)
}

// Day lists every loaded event on date.
func (s *CalendarSession) Day(date string) (calendar.DayDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return calendar.DayEvents(s.events, date)
}

// Upcoming renders the current upcoming-events page.
func (s *CalendarSession) Upcoming(today time.Time) calendar.UpcomingPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := calendar.Upcoming(s.events, today, s.upcoming.Index(), s.pageSize)
	s.upcoming.Clamp(p.TotalPages)
	return p
}

// NextUpcomingPage advances the upcoming list unless it is on its last page.
func (s *CalendarSession) NextUpcomingPage(today time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(calendar.UpcomingList(s.events, today))
	return s.upcoming.Next(paging.TotalPages(n, s.pageSize))
}

// PrevUpcomingPage moves the upcoming list back unless it is on its first page.
func (s *CalendarSession) PrevUpcomingPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upcoming.Prev()
}
