package client

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/starford/harmoni/internal/apperr"
	"github.com/starford/harmoni/internal/explore"
	"github.com/starford/harmoni/internal/format"
	"github.com/starford/harmoni/internal/models"
	"github.com/starford/harmoni/internal/paging"
)

// Location is a region option of the filter dropdown.
type Location struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func locationOptions(regions []string) []Location {
	out := make([]Location, 0, len(regions))
	for _, r := range regions {
		out = append(out, Location{Value: r, Label: format.LocationName(r)})
	}
	return out
}

// DirectorySession is the state of one list page: the fetched sites, the
// active criteria and the page cursor.
type DirectorySession struct {
	client *Client
	logger *slog.Logger

	mu        sync.Mutex
	sites     []models.Site
	locations []Location
	criteria  explore.Criteria
	matched   []models.Site
	cursor    *paging.Cursor
}

// NewDirectorySession creates an empty session paging size cards at a time.
func NewDirectorySession(c *Client, size int) *DirectorySession {
	if size < 1 {
		size = explore.DefaultPageSize
	}
	return &DirectorySession{
		client:  c,
		logger:  c.logger,
		cursor:  paging.NewCursor(size),
		matched: []models.Site{},
	}
}

// Load replaces the site list and the region options. A failed site fetch
// leaves the session with an empty list; a failed region fetch only leaves
// the dropdown empty.
func (s *DirectorySession) Load(ctx context.Context) error {
	sites, err := s.client.Sites(ctx)
	if err != nil {
		s.logger.Error("directory: load sites failed", slog.String("error", err.Error()))
		sites = nil
	}
	regions, locErr := s.client.Locations(ctx)
	if locErr != nil {
		s.logger.Warn("directory: load locations failed", slog.String("error", locErr.Error()))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sites = sites
	s.locations = locationOptions(regions)
	s.recompute()
	return err
}

// recompute re-applies the criteria and moves the cursor back to page 1.
// Callers hold s.mu.
func (s *DirectorySession) recompute() {
	s.matched = explore.Apply(s.sites, s.criteria)
	s.cursor.SetCount(len(s.matched))
	s.cursor.Reset()
}

// SetCriteria applies new criteria. The cursor returns to page 1 whenever the
// criteria change.
func (s *DirectorySession) SetCriteria(c explore.Criteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.Equal(s.criteria) {
		return
	}
	s.criteria = c
	s.recompute()
}

// Criteria returns the active criteria.
func (s *DirectorySession) Criteria() explore.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.criteria
	c.Religions = slices.Clone(c.Religions)
	return c
}

// GoTo moves to page. Pages outside the current range are ignored.
func (s *DirectorySession) GoTo(page int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.GoTo(page)
}

// Page returns the current page number.
func (s *DirectorySession) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.Page()
}

// View renders the current page.
func (s *DirectorySession) View() explore.ListPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return explore.Render(s.matched, s.criteria, s.cursor.Page(), s.cursor.Size())
}

// Locations returns the region options loaded with the sites.
func (s *DirectorySession) Locations() []Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.locations)
}

// Detail loads the detail view of one site. Any failure renders the
// not-found placeholder.
func (s *DirectorySession) Detail(ctx context.Context, id string) format.DetailView {
	d, err := s.client.Site(ctx, id)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			s.logger.Error("directory: load site failed", slog.String("id", id), slog.String("error", err.Error()))
		}
		return format.NotFoundDetail()
	}
	return format.Detail(d)
}
