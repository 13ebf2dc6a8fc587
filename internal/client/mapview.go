package client

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/starford/harmoni/internal/explore"
	"github.com/starford/harmoni/internal/models"
)

// MapSession is the state of one map page.
type MapSession struct {
	client *Client
	logger *slog.Logger

	mu        sync.Mutex
	sites     []models.Site
	locations []Location
	stats     models.Stats
	criteria  explore.Criteria
}

// NewMapSession creates an empty map session.
func NewMapSession(c *Client) *MapSession {
	return &MapSession{client: c, logger: c.logger}
}

// Load fetches sites, region options and totals. Each failure is logged and
// leaves its part empty; the site error is returned.
func (s *MapSession) Load(ctx context.Context) error {
	sites, err := s.client.Sites(ctx)
	if err != nil {
		s.logger.Error("map: load sites failed", slog.String("error", err.Error()))
	}
	regions, locErr := s.client.Locations(ctx)
	if locErr != nil {
		s.logger.Warn("map: load locations failed", slog.String("error", locErr.Error()))
	}
	stats, statsErr := s.client.Stats(ctx)
	if statsErr != nil {
		s.logger.Warn("map: load stats failed", slog.String("error", statsErr.Error()))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sites = sites
	s.locations = locationOptions(regions)
	s.stats = stats
	return err
}

// SetCriteria replaces the active filters.
func (s *MapSession) SetCriteria(c explore.Criteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = c
}

// Markers renders the markers for the active filters.
func (s *MapSession) Markers() explore.MapView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return explore.Map(s.sites, s.criteria)
}

// Stats returns the totals loaded with the map.
func (s *MapSession) Stats() models.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Locations returns the region options.
func (s *MapSession) Locations() []Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.locations)
}
