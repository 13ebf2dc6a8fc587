// Package explore filters and orders site listings for the list and map views.
package explore

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/starford/harmoni/internal/models"
)

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortNameAsc    SortKey = "nama-asc"
	SortNameDesc   SortKey = "nama-desc"
	SortYearAsc    SortKey = "tahun-asc"
	SortYearDesc   SortKey = "tahun-desc"
	SortReligion   SortKey = "agama"
	SortRegion     SortKey = "wilayah"
	SortMapName    SortKey = "nama"
	SortMapFounded SortKey = "tahun"
)

// Substitutes for an unknown founding year.
const (
	unknownYearLast  = 9999
	unknownYearFirst = 0
)

// Criteria is the set of active filters plus the sort key. The zero value
// matches every site and keeps input order.
type Criteria struct {
	Type      models.PlaceType  `json:"tipe,omitempty"`
	Region    string            `json:"wilayah,omitempty"`
	Query     string            `json:"q,omitempty"`
	Sort      SortKey           `json:"sort,omitempty"`
	Religions []models.Religion `json:"agama,omitempty"`
	Heritage  bool              `json:"heritage,omitempty"`
}

// Equal reports whether two criteria select and order sites identically.
func (c Criteria) Equal(o Criteria) bool {
	return c.Type == o.Type &&
		c.Region == o.Region &&
		c.Query == o.Query &&
		c.Sort == o.Sort &&
		c.Heritage == o.Heritage &&
		slices.Equal(c.Religions, o.Religions)
}

// Match reports whether s passes every filter in c.
func (c Criteria) Match(s *models.Site) bool {
	if c.Type != "" && s.Type != c.Type {
		return false
	}
	if c.Region != "" && s.Region != c.Region {
		return false
	}
	if len(c.Religions) > 0 && !slices.Contains(c.Religions, s.Religion) {
		return false
	}
	if c.Heritage && !s.Heritage {
		return false
	}
	if q := strings.ToLower(c.Query); q != "" {
		return strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(strings.ToLower(s.Address), q) ||
			strings.Contains(strings.ToLower(s.Region), q)
	}
	return true
}

// Filter returns the sites matching c in input order. The input is not modified.
func Filter(sites []models.Site, c Criteria) []models.Site {
	out := make([]models.Site, 0, len(sites))
	for i := range sites {
		if c.Match(&sites[i]) {
			out = append(out, sites[i])
		}
	}
	return out
}

// Sort returns a stably sorted copy of sites. An empty or unknown key returns
// the copy in input order.
func Sort(sites []models.Site, key SortKey) []models.Site {
	out := slices.Clone(sites)
	if out == nil {
		out = []models.Site{}
	}
	cmp := comparator(key)
	if cmp != nil {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

// Apply filters then sorts.
func Apply(sites []models.Site, c Criteria) []models.Site {
	return Sort(Filter(sites, c), c.Sort)
}

// Known reports whether key names a supported ordering.
func Known(key SortKey) bool {
	return comparator(key) != nil
}

func comparator(key SortKey) func(a, b models.Site) int {
	switch key {
	case SortNameAsc, SortMapName:
		col := newCollator()
		return func(a, b models.Site) int { return col.CompareString(a.Name, b.Name) }
	case SortNameDesc:
		col := newCollator()
		return func(a, b models.Site) int { return col.CompareString(b.Name, a.Name) }
	case SortYearAsc, SortMapFounded:
		return func(a, b models.Site) int {
			return a.FoundedOr(unknownYearLast) - b.FoundedOr(unknownYearLast)
		}
	case SortYearDesc:
		return func(a, b models.Site) int {
			return b.FoundedOr(unknownYearFirst) - a.FoundedOr(unknownYearFirst)
		}
	case SortReligion:
		col := newCollator()
		return func(a, b models.Site) int { return col.CompareString(string(a.Religion), string(b.Religion)) }
	case SortRegion:
		col := newCollator()
		return func(a, b models.Site) int { return col.CompareString(a.Region, b.Region) }
	}
	return nil
}

// A Collator keeps scratch buffers, so each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.Indonesian)
}
