package explore

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/harmoni/internal/models"
)

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

// fixture builds 20 sites: every fourth one a mosque, names distinct.
func fixture() []models.Site {
	types := []models.PlaceType{models.Church, models.Vihara, models.Temple, models.Mosque}
	religions := []models.Religion{models.Katolik, models.Buddha, models.Hindu, models.Islam}
	regions := []string{"JakartaPusat", "JakartaBarat", "JakartaSelatan", "JakartaTimur", "JakartaUtara"}
	out := make([]models.Site, 20)
	for i := range out {
		out[i] = models.Site{
			ID:       fmt.Sprintf("site%02d", i),
			Name:     fmt.Sprintf("Tempat %c", 'T'-i),
			Address:  fmt.Sprintf("Jl. Nomor %d", i),
			Region:   regions[i%len(regions)],
			Type:     types[i%len(types)],
			Religion: religions[i%len(religions)],
			Heritage: i%3 == 0,
		}
		if i%5 != 0 {
			out[i].Founded = intPtr(1600 + i*17)
		}
	}
	return out
}

func ids(sites []models.Site) []string {
	out := make([]string, len(sites))
	for i, s := range sites {
		out[i] = s.ID
	}
	return out
}

func TestMosqueFilterKeepsInputOrder(t *testing.T) {
	sites := fixture()
	got := Apply(sites, Criteria{Type: models.Mosque})
	require.Len(t, got, 5)
	assert.Equal(t, []string{"site03", "site07", "site11", "site15", "site19"}, ids(got))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	sites := fixture()
	before := ids(sites)
	_ = Apply(sites, Criteria{Sort: SortNameAsc, Region: "JakartaPusat"})
	assert.Equal(t, before, ids(sites))
}

func TestFiltersComposeByAnd(t *testing.T) {
	sites := fixture()
	single := []Criteria{
		{Type: models.Mosque},
		{Region: "JakartaTimur"},
		{Query: "nomor 1"},
		{Heritage: true},
		{Religions: []models.Religion{models.Islam, models.Hindu}},
	}
	for mask := 1; mask < 1<<len(single); mask++ {
		var combined Criteria
		want := ids(sites)
		for bit, c := range single {
			if mask&(1<<bit) == 0 {
				continue
			}
			if c.Type != "" {
				combined.Type = c.Type
			}
			if c.Region != "" {
				combined.Region = c.Region
			}
			if c.Query != "" {
				combined.Query = c.Query
			}
			if c.Heritage {
				combined.Heritage = true
			}
			if c.Religions != nil {
				combined.Religions = c.Religions
			}
			match := ids(Filter(sites, c))
			want = slices.DeleteFunc(want, func(id string) bool { return !slices.Contains(match, id) })
		}
		got := Filter(sites, combined)
		assert.Equal(t, want, ids(got), "mask=%b", mask)
		assert.Equal(t, ids(got), ids(Filter(got, combined)), "idempotent mask=%b", mask)
	}
}

func TestQueryMatchesNameAddressOrRegion(t *testing.T) {
	sites := []models.Site{
		{ID: "a", Name: "MASJID ISTIQLAL", Address: "Jl. Taman", Region: "JakartaPusat"},
		{ID: "b", Name: "GEREJA SION", Address: "Jl. Pangeran Jayakarta", Region: "JakartaBarat"},
		{ID: "c", Name: "PURA ADITYA JAYA", Address: "Jl. Daksinapati", Region: "JakartaTimur"},
	}
	assert.Equal(t, []string{"a"}, ids(Filter(sites, Criteria{Query: "istiqlal"})))
	assert.Equal(t, []string{"b", "c"}, ids(Filter(sites, Criteria{Query: "JAYA"})))
	assert.Equal(t, []string{"c"}, ids(Filter(sites, Criteria{Query: "timur"})))
	assert.Empty(t, Filter(sites, Criteria{Query: "katedral"}))
}

func TestNameSortsMirror(t *testing.T) {
	sites := fixture()
	asc := ids(Sort(sites, SortNameAsc))
	desc := ids(Sort(sites, SortNameDesc))
	slices.Reverse(desc)
	assert.Equal(t, asc, desc)
	assert.Equal(t, "site19", asc[0])
	assert.Equal(t, asc, ids(Sort(sites, SortMapName)))
}

func TestYearSortsPlaceUnknownAtEnds(t *testing.T) {
	sites := []models.Site{
		{ID: "unknown"},
		{ID: "old", Founded: intPtr(1650)},
		{ID: "new", Founded: intPtr(1978)},
	}
	assert.Equal(t, []string{"old", "new", "unknown"}, ids(Sort(sites, SortYearAsc)))
	assert.Equal(t, []string{"old", "new", "unknown"}, ids(Sort(sites, SortMapFounded)))
	assert.Equal(t, []string{"new", "old", "unknown"}, ids(Sort(sites, SortYearDesc)))
}

func TestSortIsStable(t *testing.T) {
	sites := []models.Site{
		{ID: "1", Region: "JakartaPusat"},
		{ID: "2", Region: "JakartaBarat"},
		{ID: "3", Region: "JakartaPusat"},
		{ID: "4", Region: "JakartaBarat"},
	}
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(Sort(sites, SortRegion)))
}

func TestReligionSortUsesRawValue(t *testing.T) {
	sites := []models.Site{
		{ID: "k", Religion: models.KristenProtestan},
		{ID: "b", Religion: models.Buddha},
		{ID: "i", Religion: models.Islam},
	}
	assert.Equal(t, []string{"b", "i", "k"}, ids(Sort(sites, SortReligion)))
}

func TestUnknownSortKeyKeepsOrder(t *testing.T) {
	sites := fixture()
	assert.Equal(t, ids(sites), ids(Sort(sites, "populer")))
	assert.Equal(t, ids(sites), ids(Sort(sites, "")))
	assert.False(t, Known("populer"))
	assert.True(t, Known(SortYearDesc))
}

func TestListPage(t *testing.T) {
	sites := fixture()
	p := List(sites, Criteria{}, 3, DefaultPageSize)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 20, p.Total)
	assert.Len(t, p.Items, 4)
	require.NotNil(t, p.Pagination)
	assert.True(t, p.Pagination.NextDisabled)

	p = List(sites, Criteria{}, 9, DefaultPageSize)
	assert.Equal(t, 1, p.Page)

	p = List(sites, Criteria{Query: "tidak ada"}, 1, DefaultPageSize)
	assert.True(t, p.Empty)
	assert.Empty(t, p.Items)
	assert.Nil(t, p.Pagination)
}

func TestNewCardDefaults(t *testing.T) {
	c := NewCard(&models.Site{ID: "x", Type: models.Church, Religion: models.KristenProtestan, Region: "JakartaBarat"})
	assert.Equal(t, models.Church.DefaultImage(), c.Image)
	assert.Equal(t, "#3498db", c.Color)
	assert.Equal(t, "Kristen Protestan", c.Religion)
	assert.Equal(t, "Jakarta Barat", c.Location)
	assert.Equal(t, "/detail/x", c.URL)
}

func TestMapView(t *testing.T) {
	sites := []models.Site{
		{ID: "istiqlal", Name: "MASJID ISTIQLAL", Religion: models.Islam, Heritage: true,
			Latitude: floatPtr(-6.170008), Longitude: floatPtr(106.831009)},
		{ID: "pura", Name: "PURA ADITYA JAYA", Religion: models.Hindu,
			Latitude: floatPtr(-6.191284), Longitude: floatPtr(106.896273)},
		{ID: "nowhere", Name: "TANPA KOORDINAT", Religion: models.Islam, Heritage: true},
	}

	v := Map(sites, Criteria{})
	require.Len(t, v.Markers, 2)
	require.NotNil(t, v.Bounds)
	assert.InDelta(t, -6.191284, v.Bounds.SouthWest.Lat, 1e-9)
	assert.InDelta(t, 106.831009, v.Bounds.SouthWest.Lng, 1e-9)
	assert.InDelta(t, -6.170008, v.Bounds.NorthEast.Lat, 1e-9)
	assert.InDelta(t, 106.896273, v.Bounds.NorthEast.Lng, 1e-9)
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=-6.170008,106.831009", v.Markers[0].GoogleMapsURL)

	v = Map(sites, Criteria{Religions: []models.Religion{models.Islam}, Heritage: true})
	require.Len(t, v.Markers, 1)
	assert.Equal(t, "istiqlal", v.Markers[0].ID)

	v = Map(sites, Criteria{Religions: []models.Religion{models.Buddha}})
	assert.True(t, v.Empty)
	assert.Nil(t, v.Bounds)
	assert.InDelta(t, -6.2088, v.Center.Lat, 1e-9)
	assert.InDelta(t, 106.8456, v.Center.Lng, 1e-9)
}
