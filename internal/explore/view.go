package explore

import (
	"github.com/paulmach/orb"

	"github.com/starford/harmoni/internal/format"
	"github.com/starford/harmoni/internal/models"
	"github.com/starford/harmoni/internal/paging"
)

// DefaultPageSize is the number of cards on one list page.
const DefaultPageSize = 8

// Card is a site as shown in the list view.
type Card struct {
	ID       string `json:"id"`
	Name     string `json:"nama"`
	Image    string `json:"gambar_url"`
	Color    string `json:"warna"`
	Icon     string `json:"ikon"`
	Location string `json:"lokasi"`
	Religion string `json:"agama"`
	Year     *int   `json:"tahun,omitempty"`
	URL      string `json:"url"`
}

// NewCard renders s as a list card.
func NewCard(s *models.Site) Card {
	img := s.ImageURL
	if img == "" {
		img = s.Type.DefaultImage()
	}
	return Card{
		ID:       s.ID,
		Name:     s.Name,
		Image:    img,
		Color:    s.Religion.Style().Color,
		Icon:     s.Type.Icon(),
		Location: format.LocationName(s.Region),
		Religion: s.Religion.DisplayName(),
		Year:     s.Founded,
		URL:      "/detail/" + s.ID,
	}
}

// ListPage is one page of the filtered and sorted list.
type ListPage struct {
	Criteria   Criteria         `json:"criteria"`
	Items      []Card           `json:"items"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	Total      int              `json:"total"`
	Empty      bool             `json:"empty"`
	Pagination *paging.Controls `json:"pagination"`
}

// List filters and sorts sites by c and renders the given 1-based page.
// A page outside the result range falls back to page 1.
func List(sites []models.Site, c Criteria, page, size int) ListPage {
	if size < 1 {
		size = DefaultPageSize
	}
	matched := Apply(sites, c)
	total := paging.TotalPages(len(matched), size)
	if page < 1 || page > total {
		page = 1
	}
	return Render(matched, c, page, size)
}

// Render builds the list page for an already filtered and sorted slice.
func Render(matched []models.Site, c Criteria, page, size int) ListPage {
	total := paging.TotalPages(len(matched), size)
	items := paging.Slice(matched, size, page)
	cards := make([]Card, 0, len(items))
	for i := range items {
		cards = append(cards, NewCard(&items[i]))
	}
	return ListPage{
		Criteria:   c,
		Items:      cards,
		Page:       page,
		TotalPages: total,
		Total:      len(matched),
		Empty:      len(matched) == 0,
		Pagination: paging.Buttons(page, total),
	}
}

// Jakarta city centre, used when no marker has coordinates.
var defaultCenter = orb.Point{106.8456, -6.2088}

// LatLng is a coordinate in the order map clients expect.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func latLng(p orb.Point) LatLng {
	return LatLng{Lat: p.Lat(), Lng: p.Lon()}
}

// Bounds is the south-west and north-east corner of the visible markers.
type Bounds struct {
	SouthWest LatLng `json:"south_west"`
	NorthEast LatLng `json:"north_east"`
}

// Marker is a site pin with its popup content.
type Marker struct {
	ID            string `json:"id"`
	Name          string `json:"nama"`
	Position      LatLng `json:"position"`
	Color         string `json:"warna"`
	Icon          string `json:"ikon"`
	Image         string `json:"gambar_url"`
	Location      string `json:"lokasi"`
	Religion      string `json:"agama"`
	Year          *int   `json:"tahun,omitempty"`
	DetailURL     string `json:"detail_url"`
	GoogleMapsURL string `json:"google_maps_url"`
}

// MapView is the marker set for the map page.
type MapView struct {
	Criteria Criteria `json:"criteria"`
	Markers  []Marker `json:"markers"`
	Center   LatLng   `json:"center"`
	Bounds   *Bounds  `json:"bounds"`
	Total    int      `json:"total"`
	Empty    bool     `json:"empty"`
}

// Map filters and sorts sites by c and renders a marker for every match that
// has coordinates.
func Map(sites []models.Site, c Criteria) MapView {
	matched := Apply(sites, c)
	v := MapView{
		Criteria: c,
		Markers:  make([]Marker, 0, len(matched)),
		Center:   latLng(defaultCenter),
	}
	var bound orb.Bound
	for i := range matched {
		s := &matched[i]
		p, ok := s.Point()
		if !ok {
			continue
		}
		if len(v.Markers) == 0 {
			bound = p.Bound()
		} else {
			bound = bound.Extend(p)
		}
		v.Markers = append(v.Markers, newMarker(s, p))
	}
	v.Total = len(v.Markers)
	v.Empty = v.Total == 0
	if !v.Empty {
		v.Center = latLng(bound.Center())
		v.Bounds = &Bounds{SouthWest: latLng(bound.Min), NorthEast: latLng(bound.Max)}
	}
	return v
}

func newMarker(s *models.Site, p orb.Point) Marker {
	img := s.ImageURL
	if img == "" {
		img = format.PopupImage
	}
	return Marker{
		ID:            s.ID,
		Name:          s.Name,
		Position:      latLng(p),
		Color:         s.Religion.Style().Color,
		Icon:          s.Type.Icon(),
		Image:         img,
		Location:      format.LocationName(s.Region),
		Religion:      s.Religion.DisplayName(),
		Year:          s.Founded,
		DetailURL:     "/detail/" + s.ID,
		GoogleMapsURL: format.GoogleMapsURL(p.Lat(), p.Lon()),
	}
}
