package api

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/harmoni/internal/calendar"
	"github.com/starford/harmoni/internal/explore"
	"github.com/starford/harmoni/internal/format"
	"github.com/starford/harmoni/internal/models"
)

var siteIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// SiteRequest is the admin payload for creating or replacing a site.
// Koordinat carries "lat, lng" in one field; when empty the site has no location.
type SiteRequest struct {
	ID           string           `json:"id" example:"MasjidIstiqlal"`
	Name         string           `json:"nama" example:"MASJID ISTIQLAL" validate:"required"`
	Address      string           `json:"alamat" example:"Jl. Taman Wijaya Kusuma No. 1"`
	Region       string           `json:"wilayah" example:"JakartaPusat"`
	District     string           `json:"kecamatan" example:"SawahBesar"`
	PostalCode   string           `json:"kode_pos" example:"10710"`
	Type         models.PlaceType `json:"tipe" example:"Mosque" validate:"required"`
	Religion     models.Religion  `json:"agama" example:"Islam" validate:"required"`
	OpeningHours string           `json:"jam_buka" example:"04:00 - 22:00"`
	Capacity     *int             `json:"kapasitas" example:"200000"`
	Area         string           `json:"luas" example:"9.5 ha"`
	Architect    string           `json:"arsitek" example:"Frederich Silaban"`
	Founded      *int             `json:"tahun_berdiri" example:"1978"`
	Heritage     bool             `json:"is_heritage"`
	HeritageCode string           `json:"heritage_code"`
	Transport    string           `json:"transport_terdekat" example:"Stasiun Juanda, Halte Istiqlal"`
	Koordinat    string           `json:"koordinat" example:"-6.1702, 106.8314"`
	ImageURL     string           `json:"gambar_url"`
	Description  string           `json:"deskripsi"`
}

func enumValues[T any](vals []T) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

func validCoordinates(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	_, _, err := format.ParseCoordinates(s)
	return err
}

// Validate checks the payload before it reaches the store.
func (r SiteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required, validation.Length(1, 64), validation.Match(siteIDPattern)),
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Type, validation.Required, validation.In(enumValues(models.PlaceTypes)...)),
		validation.Field(&r.Religion, validation.Required, validation.In(enumValues(models.Religions)...)),
		validation.Field(&r.Capacity, validation.Min(0)),
		validation.Field(&r.Founded, validation.Min(1), validation.Max(9999)),
		validation.Field(&r.Koordinat, validation.By(validCoordinates)),
	)
}

// Site converts a validated payload to the domain type.
func (r SiteRequest) Site() models.Site {
	s := models.Site{
		ID:           r.ID,
		Name:         r.Name,
		Address:      r.Address,
		Region:       r.Region,
		District:     r.District,
		PostalCode:   r.PostalCode,
		Type:         r.Type,
		Religion:     r.Religion,
		OpeningHours: r.OpeningHours,
		Capacity:     r.Capacity,
		Area:         r.Area,
		Architect:    r.Architect,
		Founded:      r.Founded,
		Heritage:     r.Heritage,
		HeritageCode: r.HeritageCode,
		Transport:    r.Transport,
		ImageURL:     r.ImageURL,
		Description:  r.Description,
	}
	if lat, lng, err := format.ParseCoordinates(r.Koordinat); err == nil {
		s.Latitude, s.Longitude = &lat, &lng
	}
	return s
}

// SiteDetail is the single-site response type (aliased from the domain layer).
type SiteDetail = models.SiteDetail

// StatsResponse mirrors models.Stats for swag.
type StatsResponse = models.Stats

// CalendarYearResponse wraps the events of one year.
type CalendarYearResponse struct {
	Success bool           `json:"success" example:"true" validate:"required"`
	Year    int            `json:"year" example:"2026" validate:"required"`
	Events  []models.Event `json:"events" validate:"required"`
}

// CalendarMonthResponse wraps one month grid.
type CalendarMonthResponse struct {
	Success bool          `json:"success" example:"true" validate:"required"`
	Grid    calendar.Grid `json:"grid" validate:"required"`
}

// ExploreResponse is the list view model (aliased from the explore package).
type ExploreResponse = explore.ListPage

// MapResponse is the marker set (aliased from the explore package).
type MapResponse = explore.MapView
