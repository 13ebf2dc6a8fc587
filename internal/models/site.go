// Package models defines the domain types for harmoni.
package models

import "github.com/paulmach/orb"

// Religion is one of the six officially recognised religions a site belongs to.
type Religion string

const (
	Islam            Religion = "Islam"
	Katolik          Religion = "Katolik"
	KristenProtestan Religion = "KristenProtestan"
	Buddha           Religion = "Buddha"
	Hindu            Religion = "Hindu"
	Konghucu         Religion = "Konghucu"
)

// Religions lists every Religion in display order.
var Religions = []Religion{Islam, Katolik, KristenProtestan, Buddha, Hindu, Konghucu}

// Valid reports whether r is a known religion.
func (r Religion) Valid() bool {
	switch r {
	case Islam, Katolik, KristenProtestan, Buddha, Hindu, Konghucu:
		return true
	}
	return false
}

// Style is the color and icon pair used when rendering a religion.
type Style struct {
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// Fallback style for values outside the enumeration.
var defaultStyle = Style{Color: "#1a3a5c", Icon: "fa-calendar"}

// Style returns the color/icon mapping used by the calendar and map views.
func (r Religion) Style() Style {
	switch r {
	case Islam:
		return Style{Color: "#2ecc71", Icon: "fa-mosque"}
	case Katolik:
		return Style{Color: "#e74c3c", Icon: "fa-church"}
	case KristenProtestan:
		return Style{Color: "#3498db", Icon: "fa-church"}
	case Buddha:
		return Style{Color: "#f39c12", Icon: "fa-vihara"}
	case Hindu:
		return Style{Color: "#9b59b6", Icon: "fa-om"}
	case Konghucu:
		return Style{Color: "#e67e22", Icon: "fa-vihara"}
	}
	return defaultStyle
}

// DisplayName returns the human readable name used on the list and detail pages.
// Unknown values are returned verbatim.
func (r Religion) DisplayName() string {
	switch r {
	case Islam:
		return "Islam"
	case Katolik:
		return "Kristen Katolik"
	case KristenProtestan:
		return "Kristen Protestan"
	case Buddha:
		return "Buddha"
	case Hindu:
		return "Hindu"
	case Konghucu:
		return "Konghucu"
	}
	return string(r)
}

// ShortName is the label used on calendar icons ("Katolik" rather than "Kristen Katolik").
func (r Religion) ShortName() string {
	if r == KristenProtestan {
		return "Kristen Protestan"
	}
	return string(r)
}

// CelebrationTags returns the recurring celebrations shown on a site's detail page.
func (r Religion) CelebrationTags() []string {
	switch r {
	case Islam:
		return []string{"Shalat Idul Fitri Kenegaraan", "Pengajian Akbar Bulanan", "Shalat Idul Adha Kenegaraan"}
	case Katolik:
		return []string{"Misa Natal", "Misa Paskah", "Misa Tahun Baru"}
	case KristenProtestan:
		return []string{"Kebaktian Natal", "Kebaktian Paskah", "Perayaan Hari Reformasi"}
	case Buddha:
		return []string{"Perayaan Waisak", "Meditasi Bulanan", "Kathina"}
	case Hindu:
		return []string{"Perayaan Nyepi", "Galungan", "Kuningan"}
	case Konghucu:
		return []string{"Imlek", "Cap Go Meh", "Sembahyang Leluhur"}
	}
	return []string{"Tidak ada data acara"}
}

// PlaceType is the category of a place of worship.
type PlaceType string

const (
	Mosque PlaceType = "Mosque"
	Church PlaceType = "Church"
	Vihara PlaceType = "Vihara"
	Temple PlaceType = "Temple"
)

// PlaceTypes lists every PlaceType.
var PlaceTypes = []PlaceType{Mosque, Church, Vihara, Temple}

// Valid reports whether t is a known place type.
func (t PlaceType) Valid() bool {
	switch t {
	case Mosque, Church, Vihara, Temple:
		return true
	}
	return false
}

// Icon returns the marker/badge icon class.
func (t PlaceType) Icon() string {
	switch t {
	case Mosque:
		return "fa-mosque"
	case Church:
		return "fa-church"
	case Vihara:
		return "fa-vihara"
	case Temple:
		return "fa-om"
	}
	return "fa-place-of-worship"
}

// DefaultImage returns the stock photo used when a site has no image. Unknown
// types use the mosque photo.
func (t PlaceType) DefaultImage() string {
	switch t {
	case Church:
		return "https://images.unsplash.com/photo-1548625149-fc4a29cf7092?w=400"
	case Vihara:
		return "https://images.unsplash.com/photo-1545569341-9eb8b30979d9?w=400"
	case Temple:
		return "https://images.unsplash.com/photo-1600100231128-f5c5b07fa67a?w=400"
	}
	return "https://images.unsplash.com/photo-1564769625905-50e93615e769?w=400"
}

// Site is a place of worship.
type Site struct {
	ID           string    `json:"id"`
	Name         string    `json:"nama"`
	Address      string    `json:"alamat"`
	Region       string    `json:"wilayah"`
	District     string    `json:"kecamatan"`
	PostalCode   string    `json:"kode_pos"`
	Type         PlaceType `json:"tipe"`
	Religion     Religion  `json:"agama"`
	OpeningHours string    `json:"jam_buka"`
	Capacity     *int      `json:"kapasitas"`
	Area         string    `json:"luas"`
	Architect    string    `json:"arsitek"`
	// Founded is nil when the founding year is unknown.
	Founded      *int      `json:"tahun"`
	Heritage     bool      `json:"is_heritage"`
	HeritageCode string    `json:"heritage_code"`
	Transport    string    `json:"transport_terdekat"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	ImageURL     string    `json:"gambar_url"`
	Description  string    `json:"deskripsi"`
}

// Point returns the site location, or false when coordinates are missing.
func (s *Site) Point() (orb.Point, bool) {
	if s.Latitude == nil || s.Longitude == nil {
		return orb.Point{}, false
	}
	return orb.Point{*s.Longitude, *s.Latitude}, true
}

// FoundedOr returns the founding year or def when unknown.
func (s *Site) FoundedOr(def int) int {
	if s.Founded == nil {
		return def
	}
	return *s.Founded
}

// SiteDetail is the single-site payload; it reports the founding year as tahun_berdiri.
type SiteDetail struct {
	ID           string    `json:"id"`
	Name         string    `json:"nama"`
	Address      string    `json:"alamat"`
	Region       string    `json:"wilayah"`
	District     string    `json:"kecamatan"`
	PostalCode   string    `json:"kode_pos"`
	Type         PlaceType `json:"tipe"`
	Religion     Religion  `json:"agama"`
	OpeningHours string    `json:"jam_buka"`
	Capacity     *int      `json:"kapasitas"`
	Area         string    `json:"luas"`
	Architect    string    `json:"arsitek"`
	Founded      *int      `json:"tahun_berdiri"`
	Heritage     bool      `json:"is_heritage"`
	HeritageCode string    `json:"heritage_code"`
	Transport    string    `json:"transport_terdekat"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	ImageURL     string    `json:"gambar_url"`
	Description  string    `json:"deskripsi"`
}

// Detail converts a Site to its detail payload.
func (s *Site) Detail() SiteDetail {
	return SiteDetail(*s)
}

// Site converts a detail payload back to a Site.
func (d SiteDetail) Site() Site {
	return Site(d)
}

// Stats summarises the directory.
type Stats struct {
	TotalSites    int `json:"total_sites"`
	TotalHeritage int `json:"total_heritage"`
}
