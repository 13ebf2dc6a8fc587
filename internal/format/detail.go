package format

import "github.com/starford/harmoni/internal/models"

// DetailView is the rendered detail page of a single site.
type DetailView struct {
	ID            string          `json:"id"`
	Name          string          `json:"nama"`
	HeroImage     string          `json:"hero_image"`
	Address       string          `json:"alamat_lengkap"`
	Hours         string          `json:"jam_buka"`
	Capacity      string          `json:"kapasitas"`
	Area          string          `json:"luas"`
	Architect     string          `json:"arsitek"`
	Year          string          `json:"tahun_berdiri"`
	Religion      string          `json:"agama"`
	ReligionColor string          `json:"warna"`
	TypeIcon      string          `json:"ikon"`
	Heritage      bool            `json:"is_heritage"`
	HeritageCode  string          `json:"heritage_code"`
	Transports    []TransportCard `json:"transport"`
	TransportNote string          `json:"transport_note,omitempty"`
	EventTags     []string        `json:"acara"`
	Description   string          `json:"deskripsi"`
	MapsURL       string          `json:"google_maps_url,omitempty"`
	Found         bool            `json:"found"`
}

// Detail renders a site for the detail page.
func Detail(d *models.SiteDetail) DetailView {
	site := d.Site()
	v := DetailView{
		ID:            d.ID,
		Name:          d.Name,
		HeroImage:     d.ImageURL,
		Address:       FullAddress(&site),
		Hours:         OrPlaceholder(d.OpeningHours),
		Capacity:      Capacity(d.Capacity),
		Area:          OrPlaceholder(d.Area),
		Architect:     OrPlaceholder(d.Architect),
		Year:          Year(d.Founded),
		Religion:      d.Religion.DisplayName(),
		ReligionColor: d.Religion.Style().Color,
		TypeIcon:      d.Type.Icon(),
		Heritage:      d.Heritage,
		HeritageCode:  d.HeritageCode,
		Transports:    Transports(d.Transport),
		EventTags:     d.Religion.CelebrationTags(),
		Description:   Description(d.Description),
		Found:         true,
	}
	if v.HeroImage == "" {
		v.HeroImage = HeroImage
	}
	if len(v.Transports) == 0 {
		v.Transports = []TransportCard{}
		v.TransportNote = NoTransport
	}
	if p, ok := site.Point(); ok {
		v.MapsURL = GoogleMapsURL(p.Lat(), p.Lon())
	}
	return v
}

// NotFoundDetail is the placeholder shown when a site cannot be loaded.
func NotFoundDetail() DetailView {
	return DetailView{
		Name:       NotFound,
		HeroImage:  HeroImage,
		Transports: []TransportCard{},
		EventTags:  []string{},
	}
}
