package format

import (
	"errors"
	"strconv"
	"strings"

	"github.com/starford/harmoni/internal/models"
)

// ErrCoordinates is returned when a "lat, lng" string cannot be parsed.
var ErrCoordinates = errors.New("format: invalid coordinates")

// FullAddress joins the street address with the spaced district, spaced region
// and "DKI Jakarta <postal code>", skipping missing parts.
func FullAddress(s *models.Site) string {
	parts := []string{s.Address}
	if present(s.District) {
		parts = append(parts, LocationName(s.District))
	}
	if present(s.Region) {
		parts = append(parts, LocationName(s.Region))
	}
	if present(s.PostalCode) {
		parts = append(parts, "DKI Jakarta "+s.PostalCode)
	}
	return strings.Join(parts, ", ")
}

// TransportCard is one entry of the nearest-transport list.
type TransportCard struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Distance string `json:"distance"`
}

// Transports splits a semicolon-delimited transport description into cards.
// An empty description or the literal "Tidak ada data" yields nil.
func Transports(s string) []TransportCard {
	if s == "" || s == "Tidak ada data" {
		return nil
	}
	var out []TransportCard
	for _, item := range strings.Split(s, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, TransportCard{Name: item, Icon: transportIcon(item), Distance: TransportDistance})
	}
	return out
}

func transportIcon(item string) string {
	l := strings.ToLower(item)
	switch {
	case strings.Contains(l, "stasiun"), strings.Contains(l, "krl"), strings.Contains(l, "mrt"):
		return "fa-train"
	case strings.Contains(l, "halte"):
		return "fa-bus-alt"
	}
	return "fa-bus"
}

// GoogleMapsURL links to the external map search for a coordinate pair.
func GoogleMapsURL(lat, lng float64) string {
	return "https://www.google.com/maps/search/?api=1&query=" + coord(lat) + "," + coord(lng)
}

func coord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseCoordinates parses the admin form's combined "lat, lng" field.
// Whitespace is ignored and extra components after the second are dropped.
func ParseCoordinates(s string) (lat, lng float64, err error) {
	parts := strings.Split(strings.ReplaceAll(s, " ", ""), ",")
	if len(parts) < 2 {
		return 0, 0, ErrCoordinates
	}
	lat, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, ErrCoordinates
	}
	lng, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, ErrCoordinates
	}
	return lat, lng, nil
}
