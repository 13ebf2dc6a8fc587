package calendar

import "github.com/starford/harmoni/internal/models"

var fallbackEvents = []models.Event{
	{Date: "2026-01-27", Title: "Isra Mi'raj 1447 H", Location: "Masjid Istiqlal", Religion: models.Islam},
	{Date: "2026-02-17", Title: "Tahun Baru Imlek 2577", Location: "Vihara Sin Tek Bio", Religion: models.Konghucu},
	{Date: "2026-02-18", Title: "Awal Ramadan 1447 H", Location: "Masjid Istiqlal", Religion: models.Islam},
	{Date: "2026-03-19", Title: "Idul Fitri 1447 H", Location: "Masjid Istiqlal", Religion: models.Islam},
	{Date: "2026-04-05", Title: "Paskah", Location: "Gereja Katedral Jakarta", Religion: models.Katolik},
	{Date: "2026-12-25", Title: "Perayaan Natal", Location: "Gereja Katedral Jakarta", Religion: models.Katolik},
}

// Fallback returns the built-in events of year, used when the calendar
// endpoint cannot be reached.
func Fallback(year int) []models.Event {
	return ForYear(fallbackEvents, year)
}

// ForYear returns the events dated in year, in input order.
func ForYear(events []models.Event, year int) []models.Event {
	out := []models.Event{}
	for _, e := range events {
		if e.InYear(year) {
			out = append(out, e)
		}
	}
	return out
}
