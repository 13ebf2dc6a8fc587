package calendar

import (
	"slices"
	"strings"
	"time"

	"github.com/starford/harmoni/internal/models"
)

const cathedral = "Gereja Katedral Jakarta"

// Holidays returns the Christian feasts of year that can be computed: Jumat
// Agung, Paskah, Kenaikan Isa Almasih and Natal.
func Holidays(year int) []models.Event {
	easter := Easter(year)
	feast := func(t time.Time, title string) models.Event {
		return models.Event{
			Date:     t.Format(models.DateLayout),
			Title:    title,
			Location: cathedral,
			Religion: models.Katolik,
		}
	}
	return []models.Event{
		feast(easter.AddDate(0, 0, -2), "Jumat Agung"),
		feast(easter, "Paskah"),
		feast(easter.AddDate(0, 0, 39), "Kenaikan Isa Almasih"),
		feast(time.Date(year, time.December, 25, 12, 0, 0, 0, time.UTC), "Natal"),
	}
}

// Easter returns Easter Sunday of year (Meeus/Jones/Butcher), at noon UTC.
func Easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
}

// Merge adds the computed events to events, skipping any whose date and
// religion are already covered, and returns the result ordered by date.
func Merge(events, computed []models.Event) []models.Event {
	type key struct {
		date     string
		religion models.Religion
	}
	seen := make(map[key]bool, len(events))
	out := make([]models.Event, 0, len(events)+len(computed))
	for _, e := range events {
		seen[key{e.Date, e.Religion}] = true
		out = append(out, e)
	}
	for _, e := range computed {
		k := key{e.Date, e.Religion}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	slices.SortStableFunc(out, func(a, b models.Event) int { return strings.Compare(a.Date, b.Date) })
	return out
}
