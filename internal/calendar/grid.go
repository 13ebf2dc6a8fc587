// Package calendar builds the month grid, day details and upcoming-event
// listing of the religious holiday calendar. Every computation takes "today"
// as a parameter.
package calendar

import (
	"time"

	"github.com/starford/harmoni/internal/format"
	"github.com/starford/harmoni/internal/models"
)

// MaxIcons is the number of distinct religion icons drawn on one day cell.
const MaxIcons = 3

// Icon marks a religion present on a day.
type Icon struct {
	Religion models.Religion `json:"agama"`
	Label    string          `json:"label"`
	Color    string          `json:"color"`
	Icon     string          `json:"icon"`
}

func iconFor(r models.Religion) Icon {
	st := r.Style()
	return Icon{Religion: r, Label: r.ShortName(), Color: st.Color, Icon: st.Icon}
}

// Day is one real day cell of the grid.
type Day struct {
	Day        int    `json:"day"`
	Date       string `json:"date"`
	Today      bool   `json:"today"`
	HasEvents  bool   `json:"has_events"`
	EventCount int    `json:"event_count"`
	Icons      []Icon `json:"icons"`
}

// Grid is a month laid out in Sunday-first week columns.
type Grid struct {
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Label   string `json:"label"`
	Leading int    `json:"leading"`
	Days    []Day  `json:"days"`
}

// DaysIn returns the number of days of month in year.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Month lays out month of year. Leading holds the number of empty cells
// before day 1 (Sunday = 0). A day is today when its year, month and day all
// equal those of today.
func Month(year int, month time.Month, today time.Time, events []models.Event) Grid {
	byDate := GroupByDate(events)
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	n := DaysIn(year, month)
	ty, tm, td := today.Date()

	g := Grid{
		Year:    year,
		Month:   int(month),
		Label:   format.MonthLabel(year, month),
		Leading: int(first.Weekday()),
		Days:    make([]Day, n),
	}
	for d := 1; d <= n; d++ {
		date := models.DateString(year, month, d)
		dayEvents := byDate[date]
		g.Days[d-1] = Day{
			Day:        d,
			Date:       date,
			Today:      ty == year && tm == month && td == d,
			HasEvents:  len(dayEvents) > 0,
			EventCount: len(dayEvents),
			Icons:      Icons(dayEvents),
		}
	}
	return g
}

// Icons returns the distinct religions of events in first-seen order, capped
// at MaxIcons.
func Icons(events []models.Event) []Icon {
	out := []Icon{}
	seen := make(map[models.Religion]bool, MaxIcons)
	for _, e := range events {
		if seen[e.Religion] {
			continue
		}
		seen[e.Religion] = true
		out = append(out, iconFor(e.Religion))
		if len(out) == MaxIcons {
			break
		}
	}
	return out
}

// GroupByDate indexes events by their exact date string, keeping input order.
func GroupByDate(events []models.Event) map[string][]models.Event {
	out := make(map[string][]models.Event)
	for _, e := range events {
		out[e.Date] = append(out[e.Date], e)
	}
	return out
}
