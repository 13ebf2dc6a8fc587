package calendar

import (
	"fmt"
	"time"

	"github.com/starford/harmoni/internal/apperr"
	"github.com/starford/harmoni/internal/format"
	"github.com/starford/harmoni/internal/models"
)

// DayEvent is an event annotated with its religion color and icon.
type DayEvent struct {
	models.Event
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// DayDetail lists every event of a single date.
type DayDetail struct {
	Date   string     `json:"date"`
	Title  string     `json:"title"`
	Events []DayEvent `json:"events"`
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar: parse date %q: %w", s, apperr.ErrInvalid)
	}
	return t, nil
}

// DayEvents collects all events whose date equals date exactly. None of the
// display caps of the grid apply.
func DayEvents(events []models.Event, date string) (DayDetail, error) {
	t, err := ParseDate(date)
	if err != nil {
		return DayDetail{}, err
	}
	d := DayDetail{Date: date, Title: format.LongDate(t), Events: []DayEvent{}}
	for _, e := range events {
		if e.Date != date {
			continue
		}
		st := e.Religion.Style()
		d.Events = append(d.Events, DayEvent{Event: e, Color: st.Color, Icon: st.Icon})
	}
	return d, nil
}
