package calendar

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/starford/harmoni/internal/format"
	"github.com/starford/harmoni/internal/models"
	"github.com/starford/harmoni/internal/paging"
)

// UpcomingPageSize is the number of events on one upcoming page.
const UpcomingPageSize = 5

// UpcomingEvent is an event card of the upcoming list.
type UpcomingEvent struct {
	models.Event
	Day   string `json:"day"`
	Month string `json:"month"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// UpcomingPage is one 0-based page of upcoming events.
type UpcomingPage struct {
	Events       []UpcomingEvent `json:"events"`
	Page         int             `json:"page"`
	TotalPages   int             `json:"total_pages"`
	Total        int             `json:"total"`
	PrevDisabled bool            `json:"prev_disabled"`
	NextDisabled bool            `json:"next_disabled"`
	Empty        bool            `json:"empty"`
	Message      string          `json:"message,omitempty"`
}

// UpcomingList returns the events dated today or later, ascending by date.
// Events with the same date keep their input order.
func UpcomingList(events []models.Event, today time.Time) []models.Event {
	cutoff := today.Format(models.DateLayout)
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if _, err := e.Time(); err != nil {
			continue
		}
		if e.Date >= cutoff {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Event) int { return strings.Compare(a.Date, b.Date) })
	return out
}

// Upcoming renders the 0-based page of upcoming events. The page index is
// clamped into range.
func Upcoming(events []models.Event, today time.Time, page, size int) UpcomingPage {
	if size < 1 {
		size = UpcomingPageSize
	}
	list := UpcomingList(events, today)
	total := paging.TotalPages(len(list), size)
	page = paging.ClampIndex(page, total)

	p := UpcomingPage{
		Events:       []UpcomingEvent{},
		Page:         page,
		TotalPages:   total,
		Total:        len(list),
		PrevDisabled: page == 0,
		NextDisabled: total == 0 || page >= total-1,
		Empty:        len(list) == 0,
	}
	if p.Empty {
		p.Message = format.NoUpcomingEvents
		return p
	}
	for _, e := range paging.Slice(list, size, page+1) {
		t, _ := e.Time()
		st := e.Religion.Style()
		p.Events = append(p.Events, UpcomingEvent{
			Event: e,
			Day:   fmt.Sprintf("%02d", t.Day()),
			Month: format.MonthAbbrev(t.Month()),
			Color: st.Color,
			Icon:  st.Icon,
		})
	}
	return p
}
