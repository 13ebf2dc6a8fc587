package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of an event date.
const DateLayout = "2006-01-02"

// Event is a religious holiday or celebration on a single calendar day.
type Event struct {
	Date     string   `json:"date" yaml:"date"`
	Title    string   `json:"title" yaml:"title"`
	Location string   `json:"location" yaml:"location"`
	Religion Religion `json:"agama" yaml:"agama"`
}

// Time parses the event date at midnight UTC.
func (e Event) Time() (time.Time, error) {
	return time.Parse(DateLayout, e.Date)
}

// InYear reports whether the event date falls in year.
func (e Event) InYear(year int) bool {
	return strings.HasPrefix(e.Date, fmt.Sprintf("%04d-", year))
}

// DateString formats a calendar day the way events are keyed.
func DateString(year int, month time.Month, day int) string {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(DateLayout)
}
