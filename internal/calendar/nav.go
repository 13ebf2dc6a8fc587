package calendar

import (
	"time"

	"github.com/starford/harmoni/internal/format"
)

// Navigator is the month currently shown by the calendar.
type Navigator struct {
	Year  int
	Month time.Month
}

// NavigatorAt starts on the month containing t.
func NavigatorAt(t time.Time) Navigator {
	return Navigator{Year: t.Year(), Month: t.Month()}
}

// Prev steps one month back, wrapping January to December of the previous
// year. It reports whether the year changed.
func (n *Navigator) Prev() bool {
	if n.Month == time.January {
		n.Month = time.December
		n.Year--
		return true
	}
	n.Month--
	return false
}

// Next steps one month forward, wrapping December to January of the next
// year. It reports whether the year changed.
func (n *Navigator) Next() bool {
	if n.Month == time.December {
		n.Month = time.January
		n.Year++
		return true
	}
	n.Month++
	return false
}

// Label returns the header text, e.g. "Februari 2026".
func (n Navigator) Label() string {
	return format.MonthLabel(n.Year, n.Month)
}
