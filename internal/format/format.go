// Package format holds the display formatters shared by the list, detail, map
// and calendar views.
package format

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder is rendered for missing optional fields.
const Placeholder = "-"

// User-facing fallback texts.
const (
	NotFound          = "Data Tidak Ditemukan"
	NoDescription     = "Tidak ada deskripsi yang tersedia untuk tempat ibadah ini."
	NoTransport       = "Tidak ada data transportasi"
	NoUpcomingEvents  = "Tidak ada acara mendatang"
	TransportDistance = "Jarak ± 500m"
)

// Fallback images for the detail hero and the map popup.
const (
	HeroImage  = "https://images.unsplash.com/photo-1564769625905-50e93615e769?w=1200"
	PopupImage = "https://via.placeholder.com/400x200?text=No+Image"
)

var months = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// MonthName returns the Indonesian name of m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return months[m-1]
}

// MonthAbbrev returns the upper-cased three letter month label used on event cards.
func MonthAbbrev(m time.Month) string {
	name := MonthName(m)
	if len(name) < 3 {
		return name
	}
	return strings.ToUpper(name[:3])
}

// MonthLabel formats a calendar header such as "Februari 2026".
func MonthLabel(year int, m time.Month) string {
	return MonthName(m) + " " + strconv.Itoa(year)
}

// LongDate formats t as "17 Februari 2026".
func LongDate(t time.Time) string {
	return strconv.Itoa(t.Day()) + " " + MonthName(t.Month()) + " " + strconv.Itoa(t.Year())
}

// Number formats n with Indonesian digit grouping ("200.000").
func Number(n int) string {
	return message.NewPrinter(language.Indonesian).Sprintf("%d", n)
}

// Capacity renders an optional capacity; nil and zero are shown as a placeholder.
func Capacity(n *int) string {
	if n == nil || *n == 0 {
		return Placeholder
	}
	return Number(*n)
}

// Year renders an optional founding year.
func Year(y *int) string {
	if y == nil || *y == 0 {
		return Placeholder
	}
	return strconv.Itoa(*y)
}

// OrPlaceholder returns s, or the placeholder when s is blank.
func OrPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

func present(s string) bool {
	return s != "" && s != Placeholder
}

// LocationName turns a camel-cased identifier such as "JakartaPusat" into
// "Jakarta Pusat".
func LocationName(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Description returns the site description or the standard fallback sentence.
func Description(s string) string {
	if !present(s) {
		return NoDescription
	}
	return s
}
