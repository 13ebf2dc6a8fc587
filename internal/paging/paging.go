// Package paging slices ordered lists into fixed-size pages and lays out the
// page buttons shown under a list.
package paging

// TotalPages returns ceil(n/size). A non-positive size counts as one item per page.
func TotalPages(n, size int) int {
	if n <= 0 {
		return 0
	}
	if size < 1 {
		size = 1
	}
	return (n + size - 1) / size
}

// Slice returns the items of the 1-based page. Pages outside [1, TotalPages]
// yield nil.
func Slice[T any](items []T, size, page int) []T {
	if size < 1 {
		size = 1
	}
	if page < 1 || page > TotalPages(len(items), size) {
		return nil
	}
	start := (page - 1) * size
	end := min(start+size, len(items))
	return items[start:end]
}

// Cursor tracks the current 1-based page of a list whose length may change.
type Cursor struct {
	size  int
	count int
	page  int
}

// NewCursor creates a cursor on page 1.
func NewCursor(size int) *Cursor {
	if size < 1 {
		size = 1
	}
	return &Cursor{size: size, page: 1}
}

// Page returns the current page.
func (c *Cursor) Page() int { return c.page }

// Size returns the page size.
func (c *Cursor) Size() int { return c.size }

// TotalPages returns the page count for the current item count.
func (c *Cursor) TotalPages() int { return TotalPages(c.count, c.size) }

// SetCount records the length of the list being paged without moving the cursor.
func (c *Cursor) SetCount(n int) { c.count = n }

// Reset moves back to page 1.
func (c *Cursor) Reset() { c.page = 1 }

// GoTo moves to page and reports whether it did. Pages outside
// [1, TotalPages] leave the cursor where it was.
func (c *Cursor) GoTo(page int) bool {
	if page < 1 || page > c.TotalPages() {
		return false
	}
	c.page = page
	return true
}

// Button is one entry in the page control. Ellipsis entries carry no page.
type Button struct {
	Page     int  `json:"page,omitempty"`
	Active   bool `json:"active,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// Controls is the rendered page control.
type Controls struct {
	Current      int      `json:"current"`
	TotalPages   int      `json:"total_pages"`
	PrevDisabled bool     `json:"prev_disabled"`
	NextDisabled bool     `json:"next_disabled"`
	Buttons      []Button `json:"buttons"`
}

// Buttons lays out the control for current of total pages: first and last
// page, current and its neighbours, and a single ellipsis for each gap.
// It returns nil when there is at most one page.
func Buttons(current, total int) *Controls {
	if total <= 1 {
		return nil
	}
	c := &Controls{
		Current:      current,
		TotalPages:   total,
		PrevDisabled: current <= 1,
		NextDisabled: current >= total,
	}
	for i := 1; i <= total; i++ {
		switch {
		case i == 1 || i == total || (i >= current-1 && i <= current+1):
			c.Buttons = append(c.Buttons, Button{Page: i, Active: i == current})
		case i == current-2 || i == current+2:
			c.Buttons = append(c.Buttons, Button{Ellipsis: true})
		}
	}
	return c
}
