package paging

// Offset is a 0-based page index with clamped previous/next navigation.
type Offset struct {
	index int
}

// Index returns the current 0-based page.
func (o *Offset) Index() int { return o.index }

// Reset moves back to the first page.
func (o *Offset) Reset() { o.index = 0 }

// Prev moves one page back unless already on the first page.
func (o *Offset) Prev() bool {
	if o.index == 0 {
		return false
	}
	o.index--
	return true
}

// Next moves one page forward unless already on the last of total pages.
func (o *Offset) Next(total int) bool {
	if o.index >= total-1 {
		return false
	}
	o.index++
	return true
}

// Clamp pulls the index back inside [0, total-1].
func (o *Offset) Clamp(total int) {
	o.index = ClampIndex(o.index, total)
}

// ClampIndex returns index limited to [0, total-1], or 0 when there are no pages.
func ClampIndex(index, total int) int {
	if index >= total {
		index = total - 1
	}
	return max(index, 0)
}
