// Package paging is the one pagination-cursor implementation shared by every
// resource list, instead of each view carrying its own copy.
package paging

// Cursor tracks the transient list position for one rendered page. PageNo is
// zero-based; the REST client translates to the backend's one-based scheme.
type Cursor struct {
	PageNo     int
	PageSize   int
	TotalPages int
}

// NewCursor clamps the requested page into [0, totalPages-1]. A non-positive
// totalPages counts as a single page so the cursor never goes negative.
func NewCursor(pageNo, pageSize, totalPages int) Cursor {
	c := Cursor{PageNo: pageNo, PageSize: pageSize, TotalPages: totalPages}
	c.clamp()
	return c
}

func (c *Cursor) clamp() {
	if c.TotalPages < 1 {
		c.TotalPages = 1
	}
	if c.PageNo < 0 {
		c.PageNo = 0
	}
	if c.PageNo > c.TotalPages-1 {
		c.PageNo = c.TotalPages - 1
	}
}

// WithTotal re-clamps the cursor once the fetch reports the real page count.
func (c Cursor) WithTotal(totalPages int) Cursor {
	c.TotalPages = totalPages
	c.clamp()
	return c
}

func (c Cursor) HasPrev() bool { return c.PageNo > 0 }
func (c Cursor) HasNext() bool { return c.PageNo+1 < c.TotalPages }

// Prev and Next never navigate outside [0, TotalPages-1].
func (c Cursor) Prev() int {
	if c.HasPrev() {
		return c.PageNo - 1
	}
	return c.PageNo
}

func (c Cursor) Next() int {
	if c.HasNext() {
		return c.PageNo + 1
	}
	return c.PageNo
}

// Pages lists every page number for the jump-to-page buttons.
func (c Cursor) Pages() []int {
	pages := make([]int, c.TotalPages)
	for i := range pages {
		pages[i] = i
	}
	return pages
}
