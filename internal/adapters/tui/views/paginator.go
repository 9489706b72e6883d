package views

// Paginator tracks a cursor and page window over a flat list of plan
// entries. The cursor is an absolute index; the page window follows it.
type Paginator struct {
	pageSize int
	offset   int // absolute index of the first visible entry
	cursor   int
	total    int
}

// NewPaginator returns a paginator showing pageSize entries per page.
func NewPaginator(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Paginator{pageSize: pageSize}
}

// SetTotal records the entry count, clamping the cursor when the list
// shrank under it.
func (p *Paginator) SetTotal(total int) {
	p.total = total
	if p.cursor >= total {
		p.cursor = total - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	p.snapPage()
}

// Cursor returns the absolute index of the selected entry.
func (p *Paginator) Cursor() int {
	return p.cursor
}

// CursorUp moves the selection up one entry, reporting whether it moved.
func (p *Paginator) CursorUp() bool {
	if p.cursor == 0 {
		return false
	}
	p.cursor--
	p.snapPage()
	return true
}

// CursorDown moves the selection down one entry, reporting whether it moved.
func (p *Paginator) CursorDown() bool {
	if p.cursor >= p.total-1 {
		return false
	}
	p.cursor++
	p.snapPage()
	return true
}

// VisibleRange returns the half-open [start, end) slice bounds of the
// current page.
func (p *Paginator) VisibleRange() (start, end int) {
	return p.offset, min(p.offset+p.pageSize, p.total)
}

// TotalPages returns the page count; an empty list still has one page.
func (p *Paginator) TotalPages() int {
	if p.total == 0 {
		return 1
	}
	return (p.total + p.pageSize - 1) / p.pageSize
}

// CurrentPage returns the 1-based page number.
func (p *Paginator) CurrentPage() int {
	return p.offset/p.pageSize + 1
}

// NextPage advances a full page, placing the cursor on its first entry.
func (p *Paginator) NextPage() bool {
	if p.offset+p.pageSize >= p.total {
		return false
	}
	p.offset += p.pageSize
	p.cursor = p.offset
	return true
}

// PrevPage goes back a full page, placing the cursor on its first entry.
func (p *Paginator) PrevPage() bool {
	if p.offset == 0 {
		return false
	}
	p.offset -= p.pageSize
	if p.offset < 0 {
		p.offset = 0
	}
	p.cursor = p.offset
	return true
}

// Reset clears the cursor, page, and entry count.
func (p *Paginator) Reset() {
	p.cursor = 0
	p.offset = 0
	p.total = 0
}

// snapPage moves the page window to whichever page holds the cursor.
func (p *Paginator) snapPage() {
	if p.cursor < p.offset || p.cursor >= p.offset+p.pageSize {
		p.offset = (p.cursor / p.pageSize) * p.pageSize
	}
}
