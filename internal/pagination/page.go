// Package pagination computes page windows for listing endpoints.
package pagination

// DefaultPageSize is used when a request does not specify a size
const DefaultPageSize = 20

// Page describes one window of a paged listing
type Page struct {
	Number     int `json:"number"`
	Size       int `json:"size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// New computes a Page, clamping the page number into the valid range.
// Page numbers are 1-based.
func New(number, size, totalItems int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	totalPages := (totalItems + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}
	return Page{
		Number:     number,
		Size:       size,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Offset returns the index of the first item on the page
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Bounds returns the [start, end) item indexes for slicing a full listing
func (p Page) Bounds() (int, int) {
	start := p.Offset()
	end := start + p.Size
	if start > p.TotalItems {
		start = p.TotalItems
	}
	if end > p.TotalItems {
		end = p.TotalItems
	}
	return start, end
}
