// Package pagination computes page windows for the paginated JSON tables.
package pagination

// DefaultSize is the number of rows per page used when none is configured.
const DefaultSize = 10

// Page describes one window over a result set of Total rows.
// Number is 1-based and always lies within [1, NumPages].
type Page struct {
	Number   int
	Size     int
	NumPages int
	Total    int
}

// New clamps the requested page number onto the available pages. Requests
// below the first page yield the first page and requests past the end yield
// the last one. An empty result set still has a single (empty) page.
func New(requested, size, total int) Page {
	if size <= 0 {
		size = DefaultSize
	}
	if total < 0 {
		total = 0
	}
	numPages := (total + size - 1) / size
	if numPages < 1 {
		numPages = 1
	}
	number := requested
	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	return Page{Number: number, Size: size, NumPages: numPages, Total: total}
}

// Offset is the number of rows preceding the page.
func (p Page) Offset() int { return (p.Number - 1) * p.Size }

// HasNext reports whether a page follows this one.
func (p Page) HasNext() bool { return p.Number < p.NumPages }

// HasPrevious reports whether a page precedes this one.
func (p Page) HasPrevious() bool { return p.Number > 1 }

// Slice returns the part of items that falls into the page. It is used when
// the whole result set is already in memory.
func Slice[T any](items []T, p Page) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Size
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}
