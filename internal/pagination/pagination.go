// Package pagination slices ordered sequences into pages for the list
// endpoints.
package pagination

const (
	// DefaultPageSize is used when a request omits pageSize or sends a
	// non-positive value.
	DefaultPageSize = 10
	// MaxPageSize caps how much a single page may return.
	MaxPageSize = 100
)

// Request carries the page selection of a list call.
type Request struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Normalize clamps the request into a usable range: page floors at 1,
// a non-positive or absent pageSize falls back to the default, and
// oversized pages are capped.
func (r Request) Normalize() Request {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize <= 0 {
		r.PageSize = DefaultPageSize
	}
	if r.PageSize > MaxPageSize {
		r.PageSize = MaxPageSize
	}
	return r
}

// Slice returns the contiguous page [(page-1)*size, page*size) of items
// together with the total length. Out-of-range pages yield an empty,
// non-nil slice.
func Slice[T any](items []T, req Request) ([]T, int) {
	req = req.Normalize()
	total := len(items)

	start := (req.Page - 1) * req.PageSize
	if start >= total {
		return []T{}, total
	}
	end := start + req.PageSize
	if end > total {
		end = total
	}
	page := make([]T, end-start)
	copy(page, items[start:end])
	return page, total
}
