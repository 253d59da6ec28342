package utils

// Pagination defaults shared by all collection endpoints.
const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// PageInfo describes the position of a page within a collection.
type PageInfo struct {
	// Page is the current page number, 1-indexed.
	Page int `json:"page"`
	// PageSize is the requested number of items per page.
	PageSize int `json:"page_size"`
	// HasNext indicates more items exist after this page.
	HasNext bool `json:"has_next"`
	// HasPrev indicates items exist before this page.
	HasPrev bool `json:"has_prev"`
}

// ClampPage sanitizes raw skip/limit query values.
func ClampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return skip, limit
}

// Paginate slices items to the [skip, skip+limit) window and computes the
// page metadata over the full length. The returned slice length is always
// min(limit, max(0, len(items)-skip)).
func Paginate[T any](items []T, skip, limit int) ([]T, PageInfo) {
	skip, limit = ClampPage(skip, limit)
	total := len(items)

	start := skip
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	info := PageInfo{
		Page:     (skip / limit) + 1,
		PageSize: limit,
		HasNext:  skip+limit < total,
		HasPrev:  skip > 0,
	}
	return items[start:end], info
}
