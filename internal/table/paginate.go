package table

// Page is one slice of a collection.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// Paginate slices records into the 1-indexed page. The bounds are clamped to
// the collection; a page past the end comes back empty rather than being
// corrected here. Non-positive page sizes fall back to DefaultPageSize.
func Paginate[T any](records []T, page, pageSize int) Page[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := len(records)
	result := Page[T]{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: total / pageSize,
	}
	if total%pageSize != 0 {
		result.TotalPages++
	}

	// out-of-range pages are rejected before any multiplication can overflow
	if page < 1 || page > result.TotalPages {
		result.Items = []T{}
		return result
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	result.Items = make([]T, end-start)
	copy(result.Items, records[start:end])
	return result
}
