package listing

// DefaultPageSize is used whenever a non-positive page size is requested.
const DefaultPageSize = 10

// Page is one window of an ordered collection plus the metadata a pager needs.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// TotalPages returns ceil(total/size); 0 for an empty collection.
func TotalPages(total, size int) int {
	if size < 1 {
		size = DefaultPageSize
	}
	if total <= 0 {
		return 0
	}
	return (total-1)/size + 1
}

// Paginate returns the slice [(page-1)*size, page*size) clamped to the
// collection bounds. Pages below 1 are clamped to 1; a page past the end
// yields an empty, non-nil Items slice.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size < 1 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	total := len(items)
	p := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: TotalPages(total, size),
	}
	// Compare page numbers rather than offsets so huge pages cannot overflow.
	if page > p.TotalPages {
		return p
	}
	start := (page - 1) * size
	end := start + min(size, total-start)
	p.Items = append(p.Items, items[start:end]...)
	return p
}

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }

// HasPrev reports whether a page precedes this one.
func (p Page[T]) HasPrev() bool { return p.Page > 1 }
