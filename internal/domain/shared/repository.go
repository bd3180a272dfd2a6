package shared

// ListOptions controls ordering and paging of list queries.
// Sort is "asc" or "desc". A zero PageSize means no paging.
type ListOptions struct {
	OrderBy  string
	Sort     string
	Page     int
	PageSize int
}

// DefaultListOptions returns the ordering used when a caller has no preference
func DefaultListOptions() ListOptions {
	return ListOptions{
		OrderBy: "id",
		Sort:    "desc",
	}
}

// Offset returns the row offset for the current page
func (o ListOptions) Offset() int {
	if o.Page <= 1 || o.PageSize <= 0 {
		return 0
	}
	return (o.Page - 1) * o.PageSize
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := 1
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
