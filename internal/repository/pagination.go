package repository

// Page is one page of a listing plus the bookkeeping callers echo back.
type Page[T any] struct {
	Data         []T
	Page         int
	Limit        int
	TotalPages   int
	TotalRecords int64
}

// NewPage computes TotalPages = ceil(total/limit), floored at 1 so an
// empty table still reports a single (empty) page.
func NewPage[T any](data []T, page, limit int, total int64) Page[T] {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}

	if data == nil {
		data = []T{}
	}

	return Page[T]{
		Data:         data,
		Page:         page,
		Limit:        limit,
		TotalPages:   totalPages,
		TotalRecords: total,
	}
}

func offsetFor(page, limit int) int {
	return (page - 1) * limit
}
