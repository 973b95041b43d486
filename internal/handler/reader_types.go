package handler

type CreateReaderRequest struct {
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name" binding:"required,max=50"`
	Email     string `json:"email" binding:"required,email,max=255"`
}

type UpdateReaderRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=50"`
	LastName  *string `json:"last_name" binding:"omitempty,min=1,max=50"`
	Email     *string `json:"email" binding:"omitempty,email,max=255"`
}

// ReaderResponse carries the eagerly loaded book list; single-reader
// reads and the borrow operations always include it.
type ReaderResponse struct {
	ReaderID  int64          `json:"reader_id"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Email     string         `json:"email"`
	Books     []BookResponse `json:"books"`
}

// ReaderSummary is the lighter projection used in paginated listings.
type ReaderSummary struct {
	ReaderID  int64  `json:"reader_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type PaginatedReadersResponse struct {
	Data         []ReaderSummary `json:"data"`
	Page         int             `json:"page"`
	Limit        int             `json:"limit"`
	TotalPages   int             `json:"total_pages"`
	TotalRecords int64           `json:"total_records"`
}
