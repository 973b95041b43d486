package handler

import "github.com/bookledger/library-api/internal/model"

type CreateBookRequest struct {
	Title           string      `json:"title" binding:"required,max=50"`
	PublicationYear *model.Date `json:"publication_year" binding:"required" swaggertype:"string" example:"1866-01-01"`
	Category        string      `json:"category" binding:"required,oneof=Fiction Non-fiction Science History Fantasy"`
	AuthorID        *int64      `json:"author_id"`
}

type UpdateBookRequest struct {
	Title           *string     `json:"title" binding:"omitempty,min=1,max=50"`
	PublicationYear *model.Date `json:"publication_year" swaggertype:"string" example:"1866-01-01"`
	Category        *string     `json:"category" binding:"omitempty,oneof=Fiction Non-fiction Science History Fantasy"`
	AuthorID        *int64      `json:"author_id"`
}

type BookResponse struct {
	BookID          int64          `json:"book_id"`
	Title           string         `json:"title"`
	PublicationYear model.Date     `json:"publication_year" swaggertype:"string" example:"1866-01-01"`
	Category        model.Category `json:"category"`
	AuthorID        *int64         `json:"author_id"`
}

type PaginatedBooksResponse struct {
	Data         []BookResponse `json:"data"`
	Page         int            `json:"page"`
	Limit        int            `json:"limit"`
	TotalPages   int            `json:"total_pages"`
	TotalRecords int64          `json:"total_records"`
}
