package handler

import "github.com/bookledger/library-api/internal/model"

type CreateAuthorRequest struct {
	FirstName   string `json:"first_name" binding:"required,max=50"`
	LastName    string `json:"last_name" binding:"required,max=50"`
	Nationality string `json:"nationality" binding:"required,oneof=Russian American British French German"`
}

type UpdateAuthorRequest struct {
	FirstName   *string `json:"first_name" binding:"omitempty,min=1,max=50"`
	LastName    *string `json:"last_name" binding:"omitempty,min=1,max=50"`
	Nationality *string `json:"nationality" binding:"omitempty,oneof=Russian American British French German"`
}

type AuthorResponse struct {
	AuthorID    int64             `json:"author_id"`
	FirstName   string            `json:"first_name"`
	LastName    string            `json:"last_name"`
	Nationality model.Nationality `json:"nationality"`
}

type PaginatedAuthorsResponse struct {
	Data         []AuthorResponse `json:"data"`
	Page         int              `json:"page"`
	Limit        int              `json:"limit"`
	TotalPages   int              `json:"total_pages"`
	TotalRecords int64            `json:"total_records"`
}
