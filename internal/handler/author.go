package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookledger/library-api/internal/cache"
	"github.com/bookledger/library-api/internal/model"
	"github.com/bookledger/library-api/internal/repository"
	"github.com/bookledger/library-api/internal/validation"
)

type AuthorHandler struct {
	repo  repository.AuthorRepository
	cache cache.Store
}

func NewAuthorHandler(repo repository.AuthorRepository, store cache.Store) *AuthorHandler {
	return &AuthorHandler{repo: repo, cache: store}
}

func (h *AuthorHandler) RegisterRoutes(r *gin.RouterGroup) {
	authors := r.Group("/authors")
	{
		authors.POST("/create", h.CreateAuthor)
		authors.GET("", h.ListAuthors)
		authors.GET("/:author_id", h.GetAuthorByID)
		authors.PUT("/:author_id", h.UpdateAuthor)
		authors.DELETE("/:author_id", h.DeleteAuthor)
	}
}

// CreateAuthor godoc
// @Summary      Create an author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateAuthorRequest        true  "Author to create"
// @Success      201      {object}  AuthorResponse
// @Failure      422      {object}  validation.ErrorResponse   "Validation error"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /authors/create [post]
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req CreateAuthorRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	author := model.Author{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Nationality: model.Nationality(req.Nationality),
	}

	if err := h.repo.Create(c.Request.Context(), &author); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toAuthorResponse(author))
}

// ListAuthors godoc
// @Summary      List authors
// @Tags         authors
// @Produce      json
// @Param        page   query     int  false  "Page number"     default(1)  minimum(1)
// @Param        limit  query     int  false  "Items per page"  default(10) minimum(1) maximum(100)
// @Success      200    {object}  PaginatedAuthorsResponse
// @Failure      422    {object}  validation.ErrorResponse   "Invalid query parameters"
// @Failure      500    {object}  validation.ErrorResponse   "Internal server error"
// @Router       /authors [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	page, limit, ok := parseListParams(c)
	if !ok {
		return
	}

	key := cache.PageKey("authors", page, limit)
	serveCached(c, h.cache, key, func(ctx context.Context) (PaginatedAuthorsResponse, error) {
		result, err := h.repo.List(ctx, page, limit)
		if err != nil {
			return PaginatedAuthorsResponse{}, err
		}

		data := make([]AuthorResponse, 0, len(result.Data))
		for _, a := range result.Data {
			data = append(data, toAuthorResponse(a))
		}

		return PaginatedAuthorsResponse{
			Data:         data,
			Page:         result.Page,
			Limit:        result.Limit,
			TotalPages:   result.TotalPages,
			TotalRecords: result.TotalRecords,
		}, nil
	})
}

// GetAuthorByID godoc
// @Summary      Get an author by ID
// @Tags         authors
// @Produce      json
// @Param        author_id  path      int  true  "Author ID"
// @Success      200        {object}  AuthorResponse
// @Failure      404        {object}  validation.ErrorResponse   "Author not found"
// @Failure      422        {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500        {object}  validation.ErrorResponse   "Internal server error"
// @Router       /authors/{author_id} [get]
func (h *AuthorHandler) GetAuthorByID(c *gin.Context) {
	id, ok := parseIDParam(c, "author_id")
	if !ok {
		return
	}

	key := cache.EntityKey("author", id)
	serveCached(c, h.cache, key, func(ctx context.Context) (AuthorResponse, error) {
		author, err := h.repo.FindByID(ctx, id)
		if err != nil {
			return AuthorResponse{}, err
		}
		return toAuthorResponse(*author), nil
	})
}

// UpdateAuthor godoc
// @Summary      Update an author
// @Description  Partially update an author; omitted fields stay unchanged
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        author_id  path      int                  true  "Author ID"
// @Param        payload    body      UpdateAuthorRequest  true  "Fields to update"
// @Success      200        {object}  AuthorResponse
// @Failure      404        {object}  validation.ErrorResponse   "Author not found"
// @Failure      409        {object}  validation.ErrorResponse   "Constraint violation"
// @Failure      422        {object}  validation.ErrorResponse   "Invalid ID or payload"
// @Failure      500        {object}  validation.ErrorResponse   "Internal server error"
// @Router       /authors/{author_id} [put]
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "author_id")
	if !ok {
		return
	}

	var req UpdateAuthorRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	changes := repository.AuthorChanges{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.Nationality != nil {
		n := model.Nationality(*req.Nationality)
		changes.Nationality = &n
	}

	author, err := h.repo.Update(c.Request.Context(), id, changes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAuthorResponse(*author))
}

// DeleteAuthor godoc
// @Summary      Delete an author
// @Description  Deletes the author and returns its last state; the author's books keep existing with author_id set to null
// @Tags         authors
// @Produce      json
// @Param        author_id  path      int  true  "Author ID"
// @Success      200        {object}  AuthorResponse
// @Failure      404        {object}  validation.ErrorResponse   "Author not found"
// @Failure      422        {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500        {object}  validation.ErrorResponse   "Internal server error"
// @Router       /authors/{author_id} [delete]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "author_id")
	if !ok {
		return
	}

	author, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAuthorResponse(*author))
}
