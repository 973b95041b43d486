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

type ReaderHandler struct {
	repo  repository.ReaderRepository
	cache cache.Store
}

func NewReaderHandler(repo repository.ReaderRepository, store cache.Store) *ReaderHandler {
	return &ReaderHandler{repo: repo, cache: store}
}

func (h *ReaderHandler) RegisterRoutes(r *gin.RouterGroup) {
	readers := r.Group("/readers")
	{
		readers.POST("/create", h.CreateReader)
		readers.GET("", h.ListReaders)
		readers.GET("/:reader_id", h.GetReaderByID)
		readers.PUT("/:reader_id", h.UpdateReader)
		readers.DELETE("/:reader_id", h.DeleteReader)
		readers.PUT("/:reader_id/books/:book_id", h.AddBook)
		readers.DELETE("/:reader_id/books/:book_id", h.RemoveBook)
	}
}

// CreateReader godoc
// @Summary      Create a reader
// @Tags         readers
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateReaderRequest        true  "Reader to create"
// @Success      201      {object}  ReaderResponse
// @Failure      409      {object}  validation.ErrorResponse   "Duplicate email"
// @Failure      422      {object}  validation.ErrorResponse   "Validation error"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /readers/create [post]
func (h *ReaderHandler) CreateReader(c *gin.Context) {
	var req CreateReaderRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	reader := model.Reader{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}

	if err := h.repo.Create(c.Request.Context(), &reader); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toReaderResponse(reader))
}

// ListReaders godoc
// @Summary      List readers
// @Description  Page of readers without their book lists
// @Tags         readers
// @Produce      json
// @Param        page   query     int  false  "Page number"     default(1)  minimum(1)
// @Param        limit  query     int  false  "Items per page"  default(10) minimum(1) maximum(100)
// @Success      200    {object}  PaginatedReadersResponse
// @Failure      422    {object}  validation.ErrorResponse   "Invalid query parameters"
// @Failure      500    {object}  validation.ErrorResponse   "Internal server error"
// @Router       /readers [get]
func (h *ReaderHandler) ListReaders(c *gin.Context) {
	page, limit, ok := parseListParams(c)
	if !ok {
		return
	}

	key := cache.PageKey("readers", page, limit)
	serveCached(c, h.cache, key, func(ctx context.Context) (PaginatedReadersResponse, error) {
		result, err := h.repo.List(ctx, page, limit)
		if err != nil {
			return PaginatedReadersResponse{}, err
		}

		data := make([]ReaderSummary, 0, len(result.Data))
		for _, r := range result.Data {
			data = append(data, toReaderSummary(r))
		}

		return PaginatedReadersResponse{
			Data:         data,
			Page:         result.Page,
			Limit:        result.Limit,
			TotalPages:   result.TotalPages,
			TotalRecords: result.TotalRecords,
		}, nil
	})
}

// GetReaderByID godoc
// @Summary      Get a reader by ID
// @Description  Returns the reader with the full list of currently borrowed books
// @Tags         readers
// @Produce      json
// @Param        reader_id  path      int  true  "Reader ID"
// @Success      200        {object}  ReaderResponse
// @Failure      404        {object}  validation.ErrorResponse   "Reader not found"
// @Failure      422        {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500        {object}  validation.ErrorResponse   "Internal server error"
// @Router       /readers/{reader_id} [get]
func (h *ReaderHandler) GetReaderByID(c *gin.Context) {
	id, ok := parseIDParam(c, "reader_id")
	if !ok {
		return
	}

	key := cache.EntityKey("reader", id)
	serveCached(c, h.cache, key, func(ctx context.Context) (ReaderResponse, error) {
		reader, err := h.repo.FindByID(ctx, id)
		if err != nil {
			return ReaderResponse{}, err
		}
		return toReaderResponse(*reader), nil
	})
}

// UpdateReader godoc
// @Summary      Update a reader
// @Description  Partially update a reader; omitted fields stay unchanged
// @Tags         readers
// @Accept       json
// @Produce      json
// @Param        reader_id  path      int                  true  "Reader ID"
// @Param        payload    body      UpdateReaderRequest  true  "Fields to update"
// @Success      200        {object}  ReaderResponse
// @Failure      404        {object}  validation.ErrorResponse   "Reader not found"
// @Failure      409        {object}  validation.ErrorResponse   "Constraint violation"
// @Failure      422        {object}  validation.ErrorResponse   "Invalid ID or payload"
// @Failure      500        {object}  validation.ErrorResponse   "Internal server error"
// @Router       /readers/{reader_id} [put]
func (h *ReaderHandler) UpdateReader(c *gin.Context) {
	id, ok := parseIDParam(c, "reader_id")
	if !ok {
		return
	}

	var req UpdateReaderRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	changes := repository.ReaderChanges{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}

	reader, err := h.repo.Update(c.Request.Context(), id, changes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toReaderResponse(*reader))
}

// DeleteReader godoc
// @Summary      Delete a reader
// @Description  Deletes the reader and returns its last state; borrow associations are removed with it
// @Tags         readers
// @Produce      json
// @Param        reader_id  path      int  true  "Reader ID"
// @Success      200        {object}  ReaderResponse
// @Failure      404        {object}  validation.ErrorResponse   "Reader not found"
// @Failure      422        {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500        {object}  validation.ErrorResponse   "Internal server error"
// @Router       /readers/{reader_id} [delete]
func (h *ReaderHandler) DeleteReader(c *gin.Context) {
	id, ok := parseIDParam(c, "reader_id")
	if !ok {
		return
	}

	reader, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toReaderResponse(*reader))
}

// AddBook godoc
// @Summary      Borrow a book
// @Description  Links the book to the reader; linking the same pair twice is a constraint violation. Goes straight to the repository, no cache involved.
// @Tags         readers
// @Produce      json
// @Param        reader_id  path      int  true  "Reader ID"
// @Param        book_id    path      int  true  "Book ID"
// @Success      200        {object}  ReaderResponse
// @Failure      404        {object}  validation.ErrorResponse   "Reader not found"
// @Failure      409        {object}  validation.ErrorResponse   "Duplicate pair or unknown book"
// @Failure      422        {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500        {object}  validation.ErrorResponse   "Internal server error"
// @Router       /readers/{reader_id}/books/{book_id} [put]
func (h *ReaderHandler) AddBook(c *gin.Context) {
	readerID, ok := parseIDParam(c, "reader_id")
	if !ok {
		return
	}
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	reader, err := h.repo.AddBook(c.Request.Context(), readerID, bookID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toReaderResponse(*reader))
}

// RemoveBook godoc
// @Summary      Return a book
// @Description  Unlinks the book from the reader; removing a pair that does not exist is not an error. Goes straight to the repository, no cache involved.
// @Tags         readers
// @Produce      json
// @Param        reader_id  path      int  true  "Reader ID"
// @Param        book_id    path      int  true  "Book ID"
// @Success      200        {object}  ReaderResponse
// @Failure      404        {object}  validation.ErrorResponse   "Reader not found"
// @Failure      422        {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500        {object}  validation.ErrorResponse   "Internal server error"
// @Router       /readers/{reader_id}/books/{book_id} [delete]
func (h *ReaderHandler) RemoveBook(c *gin.Context) {
	readerID, ok := parseIDParam(c, "reader_id")
	if !ok {
		return
	}
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	reader, err := h.repo.RemoveBook(c.Request.Context(), readerID, bookID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toReaderResponse(*reader))
}
