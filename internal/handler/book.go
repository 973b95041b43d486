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

type BookHandler struct {
	repo  repository.BookRepository
	cache cache.Store
}

func NewBookHandler(repo repository.BookRepository, store cache.Store) *BookHandler {
	return &BookHandler{repo: repo, cache: store}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	books := r.Group("/books")
	{
		books.POST("/create", h.CreateBook)
		books.GET("", h.ListBooks)
		books.GET("/:book_id", h.GetBookByID)
		books.PUT("/:book_id", h.UpdateBook)
		books.DELETE("/:book_id", h.DeleteBook)
	}
}

// CreateBook godoc
// @Summary      Create a book
// @Description  Create a book; author_id is optional and must reference an existing author when set
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateBookRequest          true  "Book to create"
// @Success      201      {object}  BookResponse
// @Failure      409      {object}  validation.ErrorResponse   "Duplicate title or unknown author"
// @Failure      422      {object}  validation.ErrorResponse   "Validation error"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/create [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	book := model.Book{
		Title:           req.Title,
		PublicationYear: req.PublicationYear.Time,
		Category:        model.Category(req.Category),
		AuthorID:        req.AuthorID,
	}

	if err := h.repo.Create(c.Request.Context(), &book); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookResponse(book))
}

// ListBooks godoc
// @Summary      List books
// @Description  Page of books; the author is referenced by author_id only, never embedded
// @Tags         books
// @Produce      json
// @Param        page   query     int  false  "Page number"     default(1)  minimum(1)
// @Param        limit  query     int  false  "Items per page"  default(10) minimum(1) maximum(100)
// @Success      200    {object}  PaginatedBooksResponse
// @Failure      422    {object}  validation.ErrorResponse   "Invalid query parameters"
// @Failure      500    {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	page, limit, ok := parseListParams(c)
	if !ok {
		return
	}

	key := cache.PageKey("books", page, limit)
	serveCached(c, h.cache, key, func(ctx context.Context) (PaginatedBooksResponse, error) {
		result, err := h.repo.List(ctx, page, limit)
		if err != nil {
			return PaginatedBooksResponse{}, err
		}

		data := make([]BookResponse, 0, len(result.Data))
		for _, b := range result.Data {
			data = append(data, toBookResponse(b))
		}

		return PaginatedBooksResponse{
			Data:         data,
			Page:         result.Page,
			Limit:        result.Limit,
			TotalPages:   result.TotalPages,
			TotalRecords: result.TotalRecords,
		}, nil
	})
}

// GetBookByID godoc
// @Summary      Get a book by ID
// @Tags         books
// @Produce      json
// @Param        book_id  path      int  true  "Book ID"
// @Success      200      {object}  BookResponse
// @Failure      404      {object}  validation.ErrorResponse   "Book not found"
// @Failure      422      {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{book_id} [get]
func (h *BookHandler) GetBookByID(c *gin.Context) {
	id, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	key := cache.EntityKey("book", id)
	serveCached(c, h.cache, key, func(ctx context.Context) (BookResponse, error) {
		book, err := h.repo.FindByID(ctx, id)
		if err != nil {
			return BookResponse{}, err
		}
		return toBookResponse(*book), nil
	})
}

// UpdateBook godoc
// @Summary      Update a book
// @Description  Partially update a book; omitted fields stay unchanged
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        book_id  path      int                true  "Book ID"
// @Param        payload  body      UpdateBookRequest  true  "Fields to update"
// @Success      200      {object}  BookResponse
// @Failure      404      {object}  validation.ErrorResponse   "Book not found"
// @Failure      409      {object}  validation.ErrorResponse   "Constraint violation"
// @Failure      422      {object}  validation.ErrorResponse   "Invalid ID or payload"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{book_id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	var req UpdateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	changes := repository.BookChanges{
		Title:    req.Title,
		AuthorID: req.AuthorID,
	}
	if req.PublicationYear != nil {
		t := req.PublicationYear.Time
		changes.PublicationYear = &t
	}
	if req.Category != nil {
		cat := model.Category(*req.Category)
		changes.Category = &cat
	}

	book, err := h.repo.Update(c.Request.Context(), id, changes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookResponse(*book))
}

// DeleteBook godoc
// @Summary      Delete a book
// @Description  Deletes the book and returns its last state; borrow associations are removed with it
// @Tags         books
// @Produce      json
// @Param        book_id  path      int  true  "Book ID"
// @Success      200      {object}  BookResponse
// @Failure      404      {object}  validation.ErrorResponse   "Book not found"
// @Failure      422      {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{book_id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	book, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookResponse(*book))
}
