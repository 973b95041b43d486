package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bookledger/library-api/internal/apperr"
	"github.com/bookledger/library-api/internal/log"
	"github.com/bookledger/library-api/internal/model"
	"github.com/bookledger/library-api/internal/validation"
)

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, validation.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// respondError maps the error taxonomy onto transport status codes.
// Messages stay generic; the store's own error text never reaches the
// client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeError(c, http.StatusNotFound, "NOT_FOUND", apperr.ErrNotFound.Error())
	case errors.Is(err, apperr.ErrConflict):
		writeError(c, http.StatusConflict, "CONSTRAINT_VIOLATION", apperr.ErrConflict.Error())
	case errors.Is(err, apperr.ErrUnavailable):
		log.Error("store unreachable", zap.Error(err))
		writeError(c, http.StatusInternalServerError, "DATABASE_UNAVAILABLE", apperr.ErrUnavailable.Error())
	default:
		log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		writeError(c, http.StatusInternalServerError, "INTERNAL", "the server could not process the request")
	}
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		writeError(c, http.StatusUnprocessableEntity, "INVALID_ID", name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// parseListParams reads page (>= 1, default 1) and limit (1..100,
// default 10) from the query string.
func parseListParams(c *gin.Context) (page, limit int, ok bool) {
	page, limit = 1, 10

	if s := c.Query("page"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			writeError(c, http.StatusUnprocessableEntity, "INVALID_PAGE", "page must be an integer >= 1")
			return 0, 0, false
		}
		page = v
	}

	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 100 {
			writeError(c, http.StatusUnprocessableEntity, "INVALID_LIMIT", "limit must be an integer between 1 and 100")
			return 0, 0, false
		}
		limit = v
	}

	return page, limit, true
}

func toAuthorResponse(a model.Author) AuthorResponse {
	return AuthorResponse{
		AuthorID:    a.AuthorID,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Nationality: a.Nationality,
	}
}

func toBookResponse(b model.Book) BookResponse {
	return BookResponse{
		BookID:          b.BookID,
		Title:           b.Title,
		PublicationYear: model.Date{Time: b.PublicationYear},
		Category:        b.Category,
		AuthorID:        b.AuthorID,
	}
}

func toReaderResponse(r model.Reader) ReaderResponse {
	books := make([]BookResponse, 0, len(r.Books))
	for _, b := range r.Books {
		books = append(books, toBookResponse(b))
	}

	return ReaderResponse{
		ReaderID:  r.ReaderID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Books:     books,
	}
}

func toReaderSummary(r model.Reader) ReaderSummary {
	return ReaderSummary{
		ReaderID:  r.ReaderID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
	}
}
