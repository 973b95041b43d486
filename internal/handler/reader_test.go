package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/bookledger/library-api/internal/apperr"
	"github.com/bookledger/library-api/internal/cache"
	"github.com/bookledger/library-api/internal/model"
	"github.com/bookledger/library-api/internal/repository"
	"github.com/bookledger/library-api/internal/validation"
)

type fakeReaderRepo struct {
	CreateFn     func(ctx context.Context, r *model.Reader) error
	FindByIDFn   func(ctx context.Context, id int64) (*model.Reader, error)
	ListFn       func(ctx context.Context, page, limit int) (repository.Page[model.Reader], error)
	UpdateFn     func(ctx context.Context, id int64, changes repository.ReaderChanges) (*model.Reader, error)
	DeleteFn     func(ctx context.Context, id int64) (*model.Reader, error)
	AddBookFn    func(ctx context.Context, readerID, bookID int64) (*model.Reader, error)
	RemoveBookFn func(ctx context.Context, readerID, bookID int64) (*model.Reader, error)
}

func (f *fakeReaderRepo) Create(ctx context.Context, r *model.Reader) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, r)
	}
	r.ReaderID = 1
	return nil
}

func (f *fakeReaderRepo) FindByID(ctx context.Context, id int64) (*model.Reader, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeReaderRepo) List(ctx context.Context, page, limit int) (repository.Page[model.Reader], error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, page, limit)
	}
	return repository.NewPage([]model.Reader{}, page, limit, 0), nil
}

func (f *fakeReaderRepo) Update(ctx context.Context, id int64, changes repository.ReaderChanges) (*model.Reader, error) {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, id, changes)
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeReaderRepo) Delete(ctx context.Context, id int64) (*model.Reader, error) {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeReaderRepo) AddBook(ctx context.Context, readerID, bookID int64) (*model.Reader, error) {
	if f.AddBookFn != nil {
		return f.AddBookFn(ctx, readerID, bookID)
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeReaderRepo) RemoveBook(ctx context.Context, readerID, bookID int64) (*model.Reader, error) {
	if f.RemoveBookFn != nil {
		return f.RemoveBookFn(ctx, readerID, bookID)
	}
	return nil, apperr.ErrNotFound
}

func setupReaderRouter(repo repository.ReaderRepository, store cache.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := NewReaderHandler(repo, store)
	h.RegisterRoutes(r.Group("/v1"))

	return r
}

func TestCreateReader_Success(t *testing.T) {
	repo := &fakeReaderRepo{
		CreateFn: func(ctx context.Context, r *model.Reader) error {
			r.ReaderID = 21
			return nil
		},
	}
	router := setupReaderRouter(repo, newFakeCacheStore())

	w := doJSON(t, router, http.MethodPost, "/v1/readers/create", CreateReaderRequest{
		FirstName: "Sonya",
		LastName:  "Marmeladova",
		Email:     "sonya@example.com",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp ReaderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.ReaderID != 21 {
		t.Errorf("expected reader_id 21, got %d", resp.ReaderID)
	}
	if resp.Books == nil {
		t.Errorf("expected books as an empty array, not null")
	}
}

func TestCreateReader_InvalidEmail(t *testing.T) {
	router := setupReaderRouter(&fakeReaderRepo{}, newFakeCacheStore())

	w := doJSON(t, router, http.MethodPost, "/v1/readers/create", CreateReaderRequest{
		FirstName: "No",
		LastName:  "At",
		Email:     "not-an-email",
	})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp validation.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Field != "email" {
		t.Errorf("expected one error on email, got %+v", resp.Errors)
	}
}

func TestCreateReader_DuplicateEmail(t *testing.T) {
	repo := &fakeReaderRepo{
		CreateFn: func(ctx context.Context, r *model.Reader) error {
			return apperr.ErrConflict
		},
	}
	router := setupReaderRouter(repo, newFakeCacheStore())

	w := doJSON(t, router, http.MethodPost, "/v1/readers/create", CreateReaderRequest{
		FirstName: "Twin",
		LastName:  "Account",
		Email:     "taken@example.com",
	})

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestGetReaderByID_IncludesBooks(t *testing.T) {
	repo := &fakeReaderRepo{
		FindByIDFn: func(ctx context.Context, id int64) (*model.Reader, error) {
			return &model.Reader{
				ReaderID:  id,
				FirstName: "Avid",
				LastName:  "Reader",
				Email:     "avid@example.com",
				Books: []model.Book{
					{BookID: 1, Title: "Dune", Category: model.CategoryFantasy},
				},
			}, nil
		},
	}
	router := setupReaderRouter(repo, newFakeCacheStore())

	w := doJSON(t, router, http.MethodGet, "/v1/readers/6", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp ReaderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Books) != 1 || resp.Books[0].Title != "Dune" {
		t.Errorf("expected borrowed book in response, got %+v", resp.Books)
	}
}

func TestListReaders_SummaryOnly(t *testing.T) {
	repo := &fakeReaderRepo{
		ListFn: func(ctx context.Context, page, limit int) (repository.Page[model.Reader], error) {
			return repository.NewPage([]model.Reader{
				{ReaderID: 1, FirstName: "One", LastName: "Reader", Email: "one@example.com"},
			}, page, limit, 1), nil
		},
	}
	router := setupReaderRouter(repo, newFakeCacheStore())

	w := doJSON(t, router, http.MethodGet, "/v1/readers", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var raw struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(raw.Data) != 1 {
		t.Fatalf("expected 1 row, got %d", len(raw.Data))
	}
	if _, hasBooks := raw.Data[0]["books"]; hasBooks {
		t.Errorf("expected no books field in the listing projection")
	}
}

func TestAddBook_Success(t *testing.T) {
	var gotReader, gotBook int64
	repo := &fakeReaderRepo{
		AddBookFn: func(ctx context.Context, readerID, bookID int64) (*model.Reader, error) {
			gotReader, gotBook = readerID, bookID
			return &model.Reader{
				ReaderID:  readerID,
				FirstName: "Borrower",
				LastName:  "One",
				Email:     "b@example.com",
				Books:     []model.Book{{BookID: bookID, Title: "Borrowed", Category: model.CategoryFiction}},
			}, nil
		},
	}
	router := setupReaderRouter(repo, newFakeCacheStore())

	w := doJSON(t, router, http.MethodPut, "/v1/readers/3/books/9", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}
	if gotReader != 3 || gotBook != 9 {
		t.Errorf("expected ids forwarded, got reader=%d book=%d", gotReader, gotBook)
	}

	var resp ReaderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Books) != 1 || resp.Books[0].BookID != 9 {
		t.Errorf("expected updated book list, got %+v", resp.Books)
	}
}

func TestAddBook_DuplicatePair(t *testing.T) {
	repo := &fakeReaderRepo{
		AddBookFn: func(ctx context.Context, readerID, bookID int64) (*model.Reader, error) {
			return nil, apperr.ErrConflict
		},
	}
	router := setupReaderRouter(repo, newFakeCacheStore())

	w := doJSON(t, router, http.MethodPut, "/v1/readers/3/books/9", nil)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestAddBook_UnknownReader(t *testing.T) {
	router := setupReaderRouter(&fakeReaderRepo{}, newFakeCacheStore())

	w := doJSON(t, router, http.MethodPut, "/v1/readers/404/books/1", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestRemoveBook_Success(t *testing.T) {
	repo := &fakeReaderRepo{
		RemoveBookFn: func(ctx context.Context, readerID, bookID int64) (*model.Reader, error) {
			return &model.Reader{ReaderID: readerID, FirstName: "Done", LastName: "Reading", Email: "d@example.com"}, nil
		},
	}
	router := setupReaderRouter(repo, newFakeCacheStore())

	w := doJSON(t, router, http.MethodDelete, "/v1/readers/3/books/9", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp ReaderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Books) != 0 {
		t.Errorf("expected empty book list, got %+v", resp.Books)
	}
}

func TestAddBook_InvalidBookID(t *testing.T) {
	router := setupReaderRouter(&fakeReaderRepo{}, newFakeCacheStore())

	w := doJSON(t, router, http.MethodPut, "/v1/readers/3/books/zero", nil)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d, body=%s", w.Code, w.Body.String())
	}
}
