package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/bookledger/library-api/internal/apperr"
	"github.com/bookledger/library-api/internal/cache"
	"github.com/bookledger/library-api/internal/model"
)

func TestServeCached_MissPopulatesStore(t *testing.T) {
	store := newFakeCacheStore()
	repo := &fakeAuthorRepo{
		FindByIDFn: func(ctx context.Context, id int64) (*model.Author, error) {
			return &model.Author{AuthorID: id, FirstName: "Ada", LastName: "Lovelace", Nationality: model.NationalityBritish}, nil
		},
	}
	router := setupAuthorRouter(repo, store)

	w := doJSON(t, router, http.MethodGet, "/v1/authors/5", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	entry, ok := store.entries[cache.EntityKey("author", 5)]
	if !ok {
		t.Fatalf("expected cache entry for author:5")
	}
	if entry.ttl != cache.TTL {
		t.Errorf("expected ttl %v, got %v", cache.TTL, entry.ttl)
	}
	if string(entry.value) != w.Body.String() {
		t.Errorf("cached body differs from response body")
	}
}

func TestServeCached_HitSkipsRepository(t *testing.T) {
	store := newFakeCacheStore()
	cached := AuthorResponse{AuthorID: 5, FirstName: "Cached", LastName: "Copy", Nationality: model.NationalityFrench}
	body, _ := json.Marshal(cached)
	store.entries[cache.EntityKey("author", 5)] = fakeEntry{value: body, ttl: cache.TTL}

	repoCalled := false
	repo := &fakeAuthorRepo{
		FindByIDFn: func(ctx context.Context, id int64) (*model.Author, error) {
			repoCalled = true
			return nil, apperr.ErrNotFound
		},
	}
	router := setupAuthorRouter(repo, store)

	w := doJSON(t, router, http.MethodGet, "/v1/authors/5", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}
	if repoCalled {
		t.Errorf("expected repository to be skipped on a cache hit")
	}
	if w.Body.String() != string(body) {
		t.Errorf("expected cached body verbatim, got %s", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != jsonContentType {
		t.Errorf("expected content type %q, got %q", jsonContentType, ct)
	}
}

func TestServeCached_StoreFailureFallsThrough(t *testing.T) {
	store := newFakeCacheStore()
	store.getErr = errors.New("connection refused")
	store.setErr = errors.New("connection refused")

	repo := &fakeAuthorRepo{
		FindByIDFn: func(ctx context.Context, id int64) (*model.Author, error) {
			return &model.Author{AuthorID: id, FirstName: "Direct", LastName: "Read", Nationality: model.NationalityAmerican}, nil
		},
	}
	router := setupAuthorRouter(repo, store)

	w := doJSON(t, router, http.MethodGet, "/v1/authors/9", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 despite cache failure, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp AuthorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.FirstName != "Direct" {
		t.Errorf("expected repository result, got %+v", resp)
	}
}

// Writes never touch the cache, so a read inside the TTL window returns
// the pre-update state.
func TestServeCached_StaleAfterUpdate(t *testing.T) {
	store := newFakeCacheStore()

	current := &model.Author{AuthorID: 5, FirstName: "Old", LastName: "Name", Nationality: model.NationalityGerman}
	router := setupAuthorRouter(&fakeAuthorRepo{
		FindByIDFn: func(ctx context.Context, id int64) (*model.Author, error) {
			snapshot := *current
			return &snapshot, nil
		},
	}, store)

	w := doJSON(t, router, http.MethodGet, "/v1/authors/5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	firstBody := w.Body.String()

	// The row changes in the store; no cache entry is touched.
	current.FirstName = "New"

	w = doJSON(t, router, http.MethodGet, "/v1/authors/5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if w.Body.String() != firstBody {
		t.Fatalf("expected the stale cached body inside the TTL window")
	}

	var resp AuthorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.FirstName != "Old" {
		t.Errorf("expected pre-update state, got %q", resp.FirstName)
	}

	// Once the entry expires the next read observes the new state.
	delete(store.entries, cache.EntityKey("author", 5))

	w = doJSON(t, router, http.MethodGet, "/v1/authors/5", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.FirstName != "New" {
		t.Errorf("expected post-expiry read to see the update, got %q", resp.FirstName)
	}
}

func TestServeCached_RepositoryErrorNotCached(t *testing.T) {
	store := newFakeCacheStore()
	repo := &fakeAuthorRepo{
		FindByIDFn: func(ctx context.Context, id int64) (*model.Author, error) {
			return nil, apperr.ErrNotFound
		},
	}
	router := setupAuthorRouter(repo, store)

	w := doJSON(t, router, http.MethodGet, "/v1/authors/5", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
	if len(store.entries) != 0 {
		t.Errorf("expected nothing cached for an error response, got %d entries", len(store.entries))
	}
}
