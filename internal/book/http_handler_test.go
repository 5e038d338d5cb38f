package book

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookbuddy/internal/match"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*HTTPHandler, *MockRepository, *MockMetadataResolver) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	repo := NewMockRepository(ctrl)
	resolver := NewMockMetadataResolver(ctrl)
	return NewHTTPHandler(NewService(repo, resolver)), repo, resolver
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHTTPHandler_List(t *testing.T) {
	t.Run("success with pagination meta", func(t *testing.T) {
		h, repo, _ := newTestHandler(t)

		repo.EXPECT().List(gomock.Any(), Query{Genre: "Classics", Sort: "top", Limit: 2, Offset: 2}).
			Return([]Book{{ID: "b1", Title: "1984", CoverURL: "c"}}, 5, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/books?genre=Classics&sort=top&page=2&page_size=2", nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeEnvelope(t, rec)
		assert.Equal(t, true, body["success"])
		meta := body["meta"].(map[string]any)
		assert.Equal(t, float64(5), meta["total"])
		assert.Equal(t, float64(3), meta["total_pages"])
		assert.Equal(t, float64(2), meta["page"])
	})

	t.Run("defaults bad paging params", func(t *testing.T) {
		h, repo, _ := newTestHandler(t)

		repo.EXPECT().List(gomock.Any(), Query{Limit: 20, Offset: 0}).Return([]Book{}, 0, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/books?page=-3&page_size=9999", nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("repository failure", func(t *testing.T) {
		h, repo, _ := newTestHandler(t)

		repo.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, 0, assert.AnError)

		req := httptest.NewRequest(http.MethodGet, "/v1/books", nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHTTPHandler_Get(t *testing.T) {
	t.Run("found with description", func(t *testing.T) {
		h, repo, resolver := newTestHandler(t)

		repo.EXPECT().GetByID(gomock.Any(), "b1").Return(Book{ID: "b1", Title: "1984", Author: "George Orwell", CoverURL: "c"}, nil)
		resolver.EXPECT().Describe(gomock.Any(), "1984", "George Orwell").Return("A dystopian classic.")

		req := httptest.NewRequest(http.MethodGet, "/v1/books/b1", nil)
		req.SetPathValue("id", "b1")
		rec := httptest.NewRecorder()
		h.Get(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		data := decodeEnvelope(t, rec)["data"].(map[string]any)
		assert.Equal(t, "A dystopian classic.", data["description"])
	})

	t.Run("fallback description when lookup comes back empty", func(t *testing.T) {
		h, repo, resolver := newTestHandler(t)

		repo.EXPECT().GetByID(gomock.Any(), "b1").Return(Book{ID: "b1", Title: "1984", Author: "George Orwell", CoverURL: "c"}, nil)
		resolver.EXPECT().Describe(gomock.Any(), "1984", "George Orwell").Return("")

		req := httptest.NewRequest(http.MethodGet, "/v1/books/b1", nil)
		req.SetPathValue("id", "b1")
		rec := httptest.NewRecorder()
		h.Get(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		data := decodeEnvelope(t, rec)["data"].(map[string]any)
		assert.Equal(t, fallbackDescription, data["description"])
	})

	t.Run("not found", func(t *testing.T) {
		h, repo, _ := newTestHandler(t)

		repo.EXPECT().GetByID(gomock.Any(), "missing").Return(Book{}, ErrNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/books/missing", nil)
		req.SetPathValue("id", "missing")
		rec := httptest.NewRecorder()
		h.Get(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHTTPHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		h, repo, resolver := newTestHandler(t)

		repo.EXPECT().FindByTitleAuthor(gomock.Any(), "1984", "George Orwell").Return(Book{}, ErrNotFound)
		resolver.EXPECT().Resolve(gomock.Any(), "1984", "George Orwell").Return(match.Metadata{})
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b *Book) error {
			b.ID = "b1"
			return nil
		})

		body := `{"title":"1984","author":"George Orwell","genre":"Classics"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/books", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		h, _, _ := newTestHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/books", strings.NewReader(`{"title":"1984"}`))
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		h, _, _ := newTestHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/books", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate is a conflict", func(t *testing.T) {
		h, repo, _ := newTestHandler(t)

		repo.EXPECT().FindByTitleAuthor(gomock.Any(), "1984", "George Orwell").Return(Book{ID: "b1"}, nil)

		body := `{"title":"1984","author":"George Orwell"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/books", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestHTTPHandler_Suggest(t *testing.T) {
	t.Run("empty query short-circuits", func(t *testing.T) {
		h, _, _ := newTestHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/v1/books/suggest", nil)
		rec := httptest.NewRecorder()
		h.Suggest(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeEnvelope(t, rec)
		assert.Empty(t, body["data"])
	})

	t.Run("returns capped matches", func(t *testing.T) {
		h, repo, _ := newTestHandler(t)

		repo.EXPECT().List(gomock.Any(), Query{Q: "orw", Limit: suggestLimit}).
			Return([]Book{{ID: "b1", Title: "1984", CoverURL: "c"}}, 1, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/books/suggest?q=orw", nil)
		rec := httptest.NewRecorder()
		h.Suggest(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestHTTPHandler_Genres(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/genres", nil)
	rec := httptest.NewRecorder()
	h.Genres(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Len(t, body["data"], len(Genres))
}
