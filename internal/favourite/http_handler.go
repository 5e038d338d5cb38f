package favourite

import (
	"encoding/json"
	"net/http"
	"strings"

	"bookbuddy/internal/book"
	"bookbuddy/internal/httpx"
)

type HTTPHandler struct {
	repo Repository
}

func NewHTTPHandler(repo Repository) *HTTPHandler {
	return &HTTPHandler{repo: repo}
}

type toggleReq struct {
	BookID string `json:"book_id" validate:"required"`
}

// Toggle handles POST /v1/favourites/toggle
func (h *HTTPHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	var req toggleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	favourited, err := h.repo.Toggle(r.Context(), userID, req.BookID)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, map[string]any{"favourited": favourited}, nil)
}

// List handles GET /v1/favourites
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	books, err := h.repo.ListBooks(r.Context(), userID, q)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	for i := range books {
		books[i].CoverURL = book.DisplayCover(books[i])
	}
	if books == nil {
		books = []book.Book{}
	}

	httpx.JSONSuccess(w, r, books, nil)
}

// ListIDs handles GET /v1/favourites/ids, used by the UI to mark
// heart icons without fetching full book rows.
func (h *HTTPHandler) ListIDs(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	ids, err := h.repo.ListBookIDs(r.Context(), userID)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if ids == nil {
		ids = []string{}
	}

	httpx.JSONSuccess(w, r, map[string]any{"book_ids": ids}, nil)
}
