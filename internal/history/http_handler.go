package history

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

type recordReq struct {
	BookID string `json:"book_id" validate:"required"`
}

// Record handles POST /v1/history
func (h *HTTPHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	var req recordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	if err := h.repo.Record(r.Context(), userID, req.BookID); err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccessNoContent(w)
}

// List handles GET /v1/history
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	entries, err := h.repo.List(r.Context(), userID, q)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	for i := range entries {
		entries[i].Book.CoverURL = book.DisplayCover(entries[i].Book)
	}
	if entries == nil {
		entries = []Entry{}
	}

	httpx.JSONSuccess(w, r, entries, nil)
}
