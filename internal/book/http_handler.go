package book

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bookbuddy/internal/httpx"
)

// fallbackDescription is shown when Open Library has nothing usable.
const fallbackDescription = "A gripping, imaginative novel that explores power, control, and identity. " +
	"This edition features a modern cover while preserving the timeless themes."

const suggestLimit = 8

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// List handles GET /v1/books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := Query{
		Genre: query.Get("genre"),
		Q:     query.Get("q"),
		Sort:  query.Get("sort"),
	}

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(query.Get("page_size"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	params.Limit = pageSize
	params.Offset = (page - 1) * pageSize

	books, total, err := h.service.List(r.Context(), params)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, books, map[string]any{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": (total + pageSize - 1) / pageSize,
	})
}

// Get handles GET /v1/books/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	description := h.service.Describe(r.Context(), b)
	if description == "" {
		description = fallbackDescription
	}

	httpx.JSONSuccess(w, r, map[string]any{
		"book":        b,
		"description": description,
	}, nil)
}

type createBookReq struct {
	Title  string `json:"title" validate:"required,max=255"`
	Author string `json:"author" validate:"required,max=255"`
	Genre  string `json:"genre" validate:"max=120"`
	Year   string `json:"year" validate:"max=20"`
	Cover  string `json:"cover" validate:"max=500"`
}

// Create handles POST /v1/books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	b, err := h.service.Add(r.Context(), AddInput{
		Title:  req.Title,
		Author: req.Author,
		Genre:  req.Genre,
		Year:   req.Year,
		Cover:  req.Cover,
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			httpx.JSONError(w, r, http.StatusConflict, "ALREADY_EXISTS", "That book already exists", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccessCreated(w, r, b)
}

// Suggest handles GET /v1/books/suggest, the live search box.
func (h *HTTPHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		httpx.JSONSuccess(w, r, []Book{}, nil)
		return
	}

	books, _, err := h.service.List(r.Context(), Query{Q: q, Limit: suggestLimit})
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if books == nil {
		books = []Book{}
	}

	httpx.JSONSuccess(w, r, books, nil)
}

// Genres handles GET /v1/genres
func (h *HTTPHandler) Genres(w http.ResponseWriter, r *http.Request) {
	httpx.JSONSuccess(w, r, Genres, nil)
}
