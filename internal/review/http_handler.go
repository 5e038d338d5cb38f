package review

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookbuddy/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type reviewResponse struct {
	Review
	TimeAgo string `json:"time_ago"`
}

func toResponses(reviews []Review) []reviewResponse {
	out := make([]reviewResponse, 0, len(reviews))
	for _, rev := range reviews {
		out = append(out, reviewResponse{Review: rev, TimeAgo: TimeAgo(rev.CreatedAt)})
	}
	return out
}

type createReviewReq struct {
	BookTitle string `json:"book_title" validate:"required,max=255"`
	Rating    int    `json:"rating" validate:"min=0,max=5"`
	Text      string `json:"text" validate:"required,max=5000"`
}

// Create handles POST /v1/reviews
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	var req createReviewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	rev, err := h.service.Add(r.Context(), userID, AddInput{
		BookTitle: req.BookTitle,
		Rating:    req.Rating,
		Text:      req.Text,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidBook) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Pick a book from the catalog first", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccessCreated(w, r, rev)
}

// ListForBook handles GET /v1/books/{title}/reviews
func (h *HTTPHandler) ListForBook(w http.ResponseWriter, r *http.Request) {
	title := r.PathValue("title")
	if title == "" {
		http.NotFound(w, r)
		return
	}

	reviews, stats, err := h.service.ForBook(r.Context(), title)
	if err != nil {
		if errors.Is(err, ErrInvalidBook) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, map[string]any{
		"reviews":      toResponses(reviews),
		"avg_rating":   stats.AvgRating,
		"review_count": stats.ReviewCount,
	}, nil)
}

// ListMine handles GET /v1/me/reviews
func (h *HTTPHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	reviews, err := h.service.ForUser(r.Context(), userID, 0)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, toResponses(reviews), nil)
}
