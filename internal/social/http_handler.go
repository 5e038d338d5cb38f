package social

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"bookbuddy/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

func (h *HTTPHandler) listPeople(w http.ResponseWriter, r *http.Request, fetch func(userID, q string) ([]Person, error)) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	people, err := fetch(userID, q)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if people == nil {
		people = []Person{}
	}

	httpx.JSONSuccess(w, r, people, nil)
}

// Following handles GET /v1/following
func (h *HTTPHandler) Following(w http.ResponseWriter, r *http.Request) {
	h.listPeople(w, r, func(userID, q string) ([]Person, error) {
		return h.service.Following(r.Context(), userID, q)
	})
}

// Followers handles GET /v1/followers
func (h *HTTPHandler) Followers(w http.ResponseWriter, r *http.Request) {
	h.listPeople(w, r, func(userID, q string) ([]Person, error) {
		return h.service.Followers(r.Context(), userID, q)
	})
}

type handleReq struct {
	Handle string `json:"handle" validate:"required"`
}

// ToggleFollow handles POST /v1/following/toggle
func (h *HTTPHandler) ToggleFollow(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	var req handleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	state, err := h.service.Toggle(r.Context(), userID, req.Handle)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "No reader with that handle", nil)
		case errors.Is(err, ErrSelfFollow):
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "You cannot follow yourself", nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	httpx.JSONSuccess(w, r, map[string]any{"state": state}, nil)
}

// RemoveFollower handles POST /v1/followers/remove
func (h *HTTPHandler) RemoveFollower(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	var req handleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	if err := h.service.RemoveFollower(r.Context(), userID, req.Handle); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "That reader does not follow you", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccessNoContent(w)
}
