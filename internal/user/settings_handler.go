package user

import (
	"encoding/json"
	"net/http"

	"bookbuddy/internal/httpx"
)

// GetPreferences handles GET /v1/me/preferences
func (h *HTTPHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	prefs, err := h.service.Preferences(r.Context(), userID)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, prefs, nil)
}

// UpdatePreferences handles PUT /v1/me/preferences. Unknown theme or
// language values are clamped to the defaults, not rejected.
func (h *HTTPHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	var prefs Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	saved, err := h.service.UpdatePreferences(r.Context(), userID, prefs)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, saved, nil)
}

// ListLanguages handles GET /v1/languages
func (h *HTTPHandler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	httpx.JSONSuccess(w, r, Languages, nil)
}
