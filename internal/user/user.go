package user

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user already exists")
)

// Themes and Languages are the values the settings pages accept.
var (
	Themes    = []string{"light", "dark"}
	Languages = []string{"English", "Español", "Français", "Deutsch", "Italiano"}
)

// Preferences is stored as JSONB on the user row.
type Preferences struct {
	Theme                string `json:"theme"`
	Language             string `json:"language"`
	ProfilePrivate       bool   `json:"profile_private"`
	ShowActivity         bool   `json:"show_activity"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Theme:                "light",
		Language:             "English",
		ProfilePrivate:       false,
		ShowActivity:         true,
		NotificationsEnabled: true,
	}
}

// Normalize clamps free-form values back to the allowed sets.
func (p Preferences) Normalize() Preferences {
	theme := strings.ToLower(strings.TrimSpace(p.Theme))
	if !contains(Themes, theme) {
		theme = "light"
	}
	p.Theme = theme
	if !contains(Languages, p.Language) {
		p.Language = "English"
	}
	return p
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Name         string      `json:"name"`
	Handle       string      `json:"handle"`
	Bio          string      `json:"bio"`
	Preferences  Preferences `json:"preferences"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// DisplayName is what shows up next to reviews and follows. Falls back
// through handle, name and email local part before giving up.
func (u User) DisplayName() string {
	if v := strings.TrimSpace(u.Handle); v != "" {
		return v
	}
	if v := strings.TrimSpace(u.Name); v != "" {
		return v
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return "reader"
}

// NormalizeHandle stores handles in "@name" form. Empty stays empty.
func NormalizeHandle(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return ""
	}
	if !strings.HasPrefix(h, "@") {
		h = "@" + h
	}
	return h
}
