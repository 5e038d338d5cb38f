package user

import (
	"context"
	"errors"
	"strings"
)

const maxBioLen = 200

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, email, name, handle, passwordHash string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return User{}, ErrAlreadyExists
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = "New Reader"
	}

	newUser := &User{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Handle:       NormalizeHandle(handle),
		Preferences:  DefaultPreferences(),
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		return User{}, err
	}
	return *newUser, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *Service) GetByHandle(ctx context.Context, handle string) (User, error) {
	return s.repo.GetByHandle(ctx, NormalizeHandle(handle))
}

// ProfileUpdate carries the editable profile fields. Empty name and
// handle leave the stored value alone; bio always overwrites.
type ProfileUpdate struct {
	Name   string
	Handle string
	Bio    string
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) error {
	updates := map[string]interface{}{}

	if name := strings.TrimSpace(in.Name); name != "" {
		updates["name"] = name
	}
	if handle := NormalizeHandle(in.Handle); handle != "" {
		updates["handle"] = handle
	}

	bio := strings.TrimSpace(in.Bio)
	if runes := []rune(bio); len(runes) > maxBioLen {
		bio = string(runes[:maxBioLen])
	}
	updates["bio"] = bio

	return s.repo.UpdateProfile(ctx, userID, updates)
}

func (s *Service) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

func (s *Service) Preferences(ctx context.Context, userID string) (Preferences, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return Preferences{}, err
	}
	return u.Preferences.Normalize(), nil
}

func (s *Service) UpdatePreferences(ctx context.Context, userID string, prefs Preferences) (Preferences, error) {
	prefs = prefs.Normalize()
	if err := s.repo.UpdatePreferences(ctx, userID, prefs); err != nil {
		return Preferences{}, err
	}
	return prefs, nil
}
