package user

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByHandle(ctx context.Context, handle string) (User, error)
	UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	UpdatePreferences(ctx context.Context, userID string, prefs Preferences) error
}
