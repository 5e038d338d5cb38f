// Package social is the follower graph.
package social

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrSelfFollow = errors.New("cannot follow yourself")
)

// Person is the card shown on the following and followers pages.
type Person struct {
	Name   string `json:"name"`
	Handle string `json:"handle"`
}

type Repository interface {
	Follow(ctx context.Context, followerID, followeeID string) error
	Unfollow(ctx context.Context, followerID, followeeID string) error
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
	Following(ctx context.Context, userID, q string) ([]Person, error)
	Followers(ctx context.Context, userID, q string) ([]Person, error)
	Counts(ctx context.Context, userID string) (following, followers int, err error)
}
