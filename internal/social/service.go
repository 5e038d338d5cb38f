package social

import (
	"context"
	"errors"

	"bookbuddy/internal/user"
)

// Directory resolves handles to accounts.
type Directory interface {
	GetByHandle(ctx context.Context, handle string) (user.User, error)
}

type Service struct {
	repo      Repository
	directory Directory
}

func NewService(repo Repository, directory Directory) *Service {
	return &Service{repo: repo, directory: directory}
}

// Toggle follows the handle if not followed yet, unfollows otherwise.
// Returns the resulting state, "followed" or "unfollowed".
func (s *Service) Toggle(ctx context.Context, userID, handle string) (string, error) {
	target, err := s.directory.GetByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if target.ID == userID {
		return "", ErrSelfFollow
	}

	following, err := s.repo.IsFollowing(ctx, userID, target.ID)
	if err != nil {
		return "", err
	}
	if following {
		if err := s.repo.Unfollow(ctx, userID, target.ID); err != nil {
			return "", err
		}
		return "unfollowed", nil
	}
	if err := s.repo.Follow(ctx, userID, target.ID); err != nil {
		return "", err
	}
	return "followed", nil
}

// RemoveFollower drops the named handle from the user's followers.
func (s *Service) RemoveFollower(ctx context.Context, userID, handle string) error {
	follower, err := s.directory.GetByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	following, err := s.repo.IsFollowing(ctx, follower.ID, userID)
	if err != nil {
		return err
	}
	if !following {
		return ErrNotFound
	}
	return s.repo.Unfollow(ctx, follower.ID, userID)
}

func (s *Service) Following(ctx context.Context, userID, q string) ([]Person, error) {
	return s.repo.Following(ctx, userID, q)
}

func (s *Service) Followers(ctx context.Context, userID, q string) ([]Person, error) {
	return s.repo.Followers(ctx, userID, q)
}
