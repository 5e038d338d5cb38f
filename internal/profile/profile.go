// Package profile aggregates the data behind the profile page: the
// account, activity counts and the most recent reviews.
package profile

import (
	"context"

	"bookbuddy/internal/review"
	"bookbuddy/internal/user"
)

const recentReviewsLimit = 6

type Stats struct {
	Reviews    int `json:"reviews"`
	Favourites int `json:"favourites"`
	Following  int `json:"following"`
	Followers  int `json:"followers"`
}

type Profile struct {
	Name          string          `json:"name"`
	Handle        string          `json:"handle"`
	Bio           string          `json:"bio"`
	Stats         Stats           `json:"stats"`
	RecentReviews []review.Review `json:"recent_reviews"`
}

type ReviewSource interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]review.Review, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

type FavouriteSource interface {
	CountByUser(ctx context.Context, userID string) (int, error)
}

type GraphSource interface {
	Counts(ctx context.Context, userID string) (following, followers int, err error)
}

type Service struct {
	users      *user.Service
	reviews    ReviewSource
	favourites FavouriteSource
	graph      GraphSource
}

func NewService(users *user.Service, reviews ReviewSource, favourites FavouriteSource, graph GraphSource) *Service {
	return &Service{
		users:      users,
		reviews:    reviews,
		favourites: favourites,
		graph:      graph,
	}
}

func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	recent, err := s.reviews.ListByUser(ctx, userID, recentReviewsLimit)
	if err != nil {
		return Profile{}, err
	}
	reviewCount, err := s.reviews.CountByUser(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	favouriteCount, err := s.favourites.CountByUser(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	following, followers, err := s.graph.Counts(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	if recent == nil {
		recent = []review.Review{}
	}
	return Profile{
		Name:   u.Name,
		Handle: u.Handle,
		Bio:    u.Bio,
		Stats: Stats{
			Reviews:    reviewCount,
			Favourites: favouriteCount,
			Following:  following,
			Followers:  followers,
		},
		RecentReviews: recent,
	}, nil
}
