package review

import (
	"context"
	"errors"
	"strings"

	"bookbuddy/internal/book"
)

const defaultMyReviewsLimit = 50

type Service struct {
	repo    Repository
	catalog BookCatalog
}

func NewService(repo Repository, catalog BookCatalog) *Service {
	return &Service{repo: repo, catalog: catalog}
}

type AddInput struct {
	BookTitle string
	Rating    int
	Text      string
}

// Add stores a review against an existing catalog book. The rating is
// clamped into range rather than rejected.
func (s *Service) Add(ctx context.Context, userID string, in AddInput) (Review, error) {
	title := strings.TrimSpace(in.BookTitle)
	text := strings.TrimSpace(in.Text)
	if title == "" || text == "" {
		return Review{}, errors.New("book title and review text are required")
	}

	b, err := s.catalog.GetByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, book.ErrNotFound) {
			return Review{}, ErrInvalidBook
		}
		return Review{}, err
	}

	rating := in.Rating
	if rating < MinRating {
		rating = MinRating
	}
	if rating > MaxRating {
		rating = MaxRating
	}

	rev := Review{
		UserID:     userID,
		BookTitle:  b.Title,
		BookAuthor: b.Author,
		BookCover:  b.CoverURL,
		Rating:     rating,
		Text:       text,
	}
	if err := s.repo.Create(ctx, &rev); err != nil {
		return Review{}, err
	}
	return rev, nil
}

// ForBook returns the book's reviews, newest first, with aggregates.
func (s *Service) ForBook(ctx context.Context, title string) ([]Review, Stats, error) {
	b, err := s.catalog.GetByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, book.ErrNotFound) {
			return nil, Stats{}, ErrInvalidBook
		}
		return nil, Stats{}, err
	}

	reviews, err := s.repo.ListByBookTitle(ctx, b.Title)
	if err != nil {
		return nil, Stats{}, err
	}
	stats, err := s.repo.StatsByBookTitle(ctx, b.Title)
	if err != nil {
		return nil, Stats{}, err
	}
	return reviews, stats, nil
}

func (s *Service) ForUser(ctx context.Context, userID string, limit int) ([]Review, error) {
	if limit <= 0 {
		limit = defaultMyReviewsLimit
	}
	return s.repo.ListByUser(ctx, userID, limit)
}
