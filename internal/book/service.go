package book

import (
	"context"
	"errors"
	"strings"

	"bookbuddy/internal/platform/openlibrary"
)

// Service provides catalog business logic.
type Service struct {
	repo     Repository
	resolver MetadataResolver
}

func NewService(repo Repository, resolver MetadataResolver) *Service {
	return &Service{repo: repo, resolver: resolver}
}

// List returns books matching the query. Stored Open Library identifiers
// take precedence when rebuilding cover URLs.
func (s *Service) List(ctx context.Context, q Query) ([]Book, int, error) {
	books, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	for i := range books {
		books[i].CoverURL = DisplayCover(books[i])
	}
	return books, total, nil
}

// Get returns a book by id.
func (s *Service) Get(ctx context.Context, id string) (Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Book{}, err
	}
	b.CoverURL = DisplayCover(b)
	return b, nil
}

// GetByTitle returns a book by case-insensitive title.
func (s *Service) GetByTitle(ctx context.Context, title string) (Book, error) {
	b, err := s.repo.GetByTitle(ctx, title)
	if err != nil {
		return Book{}, err
	}
	b.CoverURL = DisplayCover(b)
	return b, nil
}

// Describe returns a best-effort description for a book. Empty when the
// lookup fails; callers substitute their own fallback copy.
func (s *Service) Describe(ctx context.Context, b Book) string {
	return s.resolver.Describe(ctx, b.Title, b.Author)
}

// AddInput is the caller-supplied part of a new catalog entry.
type AddInput struct {
	Title  string
	Author string
	Genre  string
	Year   string
	Cover  string
}

// Add creates a catalog entry, enriching it with resolved metadata. The
// resolver's failures are soft: the entry is still created with the
// caller's values and the placeholder cover.
func (s *Service) Add(ctx context.Context, in AddInput) (Book, error) {
	title := strings.TrimSpace(in.Title)
	author := strings.TrimSpace(in.Author)
	if title == "" || author == "" {
		return Book{}, errors.New("title and author are required")
	}

	if _, err := s.repo.FindByTitleAuthor(ctx, title, author); err == nil {
		return Book{}, ErrAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return Book{}, err
	}

	meta := s.resolver.Resolve(ctx, title, author)

	genre := strings.TrimSpace(in.Genre)
	if genre == "" {
		genre = DefaultGenre
	}
	year := strings.TrimSpace(in.Year)
	if year == "" {
		year = meta.Year
	}
	cover := meta.CoverURL
	if cover == "" {
		cover = strings.TrimSpace(in.Cover)
	}
	if cover == "" {
		cover = PlaceholderCover
	}

	b := Book{
		Title:     title,
		Author:    author,
		Genre:     genre,
		Year:      year,
		CoverURL:  cover,
		CoverID:   meta.CoverID,
		ISBN:      meta.ISBN,
		EditionID: meta.EditionID,
	}
	if err := s.repo.Insert(ctx, &b); err != nil {
		return Book{}, err
	}
	return b, nil
}

// EnsureExists returns the catalog row for (title, author), creating it
// without metadata enrichment when absent.
func (s *Service) EnsureExists(ctx context.Context, title, author, genre, year, cover string) (Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if title == "" || author == "" {
		return Book{}, errors.New("title and author are required")
	}

	existing, err := s.repo.FindByTitleAuthor(ctx, title, author)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Book{}, err
	}

	if genre == "" {
		genre = DefaultGenre
	}
	if cover == "" {
		cover = PlaceholderCover
	}
	b := Book{
		Title:    title,
		Author:   author,
		Genre:    genre,
		Year:     year,
		CoverURL: cover,
	}
	if err := s.repo.Insert(ctx, &b); err != nil {
		// Lost a race with a concurrent insert; read the winner.
		if errors.Is(err, ErrAlreadyExists) {
			return s.repo.FindByTitleAuthor(ctx, title, author)
		}
		return Book{}, err
	}
	return b, nil
}

// DisplayCover prefers a URL rebuilt from stored identifiers, then the
// stored URL, then the placeholder.
func DisplayCover(b Book) string {
	if built := openlibrary.CoverURL(b.CoverID, b.ISBN, b.EditionID); built != "" {
		return built
	}
	if b.CoverURL != "" {
		return b.CoverURL
	}
	return PlaceholderCover
}
