package review

import (
	"context"

	"bookbuddy/internal/book"
)

type Repository interface {
	Create(ctx context.Context, rev *Review) error
	ListByBookTitle(ctx context.Context, title string) ([]Review, error)
	StatsByBookTitle(ctx context.Context, title string) (Stats, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]Review, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

// BookCatalog is the slice of the catalog the review flow needs: the
// reviewed book must exist, and its fields get snapshotted.
type BookCatalog interface {
	GetByTitle(ctx context.Context, title string) (book.Book, error)
}
