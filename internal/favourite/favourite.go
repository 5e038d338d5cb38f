// Package favourite is the per-user saved-books list.
package favourite

import (
	"context"
	"time"

	"bookbuddy/internal/book"
)

type Favourite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BookID    string    `json:"book_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	// Toggle flips the favourite and reports the resulting state.
	Toggle(ctx context.Context, userID, bookID string) (favourited bool, err error)
	ListBooks(ctx context.Context, userID, q string) ([]book.Book, error)
	ListBookIDs(ctx context.Context, userID string) ([]string, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}
