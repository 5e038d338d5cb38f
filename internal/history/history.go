// Package history tracks which books a user has opened. One row per
// (user, book); reopening a book bumps its viewed_at.
package history

import (
	"context"
	"time"

	"bookbuddy/internal/book"
)

// listLimit caps the history page; older entries just age out of view.
const listLimit = 100

type Entry struct {
	Book     book.Book `json:"book"`
	ViewedAt time.Time `json:"viewed_at"`
}

type Repository interface {
	Record(ctx context.Context, userID, bookID string) error
	List(ctx context.Context, userID, q string) ([]Entry, error)
}
