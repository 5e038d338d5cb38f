package book

import (
	"context"

	"bookbuddy/internal/match"
)

// Repository defines the contract for catalog storage.
type Repository interface {
	List(ctx context.Context, q Query) ([]Book, int, error)
	GetByID(ctx context.Context, id string) (Book, error)
	GetByTitle(ctx context.Context, title string) (Book, error)
	FindByTitleAuthor(ctx context.Context, title, author string) (Book, error)
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, b *Book) error
	InsertBatch(ctx context.Context, books []*Book) error
}

// MetadataResolver is the slice of the matcher the catalog needs.
type MetadataResolver interface {
	Resolve(ctx context.Context, title, author string) match.Metadata
	Describe(ctx context.Context, title, author string) string
}
