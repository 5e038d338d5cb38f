// Package seed fills a fresh catalog from the curated shelves so the
// app has content on first boot.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"bookbuddy/internal/book"
	"bookbuddy/internal/match"
)

// Store is the slice of the catalog repository the seeder needs.
type Store interface {
	Count(ctx context.Context) (int, error)
	FindByTitleAuthor(ctx context.Context, title, author string) (book.Book, error)
	InsertBatch(ctx context.Context, books []*book.Book) error
}

// Resolver looks up cover and edition metadata for a title/author pair.
type Resolver interface {
	Resolve(ctx context.Context, title, author string) match.Metadata
}

// EnsureSeeded inserts every curated entry missing from the store, as a
// single batch, when the catalog holds fewer than minTotal books. The
// threshold is checked once up front; a pass always walks all shelves.
func EnsureSeeded(ctx context.Context, resolver Resolver, store Store, shelves []Shelf, minTotal int) error {
	count, err := store.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: count books: %w", err)
	}
	if count >= minTotal {
		return nil
	}

	log.Printf("Seeding catalog: %d books present, want at least %d", count, minTotal)

	var pending []*book.Book
	for _, shelf := range shelves {
		for _, item := range shelf.Items {
			title := strings.TrimSpace(item.Title)
			author := strings.TrimSpace(item.Author)
			if title == "" || author == "" {
				continue
			}
			genre := strings.TrimSpace(item.Genre)
			if genre == "" {
				genre = book.DefaultGenre
			}

			_, err := store.FindByTitleAuthor(ctx, title, author)
			if err == nil {
				continue
			}
			if !errors.Is(err, book.ErrNotFound) {
				return fmt.Errorf("seed: lookup %q: %w", title, err)
			}

			meta := resolver.Resolve(ctx, title, author)
			cover := meta.CoverURL
			if cover == "" {
				cover = book.PlaceholderCover
			}

			pending = append(pending, &book.Book{
				Title:     title,
				Author:    author,
				Genre:     genre,
				Year:      meta.Year,
				CoverURL:  cover,
				CoverID:   meta.CoverID,
				ISBN:      meta.ISBN,
				EditionID: meta.EditionID,
			})
		}
	}

	if len(pending) == 0 {
		log.Println("Seeding: nothing to insert")
		return nil
	}

	if err := store.InsertBatch(ctx, pending); err != nil {
		return fmt.Errorf("seed: insert batch: %w", err)
	}

	log.Printf("Seeding: inserted %d books", len(pending))
	return nil
}
