// Package review holds user reviews. Each review snapshots the book's
// title, author and cover at write time, so reviews survive catalog
// edits and renames.
package review

import (
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("review not found")
	ErrInvalidBook = errors.New("unknown book")
)

const (
	MinRating = 0
	MaxRating = 5
)

type Review struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	BookTitle  string    `json:"book_title"`
	BookAuthor string    `json:"book_author"`
	BookCover  string    `json:"book_cover"`
	Rating     int       `json:"rating"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created"`

	// DisplayUser is derived from the author's handle, name or email
	// local part, in that order. Never empty on read paths.
	DisplayUser string `json:"user"`
}

// Stats is the aggregate a book page shows above its reviews.
type Stats struct {
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int     `json:"review_count"`
}
