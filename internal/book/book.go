package book

import (
	"errors"
	"time"
)

// PlaceholderCover is shown for any book whose cover could not be
// resolved. The only user-visible signal of a failed metadata lookup.
const PlaceholderCover = "https://placehold.co/400x600/EEE/AAA?text=No+Cover"

// DefaultGenre is used when a book is added without a genre.
const DefaultGenre = "Other"

var (
	// ErrNotFound is returned when a book is not found.
	ErrNotFound = errors.New("book not found")
	// ErrAlreadyExists is returned on a duplicate (title, author) pair.
	ErrAlreadyExists = errors.New("book already exists")
)

// Genres is the fixed set of browsing genres.
var Genres = []string{
	"Romance", "Fantasy", "Horror", "Mystery", "Non-fiction",
	"Sci-Fi", "Classics", "Dystopian", "Gothic", "Literary", "Adventure",
}

// Book is a catalog entry. (Title, Author) is unique. The Open Library
// identifiers make re-built cover URLs much more accurate than a stored
// URL alone.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Genre     string    `json:"genre"`
	Year      string    `json:"year,omitempty"`
	CoverURL  string    `json:"cover_url"`
	CoverID   string    `json:"-"`
	ISBN      string    `json:"isbn,omitempty"`
	EditionID string    `json:"-"`
	AvgRating float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Query defines filters and pagination for listing books.
type Query struct {
	Genre  string
	Q      string
	Sort   string // title, top, created_at
	Limit  int
	Offset int
}
