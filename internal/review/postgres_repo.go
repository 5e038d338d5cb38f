package review

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookbuddy/internal/user"
)

// reviewColumns joins users so the display name can be derived without
// a second query. Reviews from deleted accounts still render.
const reviewColumns = `
	r.id, r.user_id, r.book_title, r.book_author, r.book_cover,
	r.rating, r.text, r.created_at,
	COALESCE(u.handle, ''), COALESCE(u.name, ''), COALESCE(u.email, '')`

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, rev *Review) error {
	const query = `
	INSERT INTO reviews (id, user_id, book_title, book_author, book_cover, rating, text)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)
	RETURNING id, created_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.QueryRow(timeoutCtx, query,
		rev.UserID, rev.BookTitle, rev.BookAuthor, rev.BookCover, rev.Rating, rev.Text,
	).Scan(&rev.ID, &rev.CreatedAt)
}

func (r *PostgresRepo) ListByBookTitle(ctx context.Context, title string) ([]Review, error) {
	query := `
	SELECT ` + reviewColumns + `
	FROM reviews r
	LEFT JOIN users u ON u.id = r.user_id
	WHERE r.book_title = $1
	ORDER BY r.created_at DESC
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, title)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviews(rows)
}

func (r *PostgresRepo) StatsByBookTitle(ctx context.Context, title string) (Stats, error) {
	const query = `
	SELECT COALESCE(AVG(rating), 0)::FLOAT, COUNT(*)
	FROM reviews
	WHERE book_title = $1
	`
	var stats Stats
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, title).Scan(&stats.AvgRating, &stats.ReviewCount)
	return stats, err
}

func (r *PostgresRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Review, error) {
	query := `
	SELECT ` + reviewColumns + `
	FROM reviews r
	LEFT JOIN users u ON u.id = r.user_id
	WHERE r.user_id = $1
	ORDER BY r.created_at DESC
	LIMIT $2
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviews(rows)
}

func (r *PostgresRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, "SELECT COUNT(*) FROM reviews WHERE user_id = $1", userID).Scan(&total)
	return total, err
}

func scanReviews(rows pgx.Rows) ([]Review, error) {
	var out []Review
	for rows.Next() {
		var rev Review
		var handle, name, email string
		if err := rows.Scan(
			&rev.ID, &rev.UserID, &rev.BookTitle, &rev.BookAuthor, &rev.BookCover,
			&rev.Rating, &rev.Text, &rev.CreatedAt,
			&handle, &name, &email,
		); err != nil {
			return nil, err
		}
		rev.DisplayUser = user.User{Handle: handle, Name: name, Email: email}.DisplayName()
		out = append(out, rev)
	}
	return out, rows.Err()
}
