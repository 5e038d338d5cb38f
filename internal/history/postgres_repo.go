package history

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

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

func (r *PostgresRepo) Record(ctx context.Context, userID, bookID string) error {
	const query = `
	INSERT INTO history (id, user_id, book_id)
	VALUES (gen_random_uuid(), $1, $2)
	ON CONFLICT (user_id, book_id) DO UPDATE SET viewed_at = now()
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, query, userID, bookID)
	return err
}

func (r *PostgresRepo) List(ctx context.Context, userID, q string) ([]Entry, error) {
	query := `
	SELECT b.id, b.title, b.author, b.genre, b.year, b.cover_url, b.cover_id, b.isbn, b.edition_id, b.created_at, b.updated_at,
	       h.viewed_at
	FROM books b
	JOIN history h ON h.book_id = b.id
	WHERE h.user_id = $1
	`
	args := []any{userID}
	if q != "" {
		query += ` AND (b.title ILIKE $2 OR b.author ILIKE $2)`
		args = append(args, "%"+q+"%")
	}
	query += ` ORDER BY h.viewed_at DESC LIMIT ` + strconv.Itoa(listLimit)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.Book.ID, &e.Book.Title, &e.Book.Author, &e.Book.Genre, &e.Book.Year,
			&e.Book.CoverURL, &e.Book.CoverID, &e.Book.ISBN, &e.Book.EditionID,
			&e.Book.CreatedAt, &e.Book.UpdatedAt,
			&e.ViewedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
