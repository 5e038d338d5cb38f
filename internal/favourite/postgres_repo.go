package favourite

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"bookbuddy/internal/book"
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

// Toggle deletes the row if present, inserts it otherwise. A single
// round trip each way; the unique constraint breaks insert races.
func (r *PostgresRepo) Toggle(ctx context.Context, userID, bookID string) (bool, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.db.Exec(timeoutCtx,
		`DELETE FROM favourites WHERE user_id = $1 AND book_id = $2`, userID, bookID)
	if err != nil {
		return false, err
	}
	if result.RowsAffected() > 0 {
		return false, nil
	}

	_, err = r.db.Exec(timeoutCtx, `
	INSERT INTO favourites (id, user_id, book_id)
	VALUES (gen_random_uuid(), $1, $2)
	ON CONFLICT (user_id, book_id) DO NOTHING
	`, userID, bookID)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *PostgresRepo) ListBooks(ctx context.Context, userID, q string) ([]book.Book, error) {
	query := `
	SELECT b.id, b.title, b.author, b.genre, b.year, b.cover_url, b.cover_id, b.isbn, b.edition_id, b.created_at, b.updated_at
	FROM books b
	JOIN favourites f ON f.book_id = b.id
	WHERE f.user_id = $1
	`
	args := []any{userID}
	if q != "" {
		query += ` AND (b.title ILIKE $2 OR b.author ILIKE $2)`
		args = append(args, "%"+q+"%")
	}
	query += ` ORDER BY f.created_at DESC`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []book.Book
	for rows.Next() {
		var b book.Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.Genre, &b.Year,
			&b.CoverURL, &b.CoverID, &b.ISBN, &b.EditionID,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) ListBookIDs(ctx context.Context, userID string) ([]string, error) {
	const query = `SELECT book_id FROM favourites WHERE user_id = $1 ORDER BY created_at DESC`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PostgresRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, "SELECT COUNT(*) FROM favourites WHERE user_id = $1", userID).Scan(&total)
	return total, err
}
