package book

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = `b.id, b.title, b.author, b.genre, b.year, b.cover_url,
	       b.cover_id, b.isbn, b.edition_id, b.created_at, b.updated_at`

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

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Book, int, error) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if q.Genre != "" {
		clauses = append(clauses, fmt.Sprintf("lower(b.genre) = lower($%d)", argn))
		args = append(args, q.Genre)
		argn++
	}

	if q.Q != "" {
		clauses = append(clauses, fmt.Sprintf("(b.title ILIKE $%d OR b.author ILIKE $%d)", argn, argn+1))
		pattern := "%" + q.Q + "%"
		args = append(args, pattern, pattern)
		argn += 2
	}

	where := "WHERE " + strings.Join(clauses, " AND ")

	ratingJoin := `LEFT JOIN (
		SELECT book_title, AVG(rating)::FLOAT AS avg_rating
		FROM reviews GROUP BY book_title
	) r_stats ON r_stats.book_title = b.title`

	sortCol := "b.title"
	order := "ASC"
	switch q.Sort {
	case "top":
		sortCol = "COALESCE(r_stats.avg_rating, 0)"
		order = "DESC"
	case "created_at":
		sortCol = "b.created_at"
		order = "DESC"
	}

	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM books b %s", where)
	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := fmt.Sprintf(`
		SELECT %s, COALESCE(r_stats.avg_rating, 0)
		FROM books b
		%s
		%s
		ORDER BY %s %s, b.title ASC
		LIMIT $%d OFFSET $%d`,
		bookColumns, ratingJoin, where, sortCol, order, argn, argn+1)

	argsWithPage := append([]any{}, args...)
	argsWithPage = append(argsWithPage, q.Limit, q.Offset)
	timeoutCtx2, cancel2 := r.withTimeout(ctx)
	defer cancel2()
	rows, err := r.db.Query(timeoutCtx2, dataSQL, argsWithPage...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := scanBook(rows, &b, true); err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Book, error) {
	query := fmt.Sprintf(`
		SELECT %s, COALESCE(r_stats.avg_rating, 0)
		FROM books b
		LEFT JOIN (
			SELECT book_title, AVG(rating)::FLOAT AS avg_rating
			FROM reviews GROUP BY book_title
		) r_stats ON r_stats.book_title = b.title
		WHERE b.id = $1
		LIMIT 1`, bookColumns)

	var b Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	row := r.db.QueryRow(timeoutCtx, query, id)
	if err := scanBook(row, &b, true); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

// GetByTitle does a case-insensitive title lookup.
func (r *PostgresRepo) GetByTitle(ctx context.Context, title string) (Book, error) {
	query := fmt.Sprintf(`
		SELECT %s, COALESCE(r_stats.avg_rating, 0)
		FROM books b
		LEFT JOIN (
			SELECT book_title, AVG(rating)::FLOAT AS avg_rating
			FROM reviews GROUP BY book_title
		) r_stats ON r_stats.book_title = b.title
		WHERE lower(b.title) = lower($1)
		LIMIT 1`, bookColumns)

	var b Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	row := r.db.QueryRow(timeoutCtx, query, title)
	if err := scanBook(row, &b, true); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

// FindByTitleAuthor does a case-sensitive exact lookup, matching the
// uniqueness constraint.
func (r *PostgresRepo) FindByTitleAuthor(ctx context.Context, title, author string) (Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM books b
		WHERE b.title = $1 AND b.author = $2
		LIMIT 1`, bookColumns)

	var b Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	row := r.db.QueryRow(timeoutCtx, query, title, author)
	if err := scanBook(row, &b, false); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Count(ctx context.Context) (int, error) {
	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, "SELECT COUNT(*) FROM books").Scan(&total)
	return total, err
}

const insertSQL = `
	INSERT INTO books (id, title, author, genre, year, cover_url, cover_id, isbn, edition_id, created_at, updated_at)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, now(), now())
	RETURNING id, created_at, updated_at`

func (r *PostgresRepo) Insert(ctx context.Context, b *Book) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, insertSQL,
		b.Title, b.Author, b.Genre, b.Year, b.CoverURL, b.CoverID, b.ISBN, b.EditionID,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	return mapUniqueViolation(err)
}

// InsertBatch commits all rows in one transaction: a failure mid-batch
// persists nothing.
func (r *PostgresRepo) InsertBatch(ctx context.Context, books []*Book) error {
	if len(books) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, b := range books {
		if err := tx.QueryRow(ctx, insertSQL,
			b.Title, b.Author, b.Genre, b.Year, b.CoverURL, b.CoverID, b.ISBN, b.EditionID,
		).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return mapUniqueViolation(err)
		}
	}

	return tx.Commit(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner, b *Book, withRating bool) error {
	dest := []any{
		&b.ID, &b.Title, &b.Author, &b.Genre, &b.Year, &b.CoverURL,
		&b.CoverID, &b.ISBN, &b.EditionID, &b.CreatedAt, &b.UpdatedAt,
	}
	if withRating {
		dest = append(dest, &b.AvgRating)
	}
	return row.Scan(dest...)
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadyExists
	}
	return err
}
