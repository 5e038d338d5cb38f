package social

import (
	"context"
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

func (r *PostgresRepo) Follow(ctx context.Context, followerID, followeeID string) error {
	const query = `
	INSERT INTO follows (follower_id, followee_id)
	VALUES ($1, $2)
	ON CONFLICT (follower_id, followee_id) DO NOTHING
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, query, followerID, followeeID)
	return err
}

func (r *PostgresRepo) Unfollow(ctx context.Context, followerID, followeeID string) error {
	const query = `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	result, err := r.db.Exec(timeoutCtx, query, followerID, followeeID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`
	var exists bool
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, followerID, followeeID).Scan(&exists)
	return exists, err
}

func (r *PostgresRepo) Following(ctx context.Context, userID, q string) ([]Person, error) {
	return r.listPeople(ctx, `
	SELECT u.name, u.handle
	FROM follows f
	JOIN users u ON u.id = f.followee_id
	WHERE f.follower_id = $1`, userID, q)
}

func (r *PostgresRepo) Followers(ctx context.Context, userID, q string) ([]Person, error) {
	return r.listPeople(ctx, `
	SELECT u.name, u.handle
	FROM follows f
	JOIN users u ON u.id = f.follower_id
	WHERE f.followee_id = $1`, userID, q)
}

func (r *PostgresRepo) listPeople(ctx context.Context, query, userID, q string) ([]Person, error) {
	args := []any{userID}
	if q != "" {
		query += ` AND (u.name ILIKE $2 OR u.handle ILIKE $2)`
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

	var people []Person
	for rows.Next() {
		var p Person
		if err := rows.Scan(&p.Name, &p.Handle); err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

func (r *PostgresRepo) Counts(ctx context.Context, userID string) (int, int, error) {
	const query = `
	SELECT
		(SELECT COUNT(*) FROM follows WHERE follower_id = $1),
		(SELECT COUNT(*) FROM follows WHERE followee_id = $1)
	`
	var following, followers int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, userID).Scan(&following, &followers)
	return following, followers, err
}
