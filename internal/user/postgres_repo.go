package user

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = "id, email, password_hash, name, handle, bio, preferences, created_at, updated_at"

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

func (r *PostgresRepo) Create(ctx context.Context, u *User) error {
	const query = `
	INSERT INTO users (id, email, password_hash, name, handle, bio, preferences)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)
	RETURNING id, created_at, updated_at
	`
	prefs, err := json.Marshal(u.Preferences)
	if err != nil {
		return err
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err = r.db.QueryRow(timeoutCtx, query, u.Email, u.PasswordHash, u.Name, u.Handle, u.Bio, prefs).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (User, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *PostgresRepo) GetByHandle(ctx context.Context, handle string) (User, error) {
	return r.getBy(ctx, "handle = $1", handle)
}

func (r *PostgresRepo) getBy(ctx context.Context, where string, arg any) (User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE " + where + " LIMIT 1"

	var u User
	var prefs []byte
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Handle, &u.Bio,
		&prefs, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	u.Preferences = DefaultPreferences()
	if len(prefs) > 0 {
		// Ignore malformed stored JSON and keep the defaults.
		_ = json.Unmarshal(prefs, &u.Preferences)
	}
	return u, nil
}

func (r *PostgresRepo) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) error {
	fields := []string{}
	args := []interface{}{}
	argn := 1

	for key, value := range updates {
		switch key {
		case "name", "handle", "bio":
			fields = append(fields, key+" = $"+strconv.Itoa(argn))
			args = append(args, value)
			argn++
		}
	}

	if len(fields) == 0 {
		return nil
	}

	fields = append(fields, "updated_at = now()")
	args = append(args, userID)

	query := "UPDATE users SET " + strings.Join(fields, ", ") + " WHERE id = $" + strconv.Itoa(argn)
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, query, args...)
	return err
}

func (r *PostgresRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	result, err := r.db.Exec(timeoutCtx, query, passwordHash, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) UpdatePreferences(ctx context.Context, userID string, prefs Preferences) error {
	const query = `UPDATE users SET preferences = $1, updated_at = now() WHERE id = $2`
	raw, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	result, err := r.db.Exec(timeoutCtx, query, raw, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
