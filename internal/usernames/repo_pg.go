package usernames

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// CreateIfAbsent claims the username unless the user already has one.
// The user_id unique constraint makes the first writer win.
func (r *PGRepo) CreateIfAbsent(ctx context.Context, userId, username string) (bool, error) {
	const query = `
INSERT INTO username_lookups (username, user_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING`

	res, err := r.DB.ExecContext(ctx, query, username, userId)
	if err != nil {
		return false, err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return inserted > 0, nil
}

// GetByUser returns the username owned by a user.
func (r *PGRepo) GetByUser(ctx context.Context, userId string) (string, error) {
	const query = `SELECT username FROM username_lookups WHERE user_id = $1`

	var username string
	err := r.DB.QueryRowContext(ctx, query, userId).Scan(&username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return username, nil
}

// GetUserID resolves a username to its owner.
func (r *PGRepo) GetUserID(ctx context.Context, username string) (string, error) {
	const query = `SELECT user_id FROM username_lookups WHERE username = $1`

	var userId string
	err := r.DB.QueryRowContext(ctx, query, username).Scan(&userId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return userId, nil
}

// Rename swaps the user's username for a new one in a single transaction.
func (r *PGRepo) Rename(ctx context.Context, userId, username string) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	var owner string
	err = tx.QueryRowContext(ctx, `SELECT user_id FROM username_lookups WHERE username = $1`, username).Scan(&owner)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Free to claim.
	case err != nil:
		return false, err
	case owner == userId:
		return true, tx.Commit()
	default:
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM username_lookups WHERE user_id = $1`, userId); err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO username_lookups (username, user_id) VALUES ($1, $2)`, username, userId); err != nil {
		// A concurrent rename can claim the name between our SELECT and
		// this INSERT. The loser sees a unique violation, not an outage.
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	return true, tx.Commit()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ Repo = (*PGRepo)(nil)
