package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-coin-exchange/internal/models"
)

type UserReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserReadRepository(db *sqlx.DB, txGetter TxGetter) *UserReadRepository {
	return &UserReadRepository{db: db, txGetter: txGetter}
}

// GetByUsername returns the user, or nil if it does not exist.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	const query = `
		SELECT username, pin_hash, is_admin, created_at
		FROM users
		WHERE username = $1
	`

	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, username)
	logQuery(query, []any{username}, user.Username, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users, newest first. PIN hashes are not selected.
func (r *UserReadRepository) List(ctx context.Context) ([]models.UserDB, error) {
	const query = `
		SELECT username, is_admin, created_at
		FROM users
		ORDER BY created_at DESC
	`

	users := []models.UserDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &users, query)
	logQuery(query, nil, len(users), err)

	return users, err
}

type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a regular user. It reports false when the username is taken.
func (r *UserWriteRepository) Save(ctx context.Context, username, pinHash string, createdAt time.Time) (bool, error) {
	const query = `
		INSERT INTO users (username, pin_hash, is_admin, created_at)
		VALUES ($1, $2, FALSE, $3)
		ON CONFLICT (username) DO NOTHING
	`
	args := []any{username, "***", createdAt}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, username, pinHash, createdAt)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, args, rowsAffected, err)

	return rowsAffected == 1, err
}

// UpdatePin replaces the PIN hash. It reports false when the user does not exist.
func (r *UserWriteRepository) UpdatePin(ctx context.Context, username, pinHash string) (bool, error) {
	const query = `UPDATE users SET pin_hash = $2 WHERE username = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, username, pinHash)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, []any{username, "***"}, rowsAffected, err)

	return rowsAffected == 1, err
}
