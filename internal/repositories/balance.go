package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-coin-exchange/internal/models"
	"github.com/shopspring/decimal"
)

// BalanceWriteRepository mutates ledger balances. All methods are meant to
// run inside a transaction taken from ctx.
type BalanceWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewBalanceWriteRepository(db *sqlx.DB, txGetter TxGetter) *BalanceWriteRepository {
	return &BalanceWriteRepository{db: db, txGetter: txGetter}
}

// Lock takes a transaction-scoped advisory lock on the user's ledger.
// Concurrent transactions touching the same user queue behind it.
func (r *BalanceWriteRepository) Lock(ctx context.Context, username string) error {
	const query = `SELECT pg_advisory_xact_lock(hashtext($1))`

	_, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, username)
	logQuery(query, []any{username}, nil, err)

	return err
}

// Get returns the balance for (username, symbol), locking the row.
// A missing row is a zero balance.
func (r *BalanceWriteRepository) Get(ctx context.Context, username, symbol string) (decimal.Decimal, error) {
	const query = `
		SELECT amount
		FROM balances
		WHERE username = $1 AND coin_symbol = $2
		FOR UPDATE
	`

	var amount decimal.Decimal
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &amount, query, username, symbol)
	logQuery(query, []any{username, symbol}, amount, err)

	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, nil
	}
	return amount, err
}

// Credit performs an UPSERT: creates the balance row if not exists, otherwise increases it.
func (r *BalanceWriteRepository) Credit(ctx context.Context, username, symbol string, amount decimal.Decimal) (decimal.Decimal, error) {
	const query = `
		INSERT INTO balances (username, coin_symbol, amount, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (username, coin_symbol)
		DO UPDATE SET amount = balances.amount + EXCLUDED.amount, updated_at = NOW()
		RETURNING amount
	`

	var balance decimal.Decimal
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &balance, query, username, symbol, amount)
	logQuery(query, []any{username, symbol, amount}, balance, err)

	return balance, err
}

// Debit decreases the balance only when it covers amount.
// Returns sql.ErrNoRows when the balance is missing or insufficient.
func (r *BalanceWriteRepository) Debit(ctx context.Context, username, symbol string, amount decimal.Decimal) (decimal.Decimal, error) {
	const query = `
		UPDATE balances
		SET amount = amount - $3, updated_at = NOW()
		WHERE username = $1 AND coin_symbol = $2 AND amount >= $3
		RETURNING amount
	`

	var balance decimal.Decimal
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &balance, query, username, symbol, amount)
	logQuery(query, []any{username, symbol, amount}, balance, err)

	return balance, err
}

// BalanceReadRepository handles balance read operations
type BalanceReadRepository struct {
	db *sqlx.DB
}

func NewBalanceReadRepository(db *sqlx.DB) *BalanceReadRepository {
	return &BalanceReadRepository{db: db}
}

// GetByUsername retrieves all balances of a user ordered by coin symbol.
func (r *BalanceReadRepository) GetByUsername(ctx context.Context, username string) ([]models.Balance, error) {
	const query = `
		SELECT username, coin_symbol, amount, updated_at
		FROM balances
		WHERE username = $1
		ORDER BY coin_symbol
	`

	balances := []models.Balance{}
	err := r.db.SelectContext(ctx, &balances, query, username)
	logQuery(query, []any{username}, len(balances), err)

	return balances, err
}
