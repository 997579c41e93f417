package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-coin-exchange/internal/models"
)

// TransactionWriteRepository appends to the transaction log
type TransactionWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewTransactionWriteRepository(db *sqlx.DB, txGetter TxGetter) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts txn and returns its assigned id.
func (r *TransactionWriteRepository) Save(ctx context.Context, txn models.Transaction) (int64, error) {
	const query = `
		INSERT INTO transactions (username, type, coin_symbol, amount, price, total, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	args := []any{txn.Username, txn.Type, txn.CoinSymbol, txn.Amount, txn.Price, txn.Total, txn.Note, txn.CreatedAt}

	var id int64
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &id, query, args...)
	logQuery(query, args, id, err)

	return id, err
}

// TransactionReadRepository reads the transaction log
type TransactionReadRepository struct {
	db *sqlx.DB
}

func NewTransactionReadRepository(db *sqlx.DB) *TransactionReadRepository {
	return &TransactionReadRepository{db: db}
}

// ListByUsername returns up to limit records of a user, most recent first.
func (r *TransactionReadRepository) ListByUsername(ctx context.Context, username string, limit int) ([]models.Transaction, error) {
	const query = `
		SELECT id, username, type, coin_symbol, amount, price, total, note, created_at
		FROM transactions
		WHERE username = $1
		ORDER BY id DESC
		LIMIT $2
	`

	txns := []models.Transaction{}
	err := r.db.SelectContext(ctx, &txns, query, username, limit)
	logQuery(query, []any{username, limit}, len(txns), err)

	return txns, err
}
