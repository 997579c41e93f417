package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-coin-exchange/internal/models"
	"github.com/shopspring/decimal"
)

var requestTables = map[models.RequestKind]string{
	models.RequestDeposit:  "deposit_requests",
	models.RequestWithdraw: "withdraw_requests",
}

const requestColumns = `id, username, coin_symbol, requested_amount, approved_amount, address, status, note, created_at, approved_at`

// RequestRepository stores one kind of request queue. Deposit and withdraw
// queues share the layout and differ only by table.
type RequestRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
	table    string
}

// NewRequestRepository creates a repository for the given queue kind.
// It panics on an unknown kind.
func NewRequestRepository(db *sqlx.DB, txGetter TxGetter, kind models.RequestKind) *RequestRepository {
	table, ok := requestTables[kind]
	if !ok {
		panic(fmt.Sprintf("unknown request kind %q", kind))
	}
	return &RequestRepository{db: db, txGetter: txGetter, table: table}
}

// Save inserts a pending request and returns its id.
func (r *RequestRepository) Save(ctx context.Context, req models.Request) (int64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (username, coin_symbol, requested_amount, approved_amount, address, status, note, created_at, approved_at)
		VALUES ($1, $2, $3, NULL, $4, 'pending', '', $5, NULL)
		RETURNING id
	`, r.table)
	args := []any{req.Username, req.CoinSymbol, req.RequestedAmount, req.Address, req.CreatedAt}

	var id int64
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &id, query, args...)
	logQuery(query, args, id, err)

	return id, err
}

// GetForUpdate returns the request and locks its row, or nil if it does not exist.
func (r *RequestRepository) GetForUpdate(ctx context.Context, id int64) (*models.Request, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 FOR UPDATE`, requestColumns, r.table)

	var req models.Request
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &req, query, id)
	logQuery(query, []any{id}, req, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Resolve moves a pending request to a terminal status. It returns nil
// when the request is not pending anymore.
func (r *RequestRepository) Resolve(
	ctx context.Context,
	id int64,
	status models.RequestStatus,
	approvedAmount decimal.NullDecimal,
	note string,
	at time.Time,
) (*models.Request, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $2, approved_amount = $3, note = $4, approved_at = $5
		WHERE id = $1 AND status = 'pending'
		RETURNING %s
	`, r.table, requestColumns)
	args := []any{id, status, approvedAmount, note, at}

	var req models.Request
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &req, query, args...)
	logQuery(query, args, req, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// List returns up to limit requests, most recent first. A nil username lists all users.
func (r *RequestRepository) List(ctx context.Context, username *string, limit int) ([]models.Request, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE ($1::VARCHAR IS NULL OR username = $1)
		ORDER BY id DESC
		LIMIT $2
	`, requestColumns, r.table)

	reqs := []models.Request{}
	err := r.db.SelectContext(ctx, &reqs, query, username, limit)
	logQuery(query, []any{username, limit}, len(reqs), err)

	return reqs, err
}
