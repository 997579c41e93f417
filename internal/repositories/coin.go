package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-coin-exchange/internal/models"
)

// CoinReadRepository reads the price catalog
type CoinReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewCoinReadRepository(db *sqlx.DB, txGetter TxGetter) *CoinReadRepository {
	return &CoinReadRepository{db: db, txGetter: txGetter}
}

// List returns all coins ordered by symbol.
func (r *CoinReadRepository) List(ctx context.Context) ([]models.Coin, error) {
	const query = `SELECT symbol, price FROM coins ORDER BY symbol`

	coins := []models.Coin{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &coins, query)
	logQuery(query, nil, len(coins), err)

	return coins, err
}

// GetBySymbol returns the coin with the given symbol, or nil if it does not exist.
func (r *CoinReadRepository) GetBySymbol(ctx context.Context, symbol string) (*models.Coin, error) {
	const query = `SELECT symbol, price FROM coins WHERE symbol = $1`

	var coin models.Coin
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &coin, query, symbol)
	logQuery(query, []any{symbol}, coin, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &coin, nil
}
