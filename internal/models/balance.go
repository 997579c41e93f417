package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance represents a ledger row keyed by (username, coin_symbol)
type Balance struct {
	Username   string          `json:"user" db:"username"`           // Owner of the balance
	CoinSymbol string          `json:"coin_symbol" db:"coin_symbol"` // Coin symbol
	Amount     decimal.Decimal `json:"amount" db:"amount"`           // Current amount, never negative
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`   // Timestamp of the last mutation
}
