package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the kind of a balance-affecting event.
type TransactionType string

const (
	TransactionBuy      TransactionType = "buy"
	TransactionSell     TransactionType = "sell"
	TransactionDeposit  TransactionType = "deposit"
	TransactionWithdraw TransactionType = "withdraw"
)

// Transaction is an immutable entry of the transaction log.
type Transaction struct {
	ID         int64               `json:"id" db:"id"`                   // Monotonic identifier
	Username   string              `json:"user" db:"username"`           // User whose balance changed
	Type       TransactionType     `json:"type" db:"type"`               // buy, sell, deposit or withdraw
	CoinSymbol string              `json:"coin_symbol" db:"coin_symbol"` // Coin that was traded or moved
	Amount     decimal.Decimal     `json:"amount" db:"amount"`           // Coin amount
	Price      decimal.NullDecimal `json:"price" db:"price"`             // Unit price, null for deposit and withdraw
	Total      decimal.Decimal     `json:"total" db:"total"`             // amount * price, or the approved amount
	Note       string              `json:"note" db:"note"`               // Free-text note
	CreatedAt  time.Time           `json:"created_at" db:"created_at"`   // Creation timestamp
}

// SettlementResult echoes a completed buy or sell.
type SettlementResult struct {
	TransactionID int64           `json:"transaction_id"`
	Symbol        string          `json:"symbol"`
	Amount        decimal.Decimal `json:"amount"`
	Price         decimal.Decimal `json:"price"`
	Total         decimal.Decimal `json:"total"`
}
