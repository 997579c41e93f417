package models

import "github.com/shopspring/decimal"

// QuoteSymbol is the coin every trade is priced and settled in.
const QuoteSymbol = "USDT"

// Coin represents a row of the price catalog
type Coin struct {
	Symbol string          `json:"symbol" db:"symbol"` // Unique coin symbol, upper case
	Price  decimal.Decimal `json:"price" db:"price"`   // Reference price in USDT
}
