package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestKind distinguishes the two request queues.
type RequestKind string

const (
	RequestDeposit  RequestKind = "deposit"
	RequestWithdraw RequestKind = "withdraw"
)

// RequestStatus is the adjudication state of a request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// Request represents a deposit or withdraw request row
type Request struct {
	ID              int64               `json:"id" db:"id"`                             // Identifier assigned on creation
	Username        string              `json:"user" db:"username"`                     // Issuing user
	CoinSymbol      string              `json:"coin_symbol" db:"coin_symbol"`           // Coin symbol
	RequestedAmount decimal.Decimal     `json:"requested_amount" db:"requested_amount"` // Amount asked for by the user
	ApprovedAmount  decimal.NullDecimal `json:"approved_amount" db:"approved_amount"`   // Amount granted by the admin, null until approved
	Address         string              `json:"address" db:"address"`                   // Withdraw target or deposit source
	Status          RequestStatus       `json:"status" db:"status"`                     // pending, approved or rejected
	Note            string              `json:"note" db:"note"`                         // Admin note
	CreatedAt       time.Time           `json:"created_at" db:"created_at"`             // Submission timestamp
	ApprovedAt      *time.Time          `json:"approved_at" db:"approved_at"`           // Resolution timestamp, null while pending
}
