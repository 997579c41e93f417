package services

import (
	"errors"
	"fmt"

	"github.com/sbilibin2017/gw-coin-exchange/internal/models"
	"github.com/shopspring/decimal"
)

var (
	// ErrValidation is returned for missing or malformed input.
	ErrValidation = errors.New("validation error")
	// ErrCoinNotFound is returned when a symbol is not in the price catalog.
	ErrCoinNotFound = errors.New("coin not found")
	// ErrInsufficientFunds is returned when a debit would drive a balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrRequestNotFound is returned for an unknown deposit or withdraw request id.
	ErrRequestNotFound = errors.New("request not found")
	// ErrAlreadyProcessed is returned when adjudicating a request that is not pending.
	ErrAlreadyProcessed = errors.New("request already processed")
	// ErrPersistence wraps failures of the underlying storage.
	ErrPersistence = errors.New("persistence failure")
	// ErrMarketDataUnavailable is returned when the market data API cannot be reached.
	ErrMarketDataUnavailable = errors.New("market data unavailable")
)

// ledgerScale is the number of decimal places stored by the ledger.
const ledgerScale = 18

var domainErrors = []error{
	ErrValidation,
	ErrCoinNotFound,
	ErrInsufficientFunds,
	ErrRequestNotFound,
	ErrAlreadyProcessed,
	ErrPersistence,
	ErrMarketDataUnavailable,
	ErrUserAlreadyExists,
	ErrUserDoesNotExist,
	ErrInvalidCredentials,
}

// classify wraps any error that is not already a domain error with ErrPersistence.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range domainErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

// errorLabel is the metrics label of an error.
func errorLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrCoinNotFound):
		return "coin_not_found"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrRequestNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyProcessed):
		return "already_processed"
	case errors.Is(err, ErrMarketDataUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// validateAmount requires a positive amount that fits the ledger scale.
func validateAmount(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return validationError("%s must be positive", field)
	}
	if !amount.Equal(amount.Truncate(ledgerScale)) {
		return validationError("%s supports at most %d decimal places", field, ledgerScale)
	}
	return nil
}

func validateKind(kind models.RequestKind) error {
	switch kind {
	case models.RequestDeposit, models.RequestWithdraw:
		return nil
	default:
		return validationError("unknown request kind %q", kind)
	}
}
