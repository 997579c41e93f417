package services

//go:generate mockgen -source=settlement.go -destination=mock_settlement.go -package=services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sbilibin2017/gw-coin-exchange/internal/logger"
	"github.com/sbilibin2017/gw-coin-exchange/internal/models"
	"github.com/sbilibin2017/gw-coin-exchange/internal/transactor"
	"github.com/shopspring/decimal"
)

// Transactor runs fn inside a single database transaction.
type Transactor interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// BalanceWriter mutates ledger balances inside a transaction.
type BalanceWriter interface {
	Lock(ctx context.Context, username string) error                                                      // Serialises ledger access of a user
	Get(ctx context.Context, username, symbol string) (decimal.Decimal, error)                            // Zero when the row is missing
	Credit(ctx context.Context, username, symbol string, amount decimal.Decimal) (decimal.Decimal, error) // Returns the new balance
	Debit(ctx context.Context, username, symbol string, amount decimal.Decimal) (decimal.Decimal, error)  // sql.ErrNoRows when not covered
}

// TransactionWriter appends to the transaction log.
type TransactionWriter interface {
	Save(ctx context.Context, txn models.Transaction) (int64, error)
}

// SettlementService buys and sells coins against USDT at the reference price.
type SettlementService struct {
	tx        Transactor
	coins     CoinReader
	balances  BalanceWriter
	txns      TransactionWriter
	publisher TransactionPublisher
	metrics   *Metrics
	now       func() time.Time
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(
	tx Transactor,
	coins CoinReader,
	balances BalanceWriter,
	txns TransactionWriter,
	publisher TransactionPublisher,
	metrics *Metrics,
) *SettlementService {
	return &SettlementService{
		tx:        tx,
		coins:     coins,
		balances:  balances,
		txns:      txns,
		publisher: publisher,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Buy debits price*amount USDT and credits amount of symbol.
func (s *SettlementService) Buy(ctx context.Context, username, symbol string, amount decimal.Decimal) (*models.SettlementResult, error) {
	return s.settle(ctx, models.TransactionBuy, username, symbol, amount)
}

// Sell debits amount of symbol and credits price*amount USDT.
func (s *SettlementService) Sell(ctx context.Context, username, symbol string, amount decimal.Decimal) (*models.SettlementResult, error) {
	return s.settle(ctx, models.TransactionSell, username, symbol, amount)
}

func (s *SettlementService) settle(
	ctx context.Context,
	side models.TransactionType,
	username, symbol string,
	amount decimal.Decimal,
) (result *models.SettlementResult, err error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveSettlement(string(side), err, time.Since(start))
	}()

	symbol = normalizeSymbol(symbol)
	if err := validateTrade(symbol, amount); err != nil {
		return nil, err
	}

	var txn models.Transaction
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		coin, err := s.coins.GetBySymbol(ctx, symbol)
		if err != nil {
			return fmt.Errorf("get coin %s: %w", symbol, err)
		}
		if coin == nil {
			return fmt.Errorf("%w: %s", ErrCoinNotFound, symbol)
		}

		total := coin.Price.Mul(amount).Round(ledgerScale)

		debitSymbol, debitAmount := models.QuoteSymbol, total
		creditSymbol, creditAmount := symbol, amount
		if side == models.TransactionSell {
			debitSymbol, debitAmount = symbol, amount
			creditSymbol, creditAmount = models.QuoteSymbol, total
		}

		if err := s.balances.Lock(ctx, username); err != nil {
			return fmt.Errorf("lock ledger of %s: %w", username, err)
		}

		held, err := s.balances.Get(ctx, username, debitSymbol)
		if err != nil {
			return fmt.Errorf("get %s balance: %w", debitSymbol, err)
		}
		if held.LessThan(debitAmount) {
			return fmt.Errorf("%w: %s balance %s, need %s", ErrInsufficientFunds, debitSymbol, held, debitAmount)
		}

		if !debitAmount.IsZero() {
			if _, err := s.balances.Debit(ctx, username, debitSymbol, debitAmount); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return fmt.Errorf("%w: %s", ErrInsufficientFunds, debitSymbol)
				}
				return fmt.Errorf("debit %s: %w", debitSymbol, err)
			}
		}
		if _, err := s.balances.Credit(ctx, username, creditSymbol, creditAmount); err != nil {
			return fmt.Errorf("credit %s: %w", creditSymbol, err)
		}

		txn = models.Transaction{
			Username:   username,
			Type:       side,
			CoinSymbol: symbol,
			Amount:     amount,
			Price:      decimal.NewNullDecimal(coin.Price),
			Total:      total,
			CreatedAt:  s.now().UTC(),
		}
		txn.ID, err = s.txns.Save(ctx, txn)
		if err != nil {
			return fmt.Errorf("save %s transaction: %w", side, err)
		}

		published := txn
		transactor.AfterCommit(ctx, func() { s.publisher.Publish(ctx, published) })
		return nil
	})
	if err != nil {
		err = classify(err)
		logger.Log.Errorw("settlement failed", "side", side, "user", username, "symbol", symbol, "amount", amount, "error", err)
		return nil, err
	}

	logger.Log.Infow("settlement applied",
		"side", side, "user", username, "symbol", symbol,
		"amount", amount, "price", txn.Price.Decimal, "total", txn.Total, "transaction_id", txn.ID,
	)
	return &models.SettlementResult{
		TransactionID: txn.ID,
		Symbol:        symbol,
		Amount:        amount,
		Price:         txn.Price.Decimal,
		Total:         txn.Total,
	}, nil
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func validateTrade(symbol string, amount decimal.Decimal) error {
	if symbol == "" {
		return validationError("symbol is required")
	}
	if symbol == models.QuoteSymbol {
		return validationError("%s is the quote coin and cannot be traded", models.QuoteSymbol)
	}
	return validateAmount("amount", amount)
}
