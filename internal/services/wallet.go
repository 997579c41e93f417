package services

//go:generate mockgen -source=wallet.go -destination=mock_wallet.go -package=services

import (
	"context"

	"github.com/sbilibin2017/gw-coin-exchange/internal/logger"
	"github.com/sbilibin2017/gw-coin-exchange/internal/models"
)

const (
	defaultTransactionsLimit = 50
	maxListLimit             = 500
)

// CoinReader reads the price catalog.
type CoinReader interface {
	List(ctx context.Context) ([]models.Coin, error)                      // Returns all coins
	GetBySymbol(ctx context.Context, symbol string) (*models.Coin, error) // Returns nil when the symbol is unknown
}

// BalanceReader defines methods for reading user balances.
type BalanceReader interface {
	GetByUsername(ctx context.Context, username string) ([]models.Balance, error)
}

// TransactionReader reads the transaction log.
type TransactionReader interface {
	ListByUsername(ctx context.Context, username string, limit int) ([]models.Transaction, error) // Most recent first
}

// WalletService serves read-only views of the catalog and the ledger.
type WalletService struct {
	coins    CoinReader
	balances BalanceReader
	txns     TransactionReader
}

// NewWalletService creates a new WalletService.
func NewWalletService(coins CoinReader, balances BalanceReader, txns TransactionReader) *WalletService {
	return &WalletService{
		coins:    coins,
		balances: balances,
		txns:     txns,
	}
}

// ListCoins returns the price catalog.
func (s *WalletService) ListCoins(ctx context.Context) ([]models.Coin, error) {
	coins, err := s.coins.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list coins", "error", err)
		return nil, classify(err)
	}
	return coins, nil
}

// GetBalances returns all balances of the user. Coins the user never held are absent.
func (s *WalletService) GetBalances(ctx context.Context, username string) ([]models.Balance, error) {
	balances, err := s.balances.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user balances", "user", username, "error", err)
		return nil, classify(err)
	}
	return balances, nil
}

// GetTransactions returns the user's transactions, most recent first.
// A non-positive limit selects the default; the limit is capped.
func (s *WalletService) GetTransactions(ctx context.Context, username string, limit int) ([]models.Transaction, error) {
	txns, err := s.txns.ListByUsername(ctx, username, clampLimit(limit, defaultTransactionsLimit))
	if err != nil {
		logger.Log.Errorw("failed to get transactions", "user", username, "error", err)
		return nil, classify(err)
	}
	return txns, nil
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
