package services

//go:generate mockgen -source=request.go -destination=mock_request.go -package=services

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

const (
	defaultUserRequestsLimit = 50
	defaultAllRequestsLimit  = 100
)

// RequestStore persists deposit or withdraw requests of one kind.
type RequestStore interface {
	Save(ctx context.Context, req models.Request) (int64, error)
	GetForUpdate(ctx context.Context, id int64) (*models.Request, error) // Returns nil when the id is unknown
	Resolve(
		ctx context.Context,
		id int64,
		status models.RequestStatus,
		approvedAmount decimal.NullDecimal,
		note string,
		at time.Time,
	) (*models.Request, error) // Returns nil when the request is not pending
	List(ctx context.Context, username *string, limit int) ([]models.Request, error)
}

// RequestService handles the deposit and withdraw request lifecycle.
type RequestService struct {
	tx        Transactor
	coins     CoinReader
	balances  BalanceWriter
	txns      TransactionWriter
	stores    map[models.RequestKind]RequestStore
	publisher TransactionPublisher
	metrics   *Metrics
	now       func() time.Time
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	tx Transactor,
	coins CoinReader,
	balances BalanceWriter,
	txns TransactionWriter,
	deposits RequestStore,
	withdraws RequestStore,
	publisher TransactionPublisher,
	metrics *Metrics,
) *RequestService {
	return &RequestService{
		tx:       tx,
		coins:    coins,
		balances: balances,
		txns:     txns,
		stores: map[models.RequestKind]RequestStore{
			models.RequestDeposit:  deposits,
			models.RequestWithdraw: withdraws,
		},
		publisher: publisher,
		metrics:   metrics,
		now:       time.Now,
	}
}

// SubmitDeposit creates a pending deposit request. The balance is untouched.
func (s *RequestService) SubmitDeposit(ctx context.Context, username, symbol string, amount decimal.Decimal) (int64, error) {
	return s.submit(ctx, models.RequestDeposit, username, symbol, amount, "")
}

// SubmitWithdraw creates a pending withdraw request. Funds are not reserved.
func (s *RequestService) SubmitWithdraw(ctx context.Context, username, symbol string, amount decimal.Decimal, address string) (int64, error) {
	return s.submit(ctx, models.RequestWithdraw, username, symbol, amount, strings.TrimSpace(address))
}

func (s *RequestService) submit(
	ctx context.Context,
	kind models.RequestKind,
	username, symbol string,
	amount decimal.Decimal,
	address string,
) (id int64, err error) {
	defer func() {
		s.metrics.ObserveRequest(string(kind), "submit", err)
	}()

	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return 0, validationError("symbol is required")
	}
	if err := validateAmount("amount", amount); err != nil {
		return 0, err
	}

	err = s.tx.Do(ctx, func(ctx context.Context) error {
		coin, err := s.coins.GetBySymbol(ctx, symbol)
		if err != nil {
			return fmt.Errorf("get coin %s: %w", symbol, err)
		}
		if coin == nil {
			return fmt.Errorf("%w: %s", ErrCoinNotFound, symbol)
		}

		id, err = s.stores[kind].Save(ctx, models.Request{
			Username:        username,
			CoinSymbol:      symbol,
			RequestedAmount: amount,
			Address:         address,
			Status:          models.StatusPending,
			CreatedAt:       s.now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("save %s request: %w", kind, err)
		}
		return nil
	})
	if err != nil {
		err = classify(err)
		logger.Log.Errorw("request submission failed", "kind", kind, "user", username, "symbol", symbol, "error", err)
		return 0, err
	}

	logger.Log.Infow("request submitted", "kind", kind, "id", id, "user", username, "symbol", symbol, "amount", amount)
	return id, nil
}

// List returns requests of a kind, most recent first. A nil username lists all users.
func (s *RequestService) List(ctx context.Context, kind models.RequestKind, username *string, limit int) ([]models.Request, error) {
	if err := validateKind(kind); err != nil {
		return nil, err
	}

	def := defaultAllRequestsLimit
	if username != nil {
		def = defaultUserRequestsLimit
	}

	reqs, err := s.stores[kind].List(ctx, username, clampLimit(limit, def))
	if err != nil {
		logger.Log.Errorw("failed to list requests", "kind", kind, "error", err)
		return nil, classify(err)
	}
	return reqs, nil
}

// ApproveDeposit approves a pending deposit and credits the approved amount.
func (s *RequestService) ApproveDeposit(ctx context.Context, id int64, amount decimal.Decimal, note string) (*models.Request, error) {
	return s.approve(ctx, models.RequestDeposit, id, amount, note)
}

// ApproveWithdraw approves a pending withdraw and debits the approved amount.
// The request stays pending when the balance does not cover it.
func (s *RequestService) ApproveWithdraw(ctx context.Context, id int64, amount decimal.Decimal, note string) (*models.Request, error) {
	return s.approve(ctx, models.RequestWithdraw, id, amount, note)
}

func (s *RequestService) approve(
	ctx context.Context,
	kind models.RequestKind,
	id int64,
	amount decimal.Decimal,
	note string,
) (resolved *models.Request, err error) {
	defer func() {
		s.metrics.ObserveRequest(string(kind), "approve", err)
	}()

	if err := validateAmount("approved_amount", amount); err != nil {
		return nil, err
	}

	var txn models.Transaction
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		req, err := s.pending(ctx, kind, id)
		if err != nil {
			return err
		}

		if err := s.balances.Lock(ctx, req.Username); err != nil {
			return fmt.Errorf("lock ledger of %s: %w", req.Username, err)
		}

		txType := models.TransactionDeposit
		if kind == models.RequestWithdraw {
			txType = models.TransactionWithdraw
			held, err := s.balances.Get(ctx, req.Username, req.CoinSymbol)
			if err != nil {
				return fmt.Errorf("get %s balance: %w", req.CoinSymbol, err)
			}
			if held.LessThan(amount) {
				return fmt.Errorf("%w: %s balance %s, need %s", ErrInsufficientFunds, req.CoinSymbol, held, amount)
			}
			if _, err := s.balances.Debit(ctx, req.Username, req.CoinSymbol, amount); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return fmt.Errorf("%w: %s", ErrInsufficientFunds, req.CoinSymbol)
				}
				return fmt.Errorf("debit %s: %w", req.CoinSymbol, err)
			}
		} else {
			if _, err := s.balances.Credit(ctx, req.Username, req.CoinSymbol, amount); err != nil {
				return fmt.Errorf("credit %s: %w", req.CoinSymbol, err)
			}
		}

		now := s.now().UTC()
		resolved, err = s.resolve(ctx, kind, id, models.StatusApproved, decimal.NewNullDecimal(amount), note, now)
		if err != nil {
			return err
		}

		txn = models.Transaction{
			Username:   req.Username,
			Type:       txType,
			CoinSymbol: req.CoinSymbol,
			Amount:     amount,
			Total:      amount,
			Note:       note,
			CreatedAt:  now,
		}
		txn.ID, err = s.txns.Save(ctx, txn)
		if err != nil {
			return fmt.Errorf("save %s transaction: %w", txType, err)
		}

		published := txn
		transactor.AfterCommit(ctx, func() { s.publisher.Publish(ctx, published) })
		return nil
	})
	if err != nil {
		err = classify(err)
		logger.Log.Errorw("request approval failed", "kind", kind, "id", id, "error", err)
		return nil, err
	}

	logger.Log.Infow("request approved",
		"kind", kind, "id", id, "user", resolved.Username, "symbol", resolved.CoinSymbol,
		"approved_amount", amount, "transaction_id", txn.ID,
	)
	return resolved, nil
}

// Reject moves a pending request to rejected. The balance is untouched.
func (s *RequestService) Reject(ctx context.Context, kind models.RequestKind, id int64, note string) (resolved *models.Request, err error) {
	defer func() {
		s.metrics.ObserveRequest(string(kind), "reject", err)
	}()

	if err := validateKind(kind); err != nil {
		return nil, err
	}

	err = s.tx.Do(ctx, func(ctx context.Context) error {
		if _, err := s.pending(ctx, kind, id); err != nil {
			return err
		}
		resolved, err = s.resolve(ctx, kind, id, models.StatusRejected, decimal.NullDecimal{}, note, s.now().UTC())
		return err
	})
	if err != nil {
		err = classify(err)
		logger.Log.Errorw("request rejection failed", "kind", kind, "id", id, "error", err)
		return nil, err
	}

	logger.Log.Infow("request rejected", "kind", kind, "id", id, "user", resolved.Username)
	return resolved, nil
}

// pending locks the request row and checks that it can still be adjudicated.
func (s *RequestService) pending(ctx context.Context, kind models.RequestKind, id int64) (*models.Request, error) {
	req, err := s.stores[kind].GetForUpdate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s request %d: %w", kind, id, err)
	}
	if req == nil {
		return nil, fmt.Errorf("%w: %s request %d", ErrRequestNotFound, kind, id)
	}
	if req.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: %s request %d is %s", ErrAlreadyProcessed, kind, id, req.Status)
	}
	return req, nil
}

func (s *RequestService) resolve(
	ctx context.Context,
	kind models.RequestKind,
	id int64,
	status models.RequestStatus,
	amount decimal.NullDecimal,
	note string,
	at time.Time,
) (*models.Request, error) {
	req, err := s.stores[kind].Resolve(ctx, id, status, amount, note, at)
	if err != nil {
		return nil, fmt.Errorf("resolve %s request %d: %w", kind, id, err)
	}
	if req == nil {
		return nil, fmt.Errorf("%w: %s request %d", ErrAlreadyProcessed, kind, id)
	}
	return req, nil
}
