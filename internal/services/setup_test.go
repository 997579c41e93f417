package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/sbilibin2017/gw-coin-exchange/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, dec(want).Equal(got), "expected %s, got %s", want, got)
}

type ledgerKey struct {
	user   string
	symbol string
}

// memStore is an in-memory ledger, transaction log and request queue.
// Do snapshots the state and restores it when fn fails.
type memStore struct {
	mu       sync.Mutex
	coins    map[string]decimal.Decimal
	balances map[ledgerKey]decimal.Decimal
	txns     []models.Transaction
	requests map[models.RequestKind]map[int64]models.Request
	nextReq  int64
}

func newMemStore() *memStore {
	return &memStore{
		coins: map[string]decimal.Decimal{
			"BTC":  dec("50000"),
			"ETH":  dec("2500"),
			"USDT": dec("1"),
			"ZERO": dec("0"),
		},
		balances: map[ledgerKey]decimal.Decimal{},
		requests: map[models.RequestKind]map[int64]models.Request{
			models.RequestDeposit:  {},
			models.RequestWithdraw: {},
		},
	}
}

func (m *memStore) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	balances := make(map[ledgerKey]decimal.Decimal, len(m.balances))
	for k, v := range m.balances {
		balances[k] = v
	}
	txns := append([]models.Transaction(nil), m.txns...)
	requests := map[models.RequestKind]map[int64]models.Request{}
	for kind, reqs := range m.requests {
		requests[kind] = map[int64]models.Request{}
		for id, r := range reqs {
			requests[kind][id] = r
		}
	}

	if err := fn(ctx); err != nil {
		m.balances, m.txns, m.requests = balances, txns, requests
		return err
	}
	return nil
}

func (m *memStore) balance(user, symbol string) decimal.Decimal {
	return m.balances[ledgerKey{user, symbol}]
}

func (m *memStore) setBalance(user, symbol, amount string) {
	m.balances[ledgerKey{user, symbol}] = dec(amount)
}

// coinReader

func (m *memStore) List(ctx context.Context) ([]models.Coin, error) {
	coins := make([]models.Coin, 0, len(m.coins))
	for s, p := range m.coins {
		coins = append(coins, models.Coin{Symbol: s, Price: p})
	}
	sort.Slice(coins, func(i, j int) bool { return coins[i].Symbol < coins[j].Symbol })
	return coins, nil
}

func (m *memStore) GetBySymbol(ctx context.Context, symbol string) (*models.Coin, error) {
	p, ok := m.coins[symbol]
	if !ok {
		return nil, nil
	}
	return &models.Coin{Symbol: symbol, Price: p}, nil
}

// memBalances adapts memStore to BalanceWriter.
type memBalances struct{ *memStore }

func (b memBalances) Lock(ctx context.Context, username string) error { return nil }

func (b memBalances) Get(ctx context.Context, username, symbol string) (decimal.Decimal, error) {
	return b.balance(username, symbol), nil
}

func (b memBalances) Credit(ctx context.Context, username, symbol string, amount decimal.Decimal) (decimal.Decimal, error) {
	k := ledgerKey{username, symbol}
	b.balances[k] = b.balances[k].Add(amount)
	return b.balances[k], nil
}

func (b memBalances) Debit(ctx context.Context, username, symbol string, amount decimal.Decimal) (decimal.Decimal, error) {
	k := ledgerKey{username, symbol}
	if b.balances[k].LessThan(amount) {
		return decimal.Zero, sql.ErrNoRows
	}
	b.balances[k] = b.balances[k].Sub(amount)
	return b.balances[k], nil
}

// memTxns adapts memStore to TransactionWriter.
type memTxns struct{ *memStore }

func (l memTxns) Save(ctx context.Context, txn models.Transaction) (int64, error) {
	txn.ID = int64(len(l.txns) + 1)
	l.txns = append(l.txns, txn)
	return txn.ID, nil
}

// memRequests adapts memStore to RequestStore for one kind.
type memRequests struct {
	*memStore
	kind models.RequestKind
}

func (r memRequests) Save(ctx context.Context, req models.Request) (int64, error) {
	r.nextReq++
	req.ID = r.nextReq
	r.requests[r.kind][req.ID] = req
	return req.ID, nil
}

func (r memRequests) GetForUpdate(ctx context.Context, id int64) (*models.Request, error) {
	req, ok := r.requests[r.kind][id]
	if !ok {
		return nil, nil
	}
	return &req, nil
}

func (r memRequests) Resolve(
	ctx context.Context,
	id int64,
	status models.RequestStatus,
	approvedAmount decimal.NullDecimal,
	note string,
	at time.Time,
) (*models.Request, error) {
	req, ok := r.requests[r.kind][id]
	if !ok || req.Status != models.StatusPending {
		return nil, nil
	}
	req.Status = status
	req.ApprovedAmount = approvedAmount
	req.Note = note
	req.ApprovedAt = &at
	r.requests[r.kind][id] = req
	return &req, nil
}

func (r memRequests) List(ctx context.Context, username *string, limit int) ([]models.Request, error) {
	var out []models.Request
	for _, req := range r.requests[r.kind] {
		if username == nil || req.Username == *username {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// totalValue sums every balance of a symbol across users.
func (m *memStore) totalValue(symbol string) decimal.Decimal {
	sum := decimal.Zero
	for k, v := range m.balances {
		if k.symbol == symbol {
			sum = sum.Add(v)
		}
	}
	return sum
}

type nopPublisher struct{}

func (nopPublisher) Publish(ctx context.Context, txn models.Transaction) {}

func newMemSettlement(m *memStore) *SettlementService {
	svc := NewSettlementService(m, m, memBalances{m}, memTxns{m}, nopPublisher{}, nil)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func newMemRequests(m *memStore) *RequestService {
	svc := NewRequestService(
		m, m, memBalances{m}, memTxns{m},
		memRequests{m, models.RequestDeposit},
		memRequests{m, models.RequestWithdraw},
		nopPublisher{}, nil,
	)
	svc.now = func() time.Time { return fixedNow }
	return svc
}
