package transactor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-coin-exchange/internal/logger"
)

// contextKey is an unexported type for keys in context
type contextKey struct{}

var txKey = contextKey{}

// unit is a transaction together with the callbacks to run once it commits.
type unit struct {
	tx    *sqlx.Tx
	mu    sync.Mutex
	hooks []func()
}

// WithTx stores a transaction in the context
func WithTx(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey, &unit{tx: tx})
}

func unitFrom(ctx context.Context) *unit {
	u, _ := ctx.Value(txKey).(*unit)
	return u
}

// GetTxFromContext retrieves the transaction from the context. Returns nil if not present.
func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	if u := unitFrom(ctx); u != nil {
		return u.tx
	}
	return nil
}

// AfterCommit schedules fn to run after the transaction in ctx commits.
// Without a transaction fn runs immediately. Rolled back transactions drop fn.
func AfterCommit(ctx context.Context, fn func()) {
	u := unitFrom(ctx)
	if u == nil {
		fn()
		return
	}
	u.mu.Lock()
	u.hooks = append(u.hooks, fn)
	u.mu.Unlock()
}

// Begin starts a transaction and returns a context carrying it.
func Begin(ctx context.Context, db *sqlx.DB) (context.Context, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return ctx, fmt.Errorf("begin transaction: %w", err)
	}
	return WithTx(ctx, tx), nil
}

// Commit commits the transaction in ctx and runs its after-commit callbacks.
func Commit(ctx context.Context) error {
	u := unitFrom(ctx)
	if u == nil {
		return errors.New("no transaction in context")
	}
	if err := u.tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	u.mu.Lock()
	hooks := u.hooks
	u.hooks = nil
	u.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	return nil
}

// Rollback rolls back the transaction in ctx and drops its callbacks.
func Rollback(ctx context.Context) error {
	u := unitFrom(ctx)
	if u == nil {
		return errors.New("no transaction in context")
	}
	u.mu.Lock()
	u.hooks = nil
	u.mu.Unlock()
	return u.tx.Rollback()
}

// Transactor runs a unit of work inside a single database transaction.
type Transactor struct {
	db *sqlx.DB
}

// New creates a Transactor for the given database.
func New(db *sqlx.DB) *Transactor {
	return &Transactor{db: db}
}

// Do executes fn in a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise. When ctx already carries a
// transaction, fn joins it and the owner decides on commit.
func (t *Transactor) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if GetTxFromContext(ctx) != nil {
		return fn(ctx)
	}

	txCtx, err := Begin(ctx, t.db)
	if err != nil {
		logger.Log.Errorw("failed to begin transaction", "error", err)
		return err
	}

	defer func() {
		if rec := recover(); rec != nil {
			_ = Rollback(txCtx)
			panic(rec)
		}
	}()

	if err := fn(txCtx); err != nil {
		if rbErr := Rollback(txCtx); rbErr != nil {
			logger.Log.Errorw("failed to rollback transaction", "error", rbErr)
		}
		return err
	}

	if err := Commit(txCtx); err != nil {
		logger.Log.Errorw("failed to commit transaction", "error", err)
		return err
	}
	return nil
}
