package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Reference prices seeded into an empty catalog.
var seedCoins = []struct {
	symbol string
	price  string
}{
	{"BTC", "50000"},
	{"ETH", "2500"},
	{"BNB", "300"},
	{"SOL", "100"},
	{"USDT", "1"},
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS coins (
		symbol VARCHAR(16) PRIMARY KEY,
		price NUMERIC(38,18) NOT NULL CHECK (price >= 0)
	);`,
	`CREATE TABLE IF NOT EXISTS users (
		username VARCHAR(64) PRIMARY KEY,
		pin_hash VARCHAR(255) NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS balances (
		username VARCHAR(64) NOT NULL,
		coin_symbol VARCHAR(16) NOT NULL,
		amount NUMERIC(38,18) NOT NULL DEFAULT 0 CHECK (amount >= 0),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (username, coin_symbol)
	);`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(64) NOT NULL,
		type VARCHAR(16) NOT NULL,
		coin_symbol VARCHAR(16) NOT NULL,
		amount NUMERIC(38,18) NOT NULL,
		price NUMERIC(38,18),
		total NUMERIC(38,18) NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS transactions_username_idx ON transactions (username, id DESC);`,
	requestTableDDL("deposit_requests"),
	requestTableDDL("withdraw_requests"),
}

func requestTableDDL(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(64) NOT NULL,
		coin_symbol VARCHAR(16) NOT NULL,
		requested_amount NUMERIC(38,18) NOT NULL,
		approved_amount NUMERIC(38,18),
		address TEXT NOT NULL DEFAULT '',
		status VARCHAR(16) NOT NULL DEFAULT 'pending',
		note TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		approved_at TIMESTAMPTZ
	);`, table)
}

// Migrate creates the schema if needed, seeds the price catalog and
// ensures an admin user with the given PIN hash exists.
func Migrate(ctx context.Context, db *sqlx.DB, adminPinHash string) error {
	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			logQuery(m, nil, nil, err)
			return fmt.Errorf("migrate: %w", err)
		}
	}

	const coinQuery = `INSERT INTO coins (symbol, price) VALUES ($1, $2) ON CONFLICT (symbol) DO NOTHING`
	for _, c := range seedCoins {
		_, err := db.ExecContext(ctx, coinQuery, c.symbol, c.price)
		logQuery(coinQuery, []any{c.symbol, c.price}, nil, err)
		if err != nil {
			return fmt.Errorf("seed coin %s: %w", c.symbol, err)
		}
	}

	if adminPinHash != "" {
		const adminQuery = `
			INSERT INTO users (username, pin_hash, is_admin, created_at)
			VALUES ('admin', $1, TRUE, NOW())
			ON CONFLICT (username) DO NOTHING
		`
		_, err := db.ExecContext(ctx, adminQuery, adminPinHash)
		logQuery(adminQuery, []any{"***"}, nil, err)
		if err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	}

	return nil
}
