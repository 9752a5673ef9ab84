package db

import (
	"context"
	"fmt"
)

// Migrate creates the schema on startup when missing. Statements are
// idempotent so the binary can be pointed at a fresh or existing database.
func (p *Postgres) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS customers (
			plate TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			visits INT NOT NULL DEFAULT 0,
			last_visit DATE NOT NULL DEFAULT CURRENT_DATE
		)`,
		`CREATE TABLE IF NOT EXISTS sales (
			id BIGSERIAL PRIMARY KEY,
			plate TEXT,
			services TEXT NOT NULL,
			total BIGINT NOT NULL,
			method TEXT NOT NULL,
			staff TEXT NOT NULL DEFAULT '',
			tx_type TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS live_bays (
			plate TEXT PRIMARY KEY,
			status TEXT NOT NULL,
			entry_time TIMESTAMPTZ NOT NULL DEFAULT now(),
			staff TEXT NOT NULL DEFAULT '',
			vehicle_type TEXT NOT NULL DEFAULT '',
			service_detail TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS memberships (
			plate TEXT PRIMARY KEY,
			balance_washes INT NOT NULL CHECK (balance_washes >= 0),
			card_type TEXT NOT NULL,
			sale_price BIGINT NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS membership_issues (
			id BIGSERIAL PRIMARY KEY,
			plate TEXT NOT NULL,
			card_type TEXT NOT NULL,
			credits INT NOT NULL,
			sale_price BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS wash_prices (
			service TEXT PRIMARY KEY,
			price BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS inventory (
			item TEXT PRIMARY KEY,
			stock INT NOT NULL CHECK (stock >= 0),
			unit TEXT NOT NULL DEFAULT 'pcs',
			price BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS stock_history (
			id BIGSERIAL PRIMARY KEY,
			item TEXT NOT NULL,
			change INT NOT NULL,
			remaining INT NOT NULL,
			note TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id BIGSERIAL PRIMARY KEY,
			item TEXT NOT NULL,
			amount BIGINT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			username TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			password_hash TEXT,
			role TEXT NOT NULL DEFAULT 'staff',
			dept TEXT NOT NULL DEFAULT 'reception',
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id BIGSERIAL PRIMARY KEY,
			message TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS sales_created_at_idx ON sales (created_at)`,
		`CREATE INDEX IF NOT EXISTS sales_staff_idx ON sales (staff)`,
		`CREATE INDEX IF NOT EXISTS stock_history_item_idx ON stock_history (item)`,
	}

	for _, stmt := range stmts {
		if _, err := p.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
