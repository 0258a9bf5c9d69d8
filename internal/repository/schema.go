package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS wallets (
	id UUID PRIMARY KEY,
	user_id TEXT NOT NULL UNIQUE,
	balance DECIMAL(15, 2) NOT NULL DEFAULT 0 CHECK (balance >= 0),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS transactions (
	id UUID PRIMARY KEY,
	wallet_id UUID NOT NULL REFERENCES wallets(id),
	user_id TEXT NOT NULL,
	amount DECIMAL(15, 2) NOT NULL CHECK (amount > 0),
	type VARCHAR(16) NOT NULL CHECK (type IN ('DEPOSIT', 'WITHDRAWAL', 'PAYMENT', 'SALE', 'COMMISSION')),
	status VARCHAR(16) NOT NULL DEFAULT 'PAID' CHECK (status IN ('PENDING', 'PAID', 'FAILED')),
	description TEXT NOT NULL DEFAULT '',
	order_code TEXT UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
);
CREATE INDEX IF NOT EXISTS idx_transactions_wallet_created ON transactions(wallet_id, created_at DESC);

CREATE TABLE IF NOT EXISTS artworks (
	id TEXT PRIMARY KEY,
	seller_id TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	price DECIMAL(15, 2) NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'draft',
	url TEXT NOT NULL DEFAULT '',
	buyers TEXT[] NOT NULL DEFAULT '{}'
);
CREATE TABLE IF NOT EXISTS exhibitions (
	id TEXT PRIMARY KEY,
	organizer_id TEXT NOT NULL,
	name TEXT NOT NULL DEFAULT '',
	ticket_configured BOOLEAN NOT NULL DEFAULT FALSE,
	ticket_requires_payment BOOLEAN NOT NULL DEFAULT FALSE,
	ticket_price DECIMAL(15, 2) NOT NULL DEFAULT 0,
	registered_users TEXT[] NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS settlement_incidents (
	id UUID PRIMARY KEY,
	kind VARCHAR(16) NOT NULL,
	entity_id TEXT NOT NULL,
	buyer_id TEXT NOT NULL,
	seller_id TEXT NOT NULL,
	gross DECIMAL(15, 2) NOT NULL,
	commission DECIMAL(15, 2) NOT NULL,
	net DECIMAL(15, 2) NOT NULL,
	order_code TEXT NOT NULL,
	error TEXT NOT NULL DEFAULT '',
	status VARCHAR(16) NOT NULL DEFAULT 'OPEN',
	attempts INT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	resolved_at TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_settlement_incidents_open ON settlement_incidents(created_at) WHERE status = 'OPEN';

CREATE TABLE IF NOT EXISTS withdrawal_requests (
	id UUID PRIMARY KEY,
	wallet_id UUID NOT NULL REFERENCES wallets(id),
	user_id TEXT NOT NULL,
	amount DECIMAL(15, 2) NOT NULL CHECK (amount > 0),
	bank_name TEXT NOT NULL,
	bank_account_name TEXT NOT NULL,
	bank_account_number TEXT NOT NULL,
	status VARCHAR(16) NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING', 'APPROVED', 'REJECTED')),
	transaction_id UUID REFERENCES transactions(id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
);
CREATE INDEX IF NOT EXISTS idx_withdrawal_requests_wallet ON withdrawal_requests(wallet_id, created_at DESC);
`

// Migrate creates the ledger, catalog, incident and withdrawal request tables if they do not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
