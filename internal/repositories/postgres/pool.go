// Package postgres implements the repositories on a pgx connection pool.
package postgres

import (
	"context"
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
)

const Schema = `
CREATE TABLE IF NOT EXISTS restaurants (
    restaurant_id BIGINT PRIMARY KEY,
    name          TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS menu_items (
    item_id       BIGSERIAL PRIMARY KEY,
    restaurant_id BIGINT NOT NULL REFERENCES restaurants (restaurant_id),
    name          TEXT NOT NULL,
    category      TEXT NOT NULL DEFAULT 'General',
    base_price    NUMERIC(10, 2) NOT NULL,
    is_active     BOOLEAN NOT NULL DEFAULT TRUE,
    UNIQUE (restaurant_id, name)
);

CREATE TABLE IF NOT EXISTS orders (
    order_id          BIGSERIAL PRIMARY KEY,
    restaurant_id     BIGINT NOT NULL REFERENCES restaurants (restaurant_id),
    external_order_id TEXT NOT NULL,
    total_amount      NUMERIC(12, 2) NOT NULL,
    order_datetime    TIMESTAMPTZ NOT NULL,
    items_text        TEXT NOT NULL,
    order_type        TEXT,
    payment_type      TEXT,
    UNIQUE (restaurant_id, external_order_id)
);

CREATE INDEX IF NOT EXISTS orders_datetime_idx ON orders (restaurant_id, order_datetime);

CREATE TABLE IF NOT EXISTS order_items (
    order_item_id     BIGSERIAL PRIMARY KEY,
    order_id          BIGINT NOT NULL REFERENCES orders (order_id) ON DELETE CASCADE,
    item_name         TEXT NOT NULL,
    menu_item_id      BIGINT REFERENCES menu_items (item_id),
    quantity          INTEGER NOT NULL DEFAULT 1,
    allocated_price   NUMERIC(12, 4) NOT NULL,
    menu_price        NUMERIC(10, 2),
    price_confidence  TEXT NOT NULL,
    match_score       DOUBLE PRECISION NOT NULL,
    allocation_method TEXT NOT NULL
);
`

func NewPool(ctx context.Context, cfg models.DatabaseConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", cfg.DBName, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging %s: %w", cfg.DBName, err)
	}
	return pool, nil
}

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}

func toNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: new(big.Int).Set(d.Coefficient()), Exp: d.Exponent(), Valid: true}
}

func fromNumeric(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
