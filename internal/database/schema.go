package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the full DDL for the bookstore. Statements are idempotent so
// EnsureSchema can run at every startup.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	address TEXT NOT NULL DEFAULT '',
	is_admin BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS books (
	id BIGSERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	author TEXT NOT NULL,
	price NUMERIC(10,2) NOT NULL,
	genre TEXT NOT NULL DEFAULT '',
	stock_quantity INT NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
	description TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS orders (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	order_date TIMESTAMPTZ NOT NULL DEFAULT now(),
	total_amount NUMERIC(10,2) NOT NULL,
	status TEXT NOT NULL DEFAULT 'Processing'
);

CREATE TABLE IF NOT EXISTS order_items (
	id BIGSERIAL PRIMARY KEY,
	order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	book_id BIGINT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
	quantity INT NOT NULL CHECK (quantity >= 1),
	price NUMERIC(10,2) NOT NULL
);

CREATE TABLE IF NOT EXISTS shopping_cart (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	book_id BIGINT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
	quantity INT NOT NULL CHECK (quantity >= 1),
	UNIQUE (user_id, book_id)
);

CREATE INDEX IF NOT EXISTS idx_shopping_cart_user_id ON shopping_cart (user_id);
CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders (user_id);
CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items (order_id);
`

// EnsureSchema creates the bookstore tables when they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
