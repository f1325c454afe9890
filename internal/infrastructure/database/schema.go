package database

import (
	"context"
	"fmt"
	"log"
)

// schema is executed at startup. Idempotent, so every instance can run
// it; real migrations can replace this later without touching callers.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	full_name TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'user',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS products (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	author TEXT,
	genre TEXT,
	publisher TEXT,
	isbn TEXT,
	language TEXT,
	format TEXT,
	pages INTEGER,
	dimensions TEXT,
	weight NUMERIC(10,2),
	image TEXT,
	price NUMERIC(18,2) NOT NULL CHECK (price >= 0),
	stock_quantity INTEGER NOT NULL DEFAULT 0,
	total_sold INTEGER NOT NULL DEFAULT 0,
	rating DOUBLE PRECISION NOT NULL DEFAULT 0,
	is_available_in_store BOOLEAN NOT NULL DEFAULT false,
	is_bestseller BOOLEAN NOT NULL DEFAULT false,
	is_award_winner BOOLEAN NOT NULL DEFAULT false,
	is_new_release BOOLEAN NOT NULL DEFAULT false,
	is_coming_soon BOOLEAN NOT NULL DEFAULT false,
	on_sale BOOLEAN NOT NULL DEFAULT false,
	discount_percent NUMERIC(5,2),
	discount_start_at TIMESTAMPTZ,
	discount_end_at TIMESTAMPTZ,
	publication_date TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_products_genre ON products (genre);
CREATE INDEX IF NOT EXISTS idx_products_price ON products (price);

CREATE TABLE IF NOT EXISTS cart_items (
	id SERIAL PRIMARY KEY,
	user_id UUID NOT NULL,
	product_id INTEGER NOT NULL REFERENCES products (id) ON DELETE CASCADE,
	quantity INTEGER NOT NULL CHECK (quantity > 0),
	unit_price NUMERIC(18,2) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (user_id, product_id)
);

CREATE TABLE IF NOT EXISTS orders (
	id SERIAL PRIMARY KEY,
	user_id UUID NOT NULL,
	full_name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT NOT NULL,
	address TEXT NOT NULL,
	city TEXT NOT NULL,
	postal_code TEXT NOT NULL,
	payment_method TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	claim_code TEXT NOT NULL UNIQUE,
	order_date TIMESTAMPTZ NOT NULL DEFAULT now(),
	cancelled_at TIMESTAMPTZ,
	claimed_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS order_items (
	id SERIAL PRIMARY KEY,
	order_id INTEGER NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
	product_id INTEGER NOT NULL REFERENCES products (id),
	quantity INTEGER NOT NULL CHECK (quantity > 0),
	unit_price NUMERIC(18,2) NOT NULL
);

CREATE TABLE IF NOT EXISTS reviews (
	id SERIAL PRIMARY KEY,
	product_id INTEGER NOT NULL REFERENCES products (id) ON DELETE CASCADE,
	user_id UUID NOT NULL,
	user_name TEXT NOT NULL,
	rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
	comment TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (user_id, product_id)
);

CREATE TABLE IF NOT EXISTS bookmarks (
	id SERIAL PRIMARY KEY,
	user_id UUID NOT NULL,
	product_id INTEGER NOT NULL REFERENCES products (id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (user_id, product_id)
);

CREATE TABLE IF NOT EXISTS banners (
	id SERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	subtitle TEXT,
	image_url TEXT NOT NULL,
	link_url TEXT,
	is_active BOOLEAN NOT NULL DEFAULT true,
	display_order INTEGER NOT NULL DEFAULT 0,
	start_at TIMESTAMPTZ,
	end_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ
);
`

// Bootstrap creates the tables when they do not exist yet.
func (db *PostgresDB) Bootstrap(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	if _, err := db.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("schema bootstrap failed: %w", err)
	}

	log.Println("[DATABASE] Schema bootstrap completed")
	return nil
}
