package database

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func New(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL,
    balance       BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0),
    token         TEXT NOT NULL DEFAULT '',
    terminal      TEXT NOT NULL DEFAULT '',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS stores (
    id    TEXT PRIMARY KEY,
    owner TEXT NOT NULL REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS books (
    store_id       TEXT NOT NULL REFERENCES stores(id),
    book_id        TEXT NOT NULL,
    stock_level    BIGINT NOT NULL CHECK (stock_level >= 0),
    price          BIGINT NOT NULL,
    title          TEXT NOT NULL DEFAULT '',
    author         TEXT NOT NULL DEFAULT '',
    publisher      TEXT NOT NULL DEFAULT '',
    original_title TEXT NOT NULL DEFAULT '',
    translator     TEXT NOT NULL DEFAULT '',
    pub_year       TEXT NOT NULL DEFAULT '',
    pages          BIGINT NOT NULL DEFAULT 0,
    binding        TEXT NOT NULL DEFAULT '',
    isbn           TEXT NOT NULL DEFAULT '',
    currency_unit  TEXT NOT NULL DEFAULT '',
    tags           TEXT NOT NULL DEFAULT '',
    pictures       TEXT NOT NULL DEFAULT '',
    author_intro   TEXT NOT NULL DEFAULT '',
    book_intro     TEXT NOT NULL DEFAULT '',
    content        TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (store_id, book_id)
);
CREATE INDEX IF NOT EXISTS books_title_idx ON books (title);
CREATE INDEX IF NOT EXISTS books_author_idx ON books (author);

CREATE TABLE IF NOT EXISTS orders (
    id          TEXT PRIMARY KEY,
    buyer       TEXT REFERENCES users(id) ON DELETE SET NULL,
    store_id    TEXT NOT NULL REFERENCES stores(id),
    total_price BIGINT NOT NULL,
    status      TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS orders_buyer_idx ON orders (buyer);

CREATE TABLE IF NOT EXISTS order_lines (
    order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
    book_id  TEXT NOT NULL,
    count    BIGINT NOT NULL CHECK (count > 0),
    price    BIGINT NOT NULL,
    PRIMARY KEY (order_id, book_id)
);
`

// Migrate applies the idempotent schema. Safe to run on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
