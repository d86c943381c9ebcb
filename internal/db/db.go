package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

func (db *DB) Close() {
	db.pool.Close()
}

// RunMigrations runs database migrations
func (db *DB) RunMigrations(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			display_name TEXT NOT NULL,
			phone TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS pending_orders (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			restaurant TEXT NOT NULL,
			item TEXT NOT NULL DEFAULT '',
			options TEXT[] NOT NULL DEFAULT '{}',
			is_donor BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_pending_orders_user ON pending_orders(user_id);
		CREATE INDEX IF NOT EXISTS idx_pending_orders_restaurant ON pending_orders(restaurant);
		CREATE TABLE IF NOT EXISTS menus (
			restaurant TEXT PRIMARY KEY,
			items JSONB NOT NULL,
			scraped_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS order_stats (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			restaurant TEXT NOT NULL,
			amount_cents BIGINT NOT NULL,
			items TEXT[] NOT NULL DEFAULT '{}',
			was_callee BOOLEAN NOT NULL DEFAULT FALSE,
			ordered_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_order_stats_user ON order_stats(user_id);
	`)
	return err
}
