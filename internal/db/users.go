package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ajay-gandhi/alfred4.0/internal/order"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// UpsertUser registers or updates a user's display name and phone number.
func (db *DB) UpsertUser(ctx context.Context, id, displayName, phone string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO users (id, display_name, phone)
         VALUES ($1, $2, $3)
         ON CONFLICT (id) DO UPDATE SET display_name = EXCLUDED.display_name, phone = EXCLUDED.phone`,
		id, displayName, phone,
	)
	return err
}

// GetUser looks a user up by chat identity. Satisfies order.Directory.
func (db *DB) GetUser(ctx context.Context, id string) (order.User, error) {
	row := db.pool.QueryRow(ctx, `SELECT id, display_name, phone FROM users WHERE id = $1`, id)
	var u order.User
	if err := row.Scan(&u.ID, &u.DisplayName, &u.Phone); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return order.User{}, err
	}
	return u, nil
}
