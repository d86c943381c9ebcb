package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ajay-gandhi/alfred4.0/internal/menu"
)

// UpsertMenu replaces a restaurant's scraped menu.
func (db *DB) UpsertMenu(ctx context.Context, r menu.Restaurant) error {
	items, err := json.Marshal(r.Items)
	if err != nil {
		return fmt.Errorf("failed to encode menu for %s: %w", r.Name, err)
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO menus (restaurant, items, scraped_at)
         VALUES ($1, $2, CURRENT_TIMESTAMP)
         ON CONFLICT (restaurant) DO UPDATE SET items = EXCLUDED.items, scraped_at = CURRENT_TIMESTAMP`,
		r.Name, items,
	)
	return err
}

// GetMenu returns one restaurant's catalog entry.
func (db *DB) GetMenu(ctx context.Context, restaurant string) (menu.Restaurant, error) {
	row := db.pool.QueryRow(ctx, `SELECT restaurant, items FROM menus WHERE restaurant = $1`, restaurant)
	var (
		r     menu.Restaurant
		items []byte
	)
	if err := row.Scan(&r.Name, &items); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return menu.Restaurant{}, fmt.Errorf("menu for %s: %w", restaurant, ErrNotFound)
		}
		return menu.Restaurant{}, err
	}
	if err := json.Unmarshal(items, &r.Items); err != nil {
		return menu.Restaurant{}, fmt.Errorf("failed to decode menu for %s: %w", restaurant, err)
	}
	return r, nil
}

// RestaurantNames lists every restaurant in the catalog.
func (db *DB) RestaurantNames(ctx context.Context) ([]string, error) {
	rows, err := db.pool.Query(ctx, `SELECT restaurant FROM menus ORDER BY restaurant`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}
