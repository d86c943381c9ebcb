package db

import (
	"context"

	"github.com/ajay-gandhi/alfred4.0/internal/order"
)

// PendingOrder is one captured order line: a single item (or a donor marker)
// a user wants from a restaurant. Restaurant and item names are free text;
// they are resolved against the catalog only when the batch is submitted.
type PendingOrder struct {
	ID         int64
	UserID     string
	Restaurant string
	Item       string
	Options    []string
	IsDonor    bool
}

// AddOrder records one item line for a user.
func (db *DB) AddOrder(ctx context.Context, userID, restaurant, item string, options []string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO pending_orders (user_id, restaurant, item, options)
         VALUES ($1, $2, $3, $4)`,
		userID, restaurant, item, options,
	)
	return err
}

// AddDonor records that a user chips in for a restaurant without ordering.
func (db *DB) AddDonor(ctx context.Context, userID, restaurant string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO pending_orders (user_id, restaurant, is_donor)
         VALUES ($1, $2, TRUE)`,
		userID, restaurant,
	)
	return err
}

// ForgetOrders drops everything a user has pending.
func (db *DB) ForgetOrders(ctx context.Context, userID string) (int64, error) {
	ct, err := db.pool.Exec(ctx, `DELETE FROM pending_orders WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

// ListPendingOrders returns every pending line in capture order.
func (db *DB) ListPendingOrders(ctx context.Context) ([]PendingOrder, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, restaurant, item, options, is_donor
		 FROM pending_orders
		 ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []PendingOrder
	for rows.Next() {
		var p PendingOrder
		if err := rows.Scan(&p.ID, &p.UserID, &p.Restaurant, &p.Item, &p.Options, &p.IsDonor); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ClearRestaurantOrders removes the pending lines that went into a submitted
// batch. Called only after the batch reaches a successful terminal result.
func (db *DB) ClearRestaurantOrders(ctx context.Context, restaurants []string) error {
	if len(restaurants) == 0 {
		return nil
	}
	_, err := db.pool.Exec(ctx,
		`DELETE FROM pending_orders WHERE restaurant = ANY($1)`,
		restaurants,
	)
	return err
}

// GroupedPendingOrders turns the day's pending lines into per-restaurant
// batches. The grouping key is the catalog restaurant name when the free
// text resolves, otherwise the text as captured; batches and participants
// keep first-seen order.
func (db *DB) GroupedPendingOrders(ctx context.Context) ([]order.Batch, map[string][]string, error) {
	lines, err := db.ListPendingOrders(ctx)
	if err != nil {
		return nil, nil, err
	}
	names, err := db.RestaurantNames(ctx)
	if err != nil {
		return nil, nil, err
	}
	batches, raw := GroupOrders(lines, names)
	return batches, raw, nil
}
