package db

import (
	"context"

	"github.com/ajay-gandhi/alfred4.0/internal/order"
)

var (
	_ order.Directory     = (*DB)(nil)
	_ order.StatsRecorder = (*DB)(nil)
)

// UserStats summarizes one user's ordering history.
type UserStats struct {
	UserID      string
	OrderCount  int64
	TotalCents  int64
	CalleeCount int64
	TopItems    []string
}

// Record persists one participant's spend for a submitted batch. Satisfies
// order.StatsRecorder.
func (db *DB) Record(ctx context.Context, userID, restaurant string, amount order.Money, items []string, wasCallee bool) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO order_stats (user_id, restaurant, amount_cents, items, was_callee)
         VALUES ($1, $2, $3, $4, $5)`,
		userID, restaurant, int64(amount), items, wasCallee,
	)
	return err
}

// GetUserStats aggregates a user's history.
func (db *DB) GetUserStats(ctx context.Context, userID string) (UserStats, error) {
	stats := UserStats{UserID: userID}
	row := db.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(amount_cents), 0), COUNT(*) FILTER (WHERE was_callee)
		 FROM order_stats WHERE user_id = $1`,
		userID,
	)
	if err := row.Scan(&stats.OrderCount, &stats.TotalCents, &stats.CalleeCount); err != nil {
		return stats, err
	}

	rows, err := db.pool.Query(ctx,
		`SELECT item, COUNT(*) AS n
		 FROM order_stats, UNNEST(items) AS item
		 WHERE user_id = $1
		 GROUP BY item
		 ORDER BY n DESC, item
		 LIMIT 5`,
		userID,
	)
	if err != nil {
		return stats, err
	}
	defer rows.Close()
	for rows.Next() {
		var item string
		var n int64
		if err := rows.Scan(&item, &n); err != nil {
			return stats, err
		}
		stats.TopItems = append(stats.TopItems, item)
	}
	return stats, rows.Err()
}
