package gateway

import (
	"context"
	"fmt"
	"time"
)

type seedItem struct {
	name     string
	category string
	price    float64
	stock    int
	minStock int
}

var sampleInventory = []seedItem{
	{"A4 paper", "paper", 0.05, 1000, 100},
	{"A4 glossy paper", "paper", 0.20, 600, 80},
	{"Letter-sized paper", "paper", 0.06, 800, 100},
	{"Cardstock", "paper", 0.15, 400, 60},
	{"Colored paper", "paper", 0.10, 500, 75},
	{"Poster paper", "specialty", 0.25, 200, 40},
	{"Envelopes", "product", 0.08, 1200, 150},
	{"Paper plates", "product", 0.12, 300, 50},
}

// Seed populates an empty store with a sample inventory and a little quote
// history, matching the shape the agents expect. Existing rows are left alone.
func (g *SQLiteGateway) Seed(ctx context.Context) error {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer tx.Rollback()

	for _, it := range sampleInventory {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO inventory (item_name, category, unit_price, current_stock, min_stock_level)
			 VALUES (?, ?, ?, ?, ?)`,
			it.name, it.category, it.price, it.stock, it.minStock); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM quote_history`).Scan(&n); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if n == 0 {
		now := time.Now().UTC().Format(time.RFC3339)
		history := []struct {
			customer string
			rate     float64
		}{
			{"C1", 0.05},
			{"C2", 0.10},
		}
		for _, h := range history {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO quote_history (customer_id, discount_rate, quoted_at) VALUES (?, ?, ?)`,
				h.customer, h.rate, now); err != nil {
				return fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
		}
	}

	return tx.Commit()
}
