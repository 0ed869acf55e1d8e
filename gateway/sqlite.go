package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	_ "modernc.org/sqlite"

	"github.com/munderdifflin/orderflow/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS inventory (
	item_name       TEXT PRIMARY KEY,
	category        TEXT NOT NULL DEFAULT '',
	unit_price      REAL NOT NULL,
	current_stock   INTEGER NOT NULL,
	min_stock_level INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS transactions (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	item_name        TEXT NOT NULL,
	transaction_type TEXT NOT NULL CHECK (transaction_type IN ('sales', 'stock_orders')),
	units            INTEGER NOT NULL,
	price            REAL NOT NULL,
	transaction_date TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
	run_id         TEXT PRIMARY KEY,
	transaction_id INTEGER NOT NULL,
	item_name      TEXT NOT NULL,
	units          INTEGER NOT NULL,
	total          REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS quote_history (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	customer_id   TEXT NOT NULL,
	discount_rate REAL NOT NULL,
	quoted_at     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quote_history_customer ON quote_history (customer_id);
`

// SQLiteGateway implements Gateway on a local sqlite database.
type SQLiteGateway struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) the store at path. Use ":memory:"
// for an ephemeral store.
func OpenSQLite(path string) (*SQLiteGateway, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	// The modernc driver is single-writer; serialize access.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteGateway{db: db}, nil
}

// Close releases the underlying database handle.
func (g *SQLiteGateway) Close() error {
	return g.db.Close()
}

func (g *SQLiteGateway) CheckInventory(ctx context.Context, item string) (int, error) {
	if item == "" {
		return 0, fmt.Errorf("%w: empty item", ErrInvalidArgument)
	}
	var stock int
	err := g.db.QueryRowContext(ctx,
		`SELECT current_stock FROM inventory WHERE item_name = ?`, item).Scan(&stock)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: unknown item %q", ErrInvalidArgument, item)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return stock, nil
}

func (g *SQLiteGateway) CheckReorderStatus(ctx context.Context, item string) (bool, error) {
	var stock, min int
	err := g.db.QueryRowContext(ctx,
		`SELECT current_stock, min_stock_level FROM inventory WHERE item_name = ?`, item).
		Scan(&stock, &min)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("%w: unknown item %q", ErrInvalidArgument, item)
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return stock < min, nil
}

// Supplier lead time grows with order size. Tiers carried over from the
// supplier model this store fronts.
func (g *SQLiteGateway) GetDeliveryTimeline(ctx context.Context, item string, quantity int, orderDate time.Time) (time.Time, error) {
	if quantity <= 0 {
		return time.Time{}, fmt.Errorf("%w: quantity %d", ErrInvalidArgument, quantity)
	}
	var leadDays int
	switch {
	case quantity <= 10:
		leadDays = 1
	case quantity <= 100:
		leadDays = 4
	case quantity <= 1000:
		leadDays = 7
	default:
		leadDays = 14
	}
	return orderDate.AddDate(0, 0, leadDays), nil
}

func (g *SQLiteGateway) GetUnitPrice(ctx context.Context, item string) (float64, error) {
	var price float64
	err := g.db.QueryRowContext(ctx,
		`SELECT unit_price FROM inventory WHERE item_name = ?`, item).Scan(&price)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: unknown item %q", ErrInvalidArgument, item)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return price, nil
}

func (g *SQLiteGateway) GetQuoteHistory(ctx context.Context, customerID string) (float64, bool, error) {
	var rate sql.NullFloat64
	err := g.db.QueryRowContext(ctx,
		`SELECT MAX(discount_rate) FROM quote_history WHERE customer_id = ?`, customerID).
		Scan(&rate)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !rate.Valid {
		return 0, false, nil
	}
	return rate.Float64, true, nil
}

func (g *SQLiteGateway) CreateOrderFulfillment(ctx context.Context, token, item string, quantity int, unitPrice, total float64) (types.FulfillmentResult, error) {
	var zero types.FulfillmentResult
	if token == "" {
		return zero, fmt.Errorf("%w: empty idempotency token", ErrInvalidArgument)
	}
	if quantity <= 0 {
		return zero, fmt.Errorf("%w: quantity %d", ErrInvalidArgument, quantity)
	}

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer tx.Rollback()

	// Idempotency ledger first: a replayed token must observe the original
	// commit, not re-execute it.
	var prev types.FulfillmentResult
	var prevItem string
	err = tx.QueryRowContext(ctx,
		`SELECT transaction_id, item_name, units, total FROM orders WHERE run_id = ?`, token).
		Scan(&prev.TransactionID, &prevItem, &prev.Quantity, &prev.Total)
	switch {
	case err == nil:
		if prevItem != item || prev.Quantity != quantity || math.Abs(prev.Total-total) > 0.005 {
			return zero, fmt.Errorf("%w: token %q already committed with a different payload", ErrConflict, token)
		}
		return prev, nil
	case !errors.Is(err, sql.ErrNoRows):
		return zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var stock int
	err = tx.QueryRowContext(ctx,
		`SELECT current_stock FROM inventory WHERE item_name = ?`, item).Scan(&stock)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, fmt.Errorf("%w: unknown item %q", ErrInvalidArgument, item)
	}
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if stock < quantity {
		return zero, fmt.Errorf("%w: %d available, %d requested", ErrStockChanged, stock, quantity)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE inventory SET current_stock = current_stock - ? WHERE item_name = ?`,
		quantity, item); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (item_name, transaction_type, units, price, transaction_date)
		 VALUES (?, 'sales', ?, ?, ?)`,
		item, quantity, total, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	txnID, err := res.LastInsertId()
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO orders (run_id, transaction_id, item_name, units, total)
		 VALUES (?, ?, ?, ?, ?)`,
		token, txnID, item, quantity, total); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return types.FulfillmentResult{TransactionID: txnID, Quantity: quantity, Total: total}, nil
}
