package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T) *SQLiteGateway {
	t.Helper()
	gw, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { gw.Close() })
	require.NoError(t, gw.Seed(context.Background()))
	return gw
}

func TestCheckInventory(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	stock, err := gw.CheckInventory(ctx, "A4 paper")
	require.NoError(t, err)
	require.Equal(t, 1000, stock)

	_, err = gw.CheckInventory(ctx, "vellum scrolls")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = gw.CheckInventory(ctx, "")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestQuoteHistoryDefaultsForNewCustomers(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	rate, found, err := gw.GetQuoteHistory(ctx, "C1")
	require.NoError(t, err)
	require.True(t, found)
	require.InDelta(t, 0.05, rate, 1e-9)

	_, found, err = gw.GetQuoteHistory(ctx, "first-timer")
	require.NoError(t, err)
	require.False(t, found)
}

func TestDeliveryTimelineGrowsWithQuantity(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()
	orderDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	small, err := gw.GetDeliveryTimeline(ctx, "A4 paper", 10, orderDate)
	require.NoError(t, err)
	medium, err := gw.GetDeliveryTimeline(ctx, "A4 paper", 100, orderDate)
	require.NoError(t, err)
	large, err := gw.GetDeliveryTimeline(ctx, "A4 paper", 1000, orderDate)
	require.NoError(t, err)
	bulk, err := gw.GetDeliveryTimeline(ctx, "A4 paper", 5000, orderDate)
	require.NoError(t, err)

	require.Equal(t, orderDate.AddDate(0, 0, 1), small)
	require.Equal(t, orderDate.AddDate(0, 0, 4), medium)
	require.Equal(t, orderDate.AddDate(0, 0, 7), large)
	require.Equal(t, orderDate.AddDate(0, 0, 14), bulk)

	_, err = gw.GetDeliveryTimeline(ctx, "A4 paper", 0, orderDate)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCreateOrderFulfillmentIsIdempotent(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	first, err := gw.CreateOrderFulfillment(ctx, "run-1", "A4 paper", 200, 0.05, 10)
	require.NoError(t, err)
	require.NotZero(t, first.TransactionID)
	require.Equal(t, 200, first.Quantity)

	stock, err := gw.CheckInventory(ctx, "A4 paper")
	require.NoError(t, err)
	require.Equal(t, 800, stock)

	// Replaying the token returns the original result without a second
	// side effect.
	replay, err := gw.CreateOrderFulfillment(ctx, "run-1", "A4 paper", 200, 0.05, 10)
	require.NoError(t, err)
	require.Equal(t, first.TransactionID, replay.TransactionID)

	stock, err = gw.CheckInventory(ctx, "A4 paper")
	require.NoError(t, err)
	require.Equal(t, 800, stock)
}

func TestCreateOrderFulfillmentConflictOnPayloadMismatch(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	_, err := gw.CreateOrderFulfillment(ctx, "run-2", "A4 paper", 100, 0.05, 5)
	require.NoError(t, err)

	_, err = gw.CreateOrderFulfillment(ctx, "run-2", "A4 paper", 150, 0.05, 7.5)
	require.ErrorIs(t, err, ErrConflict)

	_, err = gw.CreateOrderFulfillment(ctx, "run-2", "Cardstock", 100, 0.15, 15)
	require.ErrorIs(t, err, ErrConflict)
}

func TestCreateOrderFulfillmentStockChanged(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	_, err := gw.CreateOrderFulfillment(ctx, "run-3", "Cardstock", 4000, 0.15, 600)
	require.ErrorIs(t, err, ErrStockChanged)

	// Nothing was committed, so stock is untouched and the token stays
	// available for a refreshed retry.
	stock, err := gw.CheckInventory(ctx, "Cardstock")
	require.NoError(t, err)
	require.Equal(t, 400, stock)

	res, err := gw.CreateOrderFulfillment(ctx, "run-3", "Cardstock", 300, 0.15, 45)
	require.NoError(t, err)
	require.Equal(t, 300, res.Quantity)
}

func TestCreateOrderFulfillmentValidatesArguments(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	_, err := gw.CreateOrderFulfillment(ctx, "", "A4 paper", 1, 0.05, 0.05)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = gw.CreateOrderFulfillment(ctx, "run-4", "A4 paper", 0, 0.05, 0)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = gw.CreateOrderFulfillment(ctx, "run-4", "no such item", 1, 0.05, 0.05)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCheckReorderStatus(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	needs, err := gw.CheckReorderStatus(ctx, "A4 paper")
	require.NoError(t, err)
	require.False(t, needs)

	// Drain stock below the minimum level.
	_, err = gw.CreateOrderFulfillment(ctx, "run-5", "A4 paper", 950, 0.05, 47.5)
	require.NoError(t, err)

	needs, err = gw.CheckReorderStatus(ctx, "A4 paper")
	require.NoError(t, err)
	require.True(t, needs)
}
