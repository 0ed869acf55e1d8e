package activities

import (
	"context"
	"time"

	"go.temporal.io/sdk/activity"

	"github.com/munderdifflin/orderflow/gateway"
	"github.com/munderdifflin/orderflow/types"
)

// InventoryActivities is the inventory agent: read-only availability checks
// plus the shortfall sub-lookups. It holds no state beyond the gateway.
type InventoryActivities struct {
	Gateway gateway.Gateway
}

// CheckStock answers "can this quantity ship from current stock".
func (a *InventoryActivities) CheckStock(ctx context.Context, item string, quantity int) (types.StockStatus, error) {
	logger := activity.GetLogger(ctx)

	available, err := a.Gateway.CheckInventory(ctx, item)
	if err != nil {
		return types.StockStatus{}, toActivityError(err)
	}

	status := types.StockStatus{
		Available:  available,
		Sufficient: available >= quantity,
	}
	logger.Info("Stock checked", "item", item, "requested", quantity,
		"available", available, "sufficient", status.Sufficient)
	return status, nil
}

// CheckReorderStatus reports whether the item has fallen below its minimum
// stock level.
func (a *InventoryActivities) CheckReorderStatus(ctx context.Context, item string) (bool, error) {
	needsReorder, err := a.Gateway.CheckReorderStatus(ctx, item)
	if err != nil {
		return false, toActivityError(err)
	}
	return needsReorder, nil
}

// LookupDeliveryTimeline asks the supplier model for an estimated restock
// date for the given quantity.
func (a *InventoryActivities) LookupDeliveryTimeline(ctx context.Context, item string, quantity int) (time.Time, error) {
	logger := activity.GetLogger(ctx)

	estimate, err := a.Gateway.GetDeliveryTimeline(ctx, item, quantity, time.Now())
	if err != nil {
		return time.Time{}, toActivityError(err)
	}
	logger.Info("Supplier timeline fetched", "item", item, "estimate", estimate)
	return estimate, nil
}
