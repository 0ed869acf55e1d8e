package activities

import (
	"context"

	"go.temporal.io/sdk/activity"

	"github.com/munderdifflin/orderflow/gateway"
	"github.com/munderdifflin/orderflow/types"
)

// FulfillmentActivities is the fulfillment agent. CommitOrder is the single
// mutating step in the whole workflow.
type FulfillmentActivities struct {
	Gateway gateway.Gateway
}

// CommitOrder reserves stock and records the sale under the run's idempotency
// token. A crashed-and-retried orchestrator replaying the same token observes
// the original transaction id instead of committing twice.
func (a *FulfillmentActivities) CommitOrder(ctx context.Context, req types.OrderRequest, quote types.Quote, runID string) (types.FulfillmentResult, error) {
	logger := activity.GetLogger(ctx)

	result, err := a.Gateway.CreateOrderFulfillment(ctx, runID, req.Item, req.Quantity, quote.UnitPrice, quote.Total)
	if err != nil {
		return types.FulfillmentResult{}, toActivityError(err)
	}

	logger.Info("Order committed", "runID", runID, "transactionID", result.TransactionID,
		"quantity", result.Quantity, "total", result.Total)
	return result, nil
}
