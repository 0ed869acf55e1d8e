package activities

import (
	"context"
	"time"

	"go.temporal.io/sdk/activity"

	"github.com/munderdifflin/orderflow/gateway"
	"github.com/munderdifflin/orderflow/types"
)

// DefaultQuoteTTL bounds quote validity when no TTL is configured.
const DefaultQuoteTTL = 15 * time.Minute

// QuoteActivities is the quote agent. It prices a request against the
// inventory list price, the bulk-discount schedule, and the customer's prior
// discount history. No side effects.
type QuoteActivities struct {
	Gateway  gateway.Gateway
	QuoteTTL time.Duration
}

// bulkDiscountRate is monotonically non-decreasing in quantity: a larger
// order never gets a worse rate.
func bulkDiscountRate(quantity int) float64 {
	switch {
	case quantity > 1000:
		return 0.15
	case quantity > 500:
		return 0.10
	case quantity > 100:
		return 0.05
	default:
		return 0
	}
}

// ComputeQuote builds the priced offer. First-time customers get the plain
// bulk tier; returning customers keep the best rate they have earned.
func (a *QuoteActivities) ComputeQuote(ctx context.Context, req types.OrderRequest, stock types.StockStatus) (types.Quote, error) {
	logger := activity.GetLogger(ctx)

	prior, found, err := a.Gateway.GetQuoteHistory(ctx, req.CustomerID)
	if err != nil {
		return types.Quote{}, toActivityError(err)
	}

	rate := bulkDiscountRate(req.Quantity)
	if found && prior > rate {
		rate = prior
	}

	unitPrice, err := a.Gateway.GetUnitPrice(ctx, req.Item)
	if err != nil {
		return types.Quote{}, toActivityError(err)
	}

	ttl := a.QuoteTTL
	if ttl <= 0 {
		ttl = DefaultQuoteTTL
	}

	quote := types.Quote{
		UnitPrice:    unitPrice,
		DiscountRate: rate,
		Total:        unitPrice * (1 - rate) * float64(req.Quantity),
		Currency:     "USD",
		ExpiresAt:    time.Now().Add(ttl),
	}
	logger.Info("Quote computed", "customer", req.CustomerID, "item", req.Item,
		"quantity", req.Quantity, "rate", rate, "total", quote.Total,
		"sufficientStock", stock.Sufficient)
	return quote, nil
}
