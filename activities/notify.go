package activities

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/munderdifflin/orderflow/types"
)

// NotifierActivities renders customer-facing notifications. Delivery
// transport is out of scope, so notifications land on the structured log;
// callers treat failures as non-critical.
type NotifierActivities struct {
	Log zerolog.Logger
}

// SendQuoteNotification presents the quote, with the restock outlook when
// stock was short, while the run waits for approval.
func (a *NotifierActivities) SendQuoteNotification(ctx context.Context, req types.OrderRequest, quote types.Quote, stock types.StockStatus) error {
	evt := a.Log.Info().
		Str("customer", req.CustomerID).
		Str("item", req.Item).
		Int("quantity", req.Quantity).
		Float64("total", quote.Total).
		Str("currency", quote.Currency).
		Float64("discountRate", quote.DiscountRate).
		Time("quoteExpires", quote.ExpiresAt)
	if !stock.Sufficient {
		if stock.RestockKnown {
			evt = evt.Str("restockEstimate", stock.RestockDate.Format("2006-01-02"))
		} else {
			evt = evt.Str("restockEstimate", "unknown")
		}
	}
	evt.Msg("quote ready for approval")
	return nil
}

// SendConfirmation delivers the receipt summary for a confirmed order.
func (a *NotifierActivities) SendConfirmation(ctx context.Context, req types.OrderRequest, result types.FulfillmentResult) error {
	a.Log.Info().
		Str("customer", req.CustomerID).
		Str("item", req.Item).
		Int64("transactionID", result.TransactionID).
		Int("quantity", result.Quantity).
		Float64("total", result.Total).
		Msg("order confirmed")
	return nil
}

// SendFailureNotice tells the customer why the run ended without an order.
func (a *NotifierActivities) SendFailureNotice(ctx context.Context, req types.OrderRequest, reason types.FailureReason) error {
	a.Log.Warn().
		Str("customer", req.CustomerID).
		Str("item", req.Item).
		Str("reason", string(reason)).
		Msg(reason.Message())
	return nil
}
