// Package gateway is the typed, idempotent façade over the shared data store.
// Reads never mutate anything. The single mutating operation,
// CreateOrderFulfillment, is keyed by a caller-supplied idempotency token so
// that retries of the same run never commit twice.
package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/munderdifflin/orderflow/types"
)

var (
	// ErrUnavailable marks a transient store failure. Callers may retry.
	ErrUnavailable = errors.New("gateway unavailable")

	// ErrInvalidArgument marks a caller bug (unknown item, bad quantity).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConflict means two different payloads were submitted under the
	// same idempotency token. That is a correlation-key reuse bug upstream.
	ErrConflict = errors.New("idempotency token conflict")

	// ErrStockChanged means stock ran out between the availability check
	// and the commit.
	ErrStockChanged = errors.New("stock changed")
)

// Gateway is the tool surface the agents operate against.
type Gateway interface {
	// CheckInventory returns the units currently in stock for an item.
	CheckInventory(ctx context.Context, item string) (int, error)

	// CheckReorderStatus reports whether an item is below its minimum
	// stock level and due for a supplier reorder.
	CheckReorderStatus(ctx context.Context, item string) (bool, error)

	// GetDeliveryTimeline estimates when the supplier can deliver the
	// given quantity, counted from orderDate.
	GetDeliveryTimeline(ctx context.Context, item string, quantity int, orderDate time.Time) (time.Time, error)

	// GetUnitPrice returns the list price for an item.
	GetUnitPrice(ctx context.Context, item string) (float64, error)

	// GetQuoteHistory returns the best discount rate previously granted to
	// a customer. found is false for first-time customers.
	GetQuoteHistory(ctx context.Context, customerID string) (rate float64, found bool, err error)

	// CreateOrderFulfillment atomically re-checks stock, reserves it, and
	// records the sale. Submitting the same token twice with the same
	// payload returns the original result without re-executing; a
	// different payload under the same token fails with ErrConflict.
	CreateOrderFulfillment(ctx context.Context, token, item string, quantity int, unitPrice, total float64) (types.FulfillmentResult, error)
}
