package types

import "time"

// OrderRequest is the structured form of one customer inquiry. It is immutable
// for the duration of the run.
type OrderRequest struct {
	CustomerID string
	Item       string
	Quantity   int
	Context    string

	// ApprovalTimeout bounds the manual-review suspension for this run.
	// Zero means the configured default applies.
	ApprovalTimeout time.Duration
}

// StockStatus is the inventory agent's answer to "can this quantity ship".
type StockStatus struct {
	Available  int
	Sufficient bool

	// RestockDate is set only on shortfall, and only when the supplier
	// timeline lookup succeeded. RestockKnown false surfaces as "unknown".
	RestockDate  time.Time
	RestockKnown bool
}

// Quote is the priced offer for a request. It is only valid until ExpiresAt.
type Quote struct {
	UnitPrice    float64
	DiscountRate float64
	Total        float64
	Currency     string
	ExpiresAt    time.Time
}

// ApprovalDecision is the signal payload resuming a run suspended in
// AwaitingApproval. PaymentRef is required iff Approved.
type ApprovalDecision struct {
	Approved   bool
	PaymentRef string
}

// CancelRequest is the signal payload asking a run to stop.
type CancelRequest struct {
	Reason string
}

// FulfillmentResult is the durable record of a committed order. The
// transaction id is assigned by the gateway and never reused.
type FulfillmentResult struct {
	TransactionID int64
	Quantity      int
	Total         float64
}

// RunState identifies where a run is in its lifecycle.
type RunState string

const (
	StateStarted          RunState = "STARTED"
	StateStockChecked     RunState = "STOCK_CHECKED"
	StateQuoted           RunState = "QUOTED"
	StateAwaitingApproval RunState = "AWAITING_APPROVAL"
	StateFulfilling       RunState = "FULFILLING"
	StateConfirmed        RunState = "CONFIRMED"
	StateFailed           RunState = "FAILED"
)

// Terminal reports whether no further transition can occur.
func (s RunState) Terminal() bool {
	return s == StateConfirmed || s == StateFailed
}

// FailureReason explains a Failed terminal state in customer-readable terms.
type FailureReason string

const (
	FailureInventoryUnavailable   FailureReason = "INVENTORY_UNAVAILABLE"
	FailureQuoteUnavailable       FailureReason = "QUOTE_UNAVAILABLE"
	FailureApprovalTimeout        FailureReason = "APPROVAL_TIMEOUT"
	FailureCustomerDeclined       FailureReason = "CUSTOMER_DECLINED"
	FailurePaymentMissing         FailureReason = "PAYMENT_MISSING"
	FailureQuoteExpired           FailureReason = "QUOTE_EXPIRED"
	FailureStockChanged           FailureReason = "STOCK_CHANGED"
	FailureFulfillmentUnavailable FailureReason = "FULFILLMENT_UNAVAILABLE"
	FailureCancelled              FailureReason = "CANCELLED"
	FailureInternal               FailureReason = "INTERNAL"
)

// Message renders the reason for customer-facing failure notices.
func (r FailureReason) Message() string {
	switch r {
	case FailureInventoryUnavailable:
		return "inventory service is unavailable, please retry later"
	case FailureQuoteUnavailable:
		return "pricing service is unavailable, please retry later"
	case FailureApprovalTimeout:
		return "the quote was not approved in time"
	case FailureCustomerDeclined:
		return "the quote was declined"
	case FailurePaymentMissing:
		return "approval was missing a payment reference"
	case FailureQuoteExpired:
		return "the quote expired before fulfillment, please submit a new inquiry"
	case FailureStockChanged:
		return "stock changed before the order could be committed"
	case FailureFulfillmentUnavailable:
		return "fulfillment service is unavailable, please retry later"
	case FailureCancelled:
		return "the inquiry was cancelled"
	case FailureInternal:
		return "an internal error occurred, please contact support"
	}
	return string(r)
}

// Transition records when a run entered a state.
type Transition struct {
	State RunState
	At    time.Time
}

// RunStatus is the queryable aggregate for one run. The orchestrator owns it;
// everyone else reads snapshots via the status query.
type RunStatus struct {
	RunID         string
	State         RunState
	FailureReason FailureReason

	Request     OrderRequest
	StockStatus *StockStatus
	Quote       *Quote
	Result      *FulfillmentResult

	// CancelRejected is set when a cancel request arrived too late to honor.
	CancelRejected bool

	Transitions []Transition
}
