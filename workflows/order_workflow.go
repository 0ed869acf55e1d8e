// Package workflows holds the orchestration state machine. One workflow
// execution is one run: Started → StockChecked → Quoted →
// (AwaitingApproval) → Fulfilling → Confirmed, with Failed(reason) reachable
// from any non-terminal state.
package workflows

import (
	"errors"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/munderdifflin/orderflow/types"
)

const (
	// ProcessOrderName is the registered workflow type name.
	ProcessOrderName = "ProcessOrder"

	// SignalApproval resumes a run suspended in AwaitingApproval.
	SignalApproval = "approval"
	// SignalCancel asks a run to stop. Honored only before Fulfilling.
	SignalCancel = "cancel"
	// QueryStatus returns the run's current RunStatus snapshot.
	QueryStatus = "status"
)

// Config carries the orchestration tunables. Zero values fall back to the
// stated defaults.
type Config struct {
	// RetryMaxAttempts bounds retries of transient agent failures. Default 3.
	RetryMaxAttempts int32
	// RetryInitialInterval seeds the exponential backoff. Default 1s.
	RetryInitialInterval time.Duration
	// RetryMaxInterval caps the backoff. Default 10s.
	RetryMaxInterval time.Duration
	// ApprovalTimeout bounds the manual-review suspension when the request
	// does not carry its own. Zero waits indefinitely.
	ApprovalTimeout time.Duration
	// ReviewThreshold is the quote total at or above which the default
	// review predicate requires manual approval. Zero disables the gate.
	ReviewThreshold float64
}

// Workflows bundles the workflow definitions with their injected policy.
type Workflows struct {
	Config Config

	// RequiresReview decides the manual-review branch. It is evaluated
	// once per quote and must be deterministic. Nil means the threshold
	// rule from Config.
	RequiresReview func(types.OrderRequest, types.Quote) bool
}

func (w *Workflows) requiresReview(req types.OrderRequest, quote types.Quote) bool {
	if w.RequiresReview != nil {
		return w.RequiresReview(req, quote)
	}
	return w.Config.ReviewThreshold > 0 && quote.Total >= w.Config.ReviewThreshold
}

func (w *Workflows) retryOptions() workflow.ActivityOptions {
	initial := w.Config.RetryInitialInterval
	if initial <= 0 {
		initial = time.Second
	}
	maxInterval := w.Config.RetryMaxInterval
	if maxInterval <= 0 {
		maxInterval = 10 * time.Second
	}
	attempts := w.Config.RetryMaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	return workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        initial,
			BackoffCoefficient:     2.0,
			MaximumInterval:        maxInterval,
			MaximumAttempts:        attempts,
			NonRetryableErrorTypes: types.NonRetryableErrorTypes,
		},
	}
}

// singleAttemptOptions covers the best-effort calls: the at-most-once
// supplier lookups and the customer notifications.
var singleAttemptOptions = workflow.ActivityOptions{
	StartToCloseTimeout: 10 * time.Second,
	RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
}

func errType(err error) string {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Type()
	}
	return ""
}

func isDefect(err error) bool {
	t := errType(err)
	return t == types.ErrTypeConflict || t == types.ErrTypeInvalidArgument
}

// ProcessOrder drives one customer inquiry end to end. Business failures
// complete the run with a Failed status; only defects (idempotency conflict,
// invalid argument) fail the execution itself.
func (w *Workflows) ProcessOrder(ctx workflow.Context, req types.OrderRequest) (types.RunStatus, error) {
	logger := workflow.GetLogger(ctx)
	runID := workflow.GetInfo(ctx).WorkflowExecution.ID

	status := types.RunStatus{RunID: runID, Request: req}
	setState := func(s types.RunState) {
		status.State = s
		status.Transitions = append(status.Transitions, types.Transition{State: s, At: workflow.Now(ctx)})
	}
	setState(types.StateStarted)

	if err := workflow.SetQueryHandler(ctx, QueryStatus, func() (types.RunStatus, error) {
		return status, nil
	}); err != nil {
		return status, err
	}

	// Cancellation bookkeeping. The handler only records the request; the
	// main sequence honors it at step boundaries so a commit in flight
	// always runs to completion.
	var cancelRequested bool
	workflow.Go(ctx, func(gctx workflow.Context) {
		ch := workflow.GetSignalChannel(gctx, SignalCancel)
		for {
			var cr types.CancelRequest
			ch.Receive(gctx, &cr)
			if cancelRequested || status.State.Terminal() || status.State == types.StateFulfilling {
				status.CancelRejected = true
				logger.Info("Cancel rejected", "state", status.State, "reason", cr.Reason)
				continue
			}
			cancelRequested = true
			logger.Info("Cancel requested", "reason", cr.Reason)
		}
	})

	// First approval decision wins; later signals are ignored.
	var decision *types.ApprovalDecision
	workflow.Go(ctx, func(gctx workflow.Context) {
		ch := workflow.GetSignalChannel(gctx, SignalApproval)
		for {
			var d types.ApprovalDecision
			ch.Receive(gctx, &d)
			if decision == nil {
				decision = &d
			}
		}
	})

	notifyCtx := workflow.WithActivityOptions(ctx, singleAttemptOptions)
	notifyFailure := func(reason types.FailureReason) {
		if err := workflow.ExecuteActivity(notifyCtx, "SendFailureNotice", req, reason).Get(ctx, nil); err != nil {
			logger.Warn("Failure notice not delivered", "error", err)
		}
	}
	fail := func(reason types.FailureReason) (types.RunStatus, error) {
		status.FailureReason = reason
		setState(types.StateFailed)
		notifyFailure(reason)
		logger.Info("Run failed", "reason", reason)
		return status, nil
	}
	defect := func(err error) (types.RunStatus, error) {
		status.FailureReason = types.FailureInternal
		setState(types.StateFailed)
		logger.Error("Run hit a defect", "error", err)
		return status, err
	}

	retryCtx := workflow.WithActivityOptions(ctx, w.retryOptions())
	checkStock := func() (types.StockStatus, error) {
		var stock types.StockStatus
		err := workflow.ExecuteActivity(retryCtx, "CheckStock", req.Item, req.Quantity).Get(ctx, &stock)
		return stock, err
	}

	// The supplier sub-lookups run at most once per run, in parallel, and
	// only on shortfall. An unresolved estimate is "unknown", never fatal.
	var restockResolved bool
	var restockDate time.Time
	var restockKnown bool
	resolveRestock := func(stock *types.StockStatus) {
		if stock.Sufficient {
			return
		}
		if !restockResolved {
			restockResolved = true
			onceCtx := workflow.WithActivityOptions(ctx, singleAttemptOptions)
			fTimeline := workflow.ExecuteActivity(onceCtx, "LookupDeliveryTimeline", req.Item, req.Quantity)
			fReorder := workflow.ExecuteActivity(onceCtx, "CheckReorderStatus", req.Item)

			var estimate time.Time
			if err := fTimeline.Get(ctx, &estimate); err != nil {
				logger.Warn("Supplier timeline unresolved", "error", err)
			} else {
				restockDate = estimate
				restockKnown = true
			}
			var needsReorder bool
			if err := fReorder.Get(ctx, &needsReorder); err != nil {
				logger.Warn("Reorder status unresolved", "error", err)
			} else if needsReorder {
				logger.Info("Item below minimum stock level", "item", req.Item)
			}
		}
		stock.RestockDate = restockDate
		stock.RestockKnown = restockKnown
	}

	// Step 1: stock check.
	stock, err := checkStock()
	if err != nil {
		if isDefect(err) {
			return defect(err)
		}
		return fail(types.FailureInventoryUnavailable)
	}
	resolveRestock(&stock)
	status.StockStatus = &stock
	setState(types.StateStockChecked)
	if cancelRequested {
		return fail(types.FailureCancelled)
	}

	// Step 2: quote, single round trip with the stock status from step 1.
	computeQuote := func(stock types.StockStatus) (types.Quote, error) {
		var quote types.Quote
		err := workflow.ExecuteActivity(retryCtx, "ComputeQuote", req, stock).Get(ctx, &quote)
		return quote, err
	}
	quote, err := computeQuote(stock)
	if err != nil {
		if isDefect(err) {
			return defect(err)
		}
		return fail(types.FailureQuoteUnavailable)
	}
	status.Quote = &quote
	setState(types.StateQuoted)
	if cancelRequested {
		return fail(types.FailureCancelled)
	}

	// Step 3: manual-review gate, evaluated once on the quote.
	if w.requiresReview(req, quote) {
		setState(types.StateAwaitingApproval)
		if err := workflow.ExecuteActivity(notifyCtx, "SendQuoteNotification", req, quote, stock).Get(ctx, nil); err != nil {
			logger.Warn("Quote notification not delivered", "error", err)
		}

		timeout := req.ApprovalTimeout
		if timeout <= 0 {
			timeout = w.Config.ApprovalTimeout
		}
		resumed := func() bool { return decision != nil || cancelRequested }
		if timeout > 0 {
			ok, err := workflow.AwaitWithTimeout(ctx, timeout, resumed)
			if err != nil {
				return status, err
			}
			if !ok {
				return fail(types.FailureApprovalTimeout)
			}
		} else if err := workflow.Await(ctx, resumed); err != nil {
			return status, err
		}

		if cancelRequested {
			return fail(types.FailureCancelled)
		}
		if !decision.Approved {
			return fail(types.FailureCustomerDeclined)
		}
		if decision.PaymentRef == "" {
			return fail(types.FailurePaymentMissing)
		}
	}

	// Step 4: commit. One refresh pass on StockChanged, then fatal.
	setState(types.StateFulfilling)
	var result types.FulfillmentResult
	for attempt := 0; ; attempt++ {
		if workflow.Now(ctx).After(quote.ExpiresAt) {
			return fail(types.FailureQuoteExpired)
		}

		err := workflow.ExecuteActivity(retryCtx, "CommitOrder", req, quote, runID).Get(ctx, &result)
		if err == nil {
			break
		}
		if isDefect(err) {
			return defect(err)
		}
		if errType(err) != types.ErrTypeStockChanged {
			return fail(types.FailureFulfillmentUnavailable)
		}
		if attempt >= 1 {
			return fail(types.FailureStockChanged)
		}

		// Refresh pass: fresh stock and a fresh quote. The restock
		// estimate, if any, is reused rather than fetched again.
		logger.Info("Stock changed at commit, refreshing", "runID", runID)
		stock, err = checkStock()
		if err != nil {
			if isDefect(err) {
				return defect(err)
			}
			return fail(types.FailureInventoryUnavailable)
		}
		resolveRestock(&stock)
		status.StockStatus = &stock

		quote, err = computeQuote(stock)
		if err != nil {
			if isDefect(err) {
				return defect(err)
			}
			return fail(types.FailureQuoteUnavailable)
		}
		status.Quote = &quote
	}

	status.Result = &result
	setState(types.StateConfirmed)
	if err := workflow.ExecuteActivity(notifyCtx, "SendConfirmation", req, result).Get(ctx, nil); err != nil {
		logger.Warn("Confirmation not delivered", "error", err)
	}
	logger.Info("Run confirmed", "runID", runID, "transactionID", result.TransactionID)
	return status, nil
}
