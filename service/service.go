// Package service is the inbound API: submit an inquiry, approve or cancel a
// run, and read run status. It is a thin layer over the Temporal client; the
// run identifier doubles as the workflow ID and the idempotency token for
// every downstream mutating call.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"

	"github.com/munderdifflin/orderflow/types"
	"github.com/munderdifflin/orderflow/workflows"
)

// ErrCancelRejected is returned when a cancel arrives while the run is
// committing or already finished.
var ErrCancelRejected = errors.New("cancel rejected: run is fulfilling or finished")

// Service exposes the orchestration engine to callers.
type Service struct {
	temporal  client.Client
	taskQueue string
}

func New(temporal client.Client, taskQueue string) *Service {
	return &Service{temporal: temporal, taskQueue: taskQueue}
}

// SubmitInquiry starts a new run and returns its identifier. The identifier
// is the correlation key for every later call about this inquiry; callers
// wanting deduplication of duplicate inquiries should derive their own run
// identifiers instead.
func (s *Service) SubmitInquiry(ctx context.Context, customerID, item string, quantity int, freeText string) (string, error) {
	if customerID == "" || item == "" || quantity <= 0 {
		return "", fmt.Errorf("invalid inquiry: customer %q item %q quantity %d", customerID, item, quantity)
	}

	runID := "run-" + uuid.NewString()
	req := types.OrderRequest{
		CustomerID: customerID,
		Item:       item,
		Quantity:   quantity,
		Context:    freeText,
	}

	opts := client.StartWorkflowOptions{
		ID:        runID,
		TaskQueue: s.taskQueue,
	}
	if _, err := s.temporal.ExecuteWorkflow(ctx, opts, workflows.ProcessOrderName, req); err != nil {
		return "", fmt.Errorf("start run: %w", err)
	}
	return runID, nil
}

// SubmitApproval resolves a run suspended in AwaitingApproval.
func (s *Service) SubmitApproval(ctx context.Context, runID string, approved bool, paymentRef string) error {
	decision := types.ApprovalDecision{Approved: approved, PaymentRef: paymentRef}
	if err := s.temporal.SignalWorkflow(ctx, runID, "", workflows.SignalApproval, decision); err != nil {
		return fmt.Errorf("submit approval: %w", err)
	}
	return nil
}

// GetRunStatus returns the run's current status snapshot.
func (s *Service) GetRunStatus(ctx context.Context, runID string) (types.RunStatus, error) {
	var status types.RunStatus
	resp, err := s.temporal.QueryWorkflow(ctx, runID, "", workflows.QueryStatus)
	if err != nil {
		return status, fmt.Errorf("query run: %w", err)
	}
	if err := resp.Get(&status); err != nil {
		return status, fmt.Errorf("decode run status: %w", err)
	}
	return status, nil
}

// Cancel asks a run to stop. Runs that are fulfilling or finished reject the
// request; the workflow enforces the same rule authoritatively for requests
// that race with the commit.
func (s *Service) Cancel(ctx context.Context, runID, reason string) error {
	status, err := s.GetRunStatus(ctx, runID)
	if err != nil {
		return err
	}
	if status.State == types.StateFulfilling || status.State.Terminal() {
		return ErrCancelRejected
	}
	if err := s.temporal.SignalWorkflow(ctx, runID, "", workflows.SignalCancel, types.CancelRequest{Reason: reason}); err != nil {
		return fmt.Errorf("cancel run: %w", err)
	}
	return nil
}
