package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/munderdifflin/orderflow/activities"
	"github.com/munderdifflin/orderflow/gateway"
	"github.com/munderdifflin/orderflow/workflows"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the orchestration worker",
	RunE:  runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) error {
	gw, err := gateway.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer gw.Close()

	c, err := dialTemporal()
	if err != nil {
		return err
	}
	defer c.Close()

	w := worker.New(c, cfg.TaskQueue, worker.Options{})

	wfs := &workflows.Workflows{
		Config: workflows.Config{
			RetryMaxAttempts:     cfg.RetryMaxAttempts,
			RetryInitialInterval: cfg.RetryInitialInterval,
			RetryMaxInterval:     cfg.RetryMaxInterval,
			ApprovalTimeout:      cfg.ApprovalTimeout,
			ReviewThreshold:      cfg.ReviewThreshold,
		},
	}
	w.RegisterWorkflowWithOptions(wfs.ProcessOrder, workflow.RegisterOptions{Name: workflows.ProcessOrderName})

	inventory := &activities.InventoryActivities{Gateway: gw}
	w.RegisterActivity(inventory.CheckStock)
	w.RegisterActivity(inventory.CheckReorderStatus)
	w.RegisterActivity(inventory.LookupDeliveryTimeline)

	quote := &activities.QuoteActivities{Gateway: gw, QuoteTTL: cfg.QuoteTTL}
	w.RegisterActivity(quote.ComputeQuote)

	fulfillment := &activities.FulfillmentActivities{Gateway: gw}
	w.RegisterActivity(fulfillment.CommitOrder)

	notifier := &activities.NotifierActivities{Log: log.Logger}
	w.RegisterActivity(notifier.SendQuoteNotification)
	w.RegisterActivity(notifier.SendConfirmation)
	w.RegisterActivity(notifier.SendFailureNotice)

	log.Info().
		Str("taskQueue", cfg.TaskQueue).
		Str("database", cfg.DatabasePath).
		Msg("worker starting")
	return w.Run(worker.InterruptCh())
}
