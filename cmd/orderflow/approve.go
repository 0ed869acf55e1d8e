package main

import (
	"github.com/spf13/cobra"

	"github.com/munderdifflin/orderflow/service"
)

var (
	approveDecline    bool
	approvePaymentRef string
)

var approveCmd = &cobra.Command{
	Use:   "approve <run-id>",
	Short: "Resolve a run waiting for approval",
	Args:  cobra.ExactArgs(1),
	RunE:  runApprove,
}

func init() {
	approveCmd.Flags().BoolVar(&approveDecline, "decline", false, "decline the quote instead of approving it")
	approveCmd.Flags().StringVar(&approvePaymentRef, "payment-ref", "", "payment reference (required when approving)")
	rootCmd.AddCommand(approveCmd)
}

func runApprove(cmd *cobra.Command, args []string) error {
	c, err := dialTemporal()
	if err != nil {
		return err
	}
	defer c.Close()

	svc := service.New(c, cfg.TaskQueue)
	return svc.SubmitApproval(cmd.Context(), args[0], !approveDecline, approvePaymentRef)
}
