package main

import (
	"github.com/spf13/cobra"

	"github.com/munderdifflin/orderflow/service"
)

var cancelReason string

var cancelCmd = &cobra.Command{
	Use:   "cancel <run-id>",
	Short: "Cancel a run that has not started fulfilling",
	Args:  cobra.ExactArgs(1),
	RunE:  runCancel,
}

func init() {
	cancelCmd.Flags().StringVar(&cancelReason, "reason", "", "reason to record with the cancellation")
	rootCmd.AddCommand(cancelCmd)
}

func runCancel(cmd *cobra.Command, args []string) error {
	c, err := dialTemporal()
	if err != nil {
		return err
	}
	defer c.Close()

	svc := service.New(c, cfg.TaskQueue)
	return svc.Cancel(cmd.Context(), args[0], cancelReason)
}
