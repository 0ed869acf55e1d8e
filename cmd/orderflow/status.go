package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/munderdifflin/orderflow/service"
)

var statusCmd = &cobra.Command{
	Use:   "status <run-id>",
	Short: "Print a run's current status",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	c, err := dialTemporal()
	if err != nil {
		return err
	}
	defer c.Close()

	svc := service.New(c, cfg.TaskQueue)
	status, err := svc.GetRunStatus(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
