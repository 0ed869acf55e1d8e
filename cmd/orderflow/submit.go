package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/munderdifflin/orderflow/service"
)

var (
	submitCustomer string
	submitItem     string
	submitQuantity int
	submitContext  string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a customer inquiry and print its run id",
	RunE:  runSubmit,
}

func init() {
	submitCmd.Flags().StringVar(&submitCustomer, "customer", "", "customer identifier")
	submitCmd.Flags().StringVar(&submitItem, "item", "", "requested item")
	submitCmd.Flags().IntVar(&submitQuantity, "quantity", 0, "requested quantity")
	submitCmd.Flags().StringVar(&submitContext, "context", "", "free-text context from the inquiry")
	submitCmd.MarkFlagRequired("customer")
	submitCmd.MarkFlagRequired("item")
	submitCmd.MarkFlagRequired("quantity")
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	c, err := dialTemporal()
	if err != nil {
		return err
	}
	defer c.Close()

	svc := service.New(c, cfg.TaskQueue)
	runID, err := svc.SubmitInquiry(cmd.Context(), submitCustomer, submitItem, submitQuantity, submitContext)
	if err != nil {
		return err
	}
	fmt.Println(runID)
	return nil
}
