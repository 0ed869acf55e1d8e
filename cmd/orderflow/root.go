package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.temporal.io/sdk/client"

	"github.com/munderdifflin/orderflow/pkg/config"
	"github.com/munderdifflin/orderflow/pkg/logx"
)

var (
	envFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "orderflow",
	Short: "Order-processing orchestration engine",
	Long: `Orderflow turns a customer inquiry into a committed, fulfilled order by
sequencing the inventory, quote, and fulfillment agents over an idempotent
tool gateway, with an optional manual-approval gate before commit.

Run "orderflow worker" next to a Temporal server, then submit inquiries and
drive approvals from this CLI or any Temporal client.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return err
		}
		logx.Init(cfg.Log)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "path to an env file to load before reading configuration")
}

func dialTemporal() (client.Client, error) {
	return client.Dial(client.Options{
		HostPort: cfg.TemporalHostPort,
		Logger:   logx.NewTemporalAdapter(log.Logger),
	})
}
