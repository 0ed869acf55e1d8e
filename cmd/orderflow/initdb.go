package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/munderdifflin/orderflow/gateway"
)

var initdbCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Create the data store and seed a sample inventory",
	RunE:  runInitDB,
}

func init() {
	rootCmd.AddCommand(initdbCmd)
}

func runInitDB(cmd *cobra.Command, args []string) error {
	gw, err := gateway.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer gw.Close()

	if err := gw.Seed(cmd.Context()); err != nil {
		return err
	}
	log.Info().Str("database", cfg.DatabasePath).Msg("store initialized and seeded")
	return nil
}
