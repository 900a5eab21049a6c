package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"catalog.GO/config"
	"catalog.GO/service"
)

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inventory ledger and product configuration tools",
}

// Execute applies registered commands and runs the CLI.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// services connects to the database (and Redis when configured) and returns
// the shared service container.
func services() (*service.Container, error) {
	db, err := config.NewDB()
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	config.InitRedis()
	config.PingRedis(context.Background())
	return service.ForDB(db), nil
}
