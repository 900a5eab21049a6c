package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"catalog.GO/config"
	"catalog.GO/model/migrations"
)

var migrateSteps int

var migrateUpCmd = &cobra.Command{
	Use:   "migrate:up",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.NewDB()
		if err != nil {
			return err
		}
		if err := migrations.Up(db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "migrate:down",
	Short: "Roll back schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.NewDB()
		if err != nil {
			return err
		}
		if err := migrations.Down(db, migrateSteps); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rolled back %d step(s).\n", migrateSteps)
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "migrate:version",
	Short: "Show the applied schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.NewDB()
		if err != nil {
			return err
		}
		v, dirty, err := migrations.Version(db)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%v\n", v, dirty)
		return nil
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&migrateSteps, "steps", 1, "Number of migrations to roll back")
	rootCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
}
