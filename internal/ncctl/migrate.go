package ncctl

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/credit_notes_app/pkg/database"
	"github.com/spf13/cobra"
)

var flagSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(_ *cobra.Command, _ []string) error {
		return database.RunMigrations(flagDatabaseURL, slog.Default())
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(_ *cobra.Command, _ []string) error {
		return database.RollbackMigrations(flagDatabaseURL, flagSteps, slog.Default())
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		version, dirty, err := database.MigrationVersion(flagDatabaseURL)
		if err != nil {
			return err
		}
		state := "clean"
		if dirty {
			state = "dirty"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (%s)\n", version, state)
		return nil
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&flagSteps, "steps", 1, "Number of migrations to roll back")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}
