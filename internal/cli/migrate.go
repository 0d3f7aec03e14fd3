package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"customerapp/internal/adapter/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or revert the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, dialect, err := database.OpenForMigrations(databaseConfig())
		if err != nil {
			return err
		}

		if err := database.MigrateUpAndClose(db, dialect); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s schema is up to date\n", dialect)
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert every migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, dialect, err := database.OpenForMigrations(databaseConfig())
		if err != nil {
			return err
		}

		if err := database.MigrateDownAndClose(db, dialect); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s schema reverted\n", dialect)
		return nil
	},
}

func databaseConfig() database.Config {
	return database.Config{
		Driver: cfg.DatabaseDriver,
		Path:   cfg.DatabasePath,
		URL:    cfg.DatabaseURL,
	}
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}
