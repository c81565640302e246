package cli

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/club_finance_app/internal/platform/config"
	"github.com/SscSPs/club_finance_app/pkg/database"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)

	migrateCmd.PersistentFlags().String("path", "", "Migrations source URL (defaults to MIGRATIONS_PATH)")
	migrateDownCmd.Flags().Bool("yes", false, "Confirm rolling back every migration")
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd, database.MigrateUp)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back all migrations",
	Long:  `Roll back every migration. This drops all club data and requires --yes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("refusing to roll back without --yes")
		}
		return runMigrate(cmd, database.MigrateDown)
	},
}

func runMigrate(cmd *cobra.Command, direction database.MigrateDirection) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	path, _ := cmd.Flags().GetString("path")
	if path == "" {
		path = cfg.MigrationsPath
	}

	changed, err := database.RunMigrations(slog.Default(), cfg.DatabaseURL, path, direction)
	if err != nil {
		return err
	}
	if changed {
		fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "No migrations to apply.")
	}
	return nil
}
