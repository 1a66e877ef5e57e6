package commands

import (
	"github.com/spf13/cobra"

	"yatube/internal/database"
)

var steps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return database.MigrateUp(cfg)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Rollback migrations",
	Long: `Rollback applied migrations.

Examples:
  yatube migrate down              # Rollback last migration
  yatube migrate down --steps 2    # Rollback two migrations`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return database.MigrateDown(cfg, steps)
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}
