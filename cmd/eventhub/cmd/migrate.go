package cmd

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eventhub/eventhub/config"
	"github.com/eventhub/eventhub/internal/backend"
	"github.com/eventhub/eventhub/internal/repository/postgres"
	"github.com/eventhub/eventhub/internal/repository/sqlite"
)

var migrateSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back the remote store migrations",
	Long: `Apply or roll back the schema of the store named by BACKEND_URL.

Examples:
  eventhub migrate up
  eventhub migrate down --steps 1`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, driver, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer db.Close()
		if driver == backend.DriverPostgres {
			err = postgres.MigrateUp(db)
		} else {
			err = sqlite.MigrateUp(db)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateSteps < 1 {
			return fmt.Errorf("--steps must be at least 1")
		}
		db, driver, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer db.Close()
		if driver == backend.DriverPostgres {
			err = postgres.MigrateDown(db, migrateSteps)
		} else {
			err = sqlite.MigrateDown(db, migrateSteps)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", migrateSteps)
		return nil
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&migrateSteps, "steps", 1, "number of migrations to roll back")
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}

// openStore connects to BACKEND_URL without touching its schema. SQLite
// stores are brought to the latest version on open.
func openStore(cmd *cobra.Command) (*sql.DB, backend.Driver, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", fmt.Errorf("config error: %w", err)
	}
	driver, target, err := backend.ParseURL(cfg.BackendURL)
	if err != nil {
		return nil, "", err
	}
	var db *sql.DB
	switch driver {
	case backend.DriverPostgres:
		db, err = postgres.Open(cmd.Context(), target)
	default:
		db, err = sqlite.Open(target)
	}
	if err != nil {
		return nil, "", err
	}
	return db, driver, nil
}
