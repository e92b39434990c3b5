// Package cli implements ledgerctl, the operator tool for schema
// migrations, registry bootstrap and audit chain checks.
package cli

import (
	"friendloan-backend/internal/config"
	"friendloan-backend/internal/infrastructure/db"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Operate the friend loan ledger",
	Long: `ledgerctl runs maintenance tasks against the ledger database.
Connection settings come from the same environment (or CONFIG_FILE) as the API.`,
	SilenceUsage: true,
}

// Swapped in tests.
var (
	loadConfig = config.Load
	openDB     = func(cfg *config.Config) (*gorm.DB, error) { return db.OpenGorm(cfg.MySQLDSN()) }
	migrateUp  = db.Migrate
	migrateDn  = db.Rollback
)

func Execute() error { return rootCmd.Execute() }
