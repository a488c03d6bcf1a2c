package main

import (
	"fmt"
	"os"

	"notekeeper-be/internal/config"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/pkg/database"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	cfg *config.Config
	sys logger.ILogger
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the notekeeper database schema",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if cfg.Database.Connection == "" {
			return fmt.Errorf("DB_CONNECTION_STRING is not set")
		}
		sys = logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
		return nil
	},
	SilenceUsage: true,
}

func openDB() (*gorm.DB, error) {
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
