package main

import (
	"fmt"

	"notekeeper-be/internal/model"
	"notekeeper-be/pkg/database"

	"github.com/spf13/cobra"
)

// Things AutoMigrate does not do by itself. Every statement is idempotent.
var setupSQL = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
}

var postMigrationSQL = []string{
	`CREATE OR REPLACE FUNCTION set_current_timestamp_updated_at() RETURNS trigger LANGUAGE plpgsql AS $$
	BEGIN
	  NEW.updated_at = now();
	  RETURN NEW;
	END; $$;`,
	`DROP TRIGGER IF EXISTS set_notes_updated_at ON notes;`,
	`CREATE TRIGGER set_notes_updated_at BEFORE UPDATE ON notes
	 FOR EACH ROW EXECUTE FUNCTION set_current_timestamp_updated_at();`,
	`DROP TRIGGER IF EXISTS set_users_updated_at ON users;`,
	`CREATE TRIGGER set_users_updated_at BEFORE UPDATE ON users
	 FOR EACH ROW EXECUTE FUNCTION set_current_timestamp_updated_at();`,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Create or update every table",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		for _, sql := range setupSQL {
			if err := db.Exec(sql).Error; err != nil {
				sys.Warn("migrate", "setup statement failed, continuing", map[string]interface{}{"error": err.Error()})
			}
		}

		if err := model.AutoMigrate(db); err != nil {
			return fmt.Errorf("auto migrate failed: %w", err)
		}

		for _, sql := range postMigrationSQL {
			if err := db.Exec(sql).Error; err != nil {
				return fmt.Errorf("post migration failed: %w", err)
			}
		}

		sys.Info("migrate", "database migration completed", nil)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(upCmd)
}
