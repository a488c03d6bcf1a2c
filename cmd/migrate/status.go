package main

import (
	"fmt"

	"notekeeper-be/internal/model"
	"notekeeper-be/pkg/database"

	"github.com/spf13/cobra"
	"gorm.io/gorm/schema"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report which application tables exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		missing := 0
		for _, m := range []schema.Tabler{&model.User{}, &model.Note{}} {
			state := "present"
			if !db.Migrator().HasTable(m) {
				state = "missing"
				missing++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", m.TableName(), state)
		}

		if missing > 0 {
			return fmt.Errorf("%d table(s) missing, run `migrate up`", missing)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
