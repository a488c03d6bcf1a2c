package main

import (
	"context"
	"fmt"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/repository/memory"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/internal/service"
	"notekeeper-be/pkg/database"

	"github.com/spf13/cobra"
)

var (
	seedEmail    string
	seedPassword string
)

var welcomeNotes = []dto.CreateNoteRequest{
	{Title: "Welcome", Content: strPtr("Notes you create are visible only to you.")},
	{Title: "Editing", Content: strPtr("Open a note to change its title or content, or delete it.")},
}

func strPtr(s string) *string { return &s }

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a demo user with a few notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		ctx := context.Background()
		uowFactory := unitofwork.NewRepositoryFactory(db)

		// Login provisions the user when the email is new and checks the password otherwise.
		authService := service.NewAuthService(uowFactory, memory.NewTokenDenylist(), []byte("seed"), cfg.Auth.TokenTTL, sys)
		res, err := authService.Login(ctx, &dto.LoginRequest{Email: seedEmail, Password: seedPassword})
		if err != nil {
			return fmt.Errorf("failed to sign in %s: %w", seedEmail, err)
		}

		noteService := service.NewNoteService(uowFactory, nil, sys)
		existing, err := noteService.List(ctx, res.User.Id)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			sys.Info("seed", "user already has notes, skipping", map[string]interface{}{"user_id": res.User.Id.String()})
			return nil
		}

		for i := range welcomeNotes {
			if _, err := noteService.Create(ctx, res.User.Id, &welcomeNotes[i]); err != nil {
				return fmt.Errorf("failed to create note %q: %w", welcomeNotes[i].Title, err)
			}
		}

		sys.Info("seed", "demo data created", map[string]interface{}{
			"user_id": res.User.Id.String(),
			"notes":   len(welcomeNotes),
		})
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedEmail, "email", "demo@example.com", "demo user email")
	seedCmd.Flags().StringVar(&seedPassword, "password", "demo-password", "demo user password")
	rootCmd.AddCommand(seedCmd)
}
