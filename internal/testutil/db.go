// Package testutil holds helpers shared by package tests that need a real database.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/model"
	"notekeeper-be/internal/repository/implementation"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB returns a migrated in-memory SQLite database private to the test.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every new connection to ":memory:" would open a fresh, empty database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, model.AutoMigrate(db))
	return db
}

// CreateUser inserts a user with a unique email.
func CreateUser(t *testing.T, db *gorm.DB) *entity.User {
	t.Helper()

	id := uuid.New()
	user := &entity.User{
		Id:    id,
		Email: fmt.Sprintf("user-%s@example.com", id),
		Name:  "user-" + id.String()[:8],
	}
	require.NoError(t, implementation.NewUserRepository(db).Create(context.Background(), user))
	return user
}
