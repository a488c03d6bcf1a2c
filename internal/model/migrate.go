package model

import "gorm.io/gorm"

// AutoMigrate creates or updates every table owned by the application.
// Users go first: notes.user_id references users.id.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Note{},
	)
}
