package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID
	Email        string
	Name         string
	PasswordHash *string // nil until the first credentialed login
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
