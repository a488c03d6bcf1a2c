package specification

import (
	"notekeeper-be/internal/repository/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NoteOwnedByUser qualifies the column with the table name so it stays unambiguous in joins.
type NoteOwnedByUser struct {
	UserID uuid.UUID
}

func (s NoteOwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.user_id = ?", s.UserID)
}

// NotesInCreationOrder is the listing order: oldest first, id as tie breaker.
type NotesInCreationOrder struct{}

func (s NotesInCreationOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Scopes(scope.OrderByCreatedAsc, scope.OrderByIdAsc)
}
