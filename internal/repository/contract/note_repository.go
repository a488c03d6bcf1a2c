package contract

import (
	"context"

	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	// Update writes title and content of the note matching note.Id and note.UserId.
	// Returns apperror.ErrNotFound when no such row exists.
	Update(ctx context.Context, note *entity.Note) error
	// Delete hard-deletes the note owned by userId. Returns apperror.ErrNotFound when nothing matched.
	Delete(ctx context.Context, id uuid.UUID, userId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
