package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title   string  `json:"title" validate:"required,max=255"`
	Content *string `json:"content"`
}

// UpdateNoteRequest is a partial update: nil fields are left unchanged.
type UpdateNoteRequest struct {
	Id      uuid.UUID `json:"-"`
	Title   *string   `json:"title" validate:"omitempty,min=1,max=255"`
	Content *string   `json:"content"`
}

func (r *UpdateNoteRequest) IsEmpty() bool {
	return r.Title == nil && r.Content == nil
}

type NoteResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserId    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
