package mapper

import (
	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
)

func ToNoteResponse(n *entity.Note) *dto.NoteResponse {
	if n == nil {
		return nil
	}
	return &dto.NoteResponse{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		UserId:    n.UserId,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// ToNoteResponses never returns nil so an empty list encodes as [].
func ToNoteResponses(notes []*entity.Note) []*dto.NoteResponse {
	res := make([]*dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		res = append(res, ToNoteResponse(n))
	}
	return res
}

func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		Id:    u.Id,
		Email: u.Email,
		Name:  u.Name,
	}
}
