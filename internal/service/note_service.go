package service

import (
	"context"
	"fmt"
	"time"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/mapper"
	"notekeeper-be/internal/pkg/apperror"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/pkg/events"

	"github.com/google/uuid"
)

// INoteService is the owner scoped note API. Every call takes the acting user's id and
// never reads or touches notes owned by someone else; such notes look exactly like missing ones.
type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.NoteResponse, error)
	// Show returns (nil, nil) when the note does not exist or is not owned by userId.
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type noteService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher events.Publisher,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (c *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (res *dto.NoteResponse, err error) {
	defer func() { observe("create", err) }()

	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperror.ErrValidation)
	}

	content := ""
	if req.Content != nil {
		content = *req.Content
	}

	now := time.Now()
	note := entity.Note{
		Id:        uuid.New(),
		Title:     req.Title,
		Content:   content,
		UserId:    userId,
		CreatedAt: now,
		UpdatedAt: now,
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}

	c.publish(ctx, events.NoteCreated, &note)

	return mapper.ToNoteResponse(&note), nil
}

func (c *noteService) List(ctx context.Context, userId uuid.UUID) (res []*dto.NoteResponse, err error) {
	defer func() { observe("list", err) }()

	uow := c.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.NoteOwnedByUser{UserID: userId},
		specification.NotesInCreationOrder{},
	)
	if err != nil {
		return nil, err
	}

	return mapper.ToNoteResponses(notes), nil
}

func (c *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (res *dto.NoteResponse, err error) {
	defer func() { observe("show", err) }()

	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil // Not found
	}

	return mapper.ToNoteResponse(note), nil
}

// Update applies only the fields present in req. The scoped read and the write share one
// transaction, and the write is scoped again, so a note deleted in between yields ErrNotFound.
func (c *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (res *dto.NoteResponse, err error) {
	defer func() { observe("update", err) }()

	if req.Title != nil && *req.Title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperror.ErrValidation)
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	note, err := c.loadOwnedOrFail(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	note.UpdatedAt = time.Now()

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	c.publish(ctx, events.NoteUpdated, note)

	return mapper.ToNoteResponse(note), nil
}

func (c *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) (err error) {
	defer func() { observe("delete", err) }()

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	note, err := c.loadOwnedOrFail(ctx, uow, userId, id)
	if err != nil {
		return err
	}

	if err := uow.NoteRepository().Delete(ctx, note.Id, userId); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	c.publish(ctx, events.NoteDeleted, note)
	return nil
}

// loadOwnedOrFail is the ownership check shared by every mutating operation.
func (c *noteService) loadOwnedOrFail(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, id uuid.UUID) (*entity.Note, error) {
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, fmt.Errorf("%w: note %s", apperror.ErrNotFound, id)
	}
	return note, nil
}

// publish is fire and forget: the write already committed, so a bus failure is only logged.
func (c *noteService) publish(ctx context.Context, eventType string, note *entity.Note) {
	if c.eventPublisher == nil {
		return
	}

	evt := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"note_id": note.Id.String(),
			"user_id": note.UserId.String(),
			"title":   note.Title,
		},
		OccurredAt: time.Now(),
	}
	if err := c.eventPublisher.Publish(ctx, evt); err != nil {
		c.logger.Warn("note", "failed to publish note event", map[string]interface{}{
			"event_type": eventType,
			"note_id":    note.Id.String(),
			"error":      err.Error(),
		})
	}
}
