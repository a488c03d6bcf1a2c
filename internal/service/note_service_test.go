package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/pkg/apperror"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/internal/testutil"
	"notekeeper-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recordingPublisher) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventType())
	}
	return out
}

func strPtr(s string) *string { return &s }

func newNoteService(t *testing.T) (INoteService, *gorm.DB, *recordingPublisher) {
	t.Helper()
	db := testutil.NewTestDB(t)
	pub := &recordingPublisher{}
	svc := NewNoteService(unitofwork.NewRepositoryFactory(db), pub, logger.NewNopLogger())
	return svc, db, pub
}

func TestNoteService_CreateAndShow(t *testing.T) {
	ctx := context.Background()
	svc, db, pub := newNoteService(t)
	owner := testutil.CreateUser(t, db)

	created, err := svc.Create(ctx, owner.Id, &dto.CreateNoteRequest{Title: "Groceries", Content: strPtr("eggs")})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.Id)
	assert.Equal(t, owner.Id, created.UserId)
	assert.Equal(t, "eggs", created.Content)

	shown, err := svc.Show(ctx, owner.Id, created.Id)
	require.NoError(t, err)
	require.NotNil(t, shown)
	assert.Equal(t, "Groceries", shown.Title)

	assert.Equal(t, []string{events.NoteCreated}, pub.types())
}

func TestNoteService_CreateWithoutContentStoresEmpty(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newNoteService(t)
	owner := testutil.CreateUser(t, db)

	created, err := svc.Create(ctx, owner.Id, &dto.CreateNoteRequest{Title: "Only a title"})
	require.NoError(t, err)
	assert.Equal(t, "", created.Content)
}

func TestNoteService_CreateRejectsEmptyTitle(t *testing.T) {
	ctx := context.Background()
	svc, db, pub := newNoteService(t)
	owner := testutil.CreateUser(t, db)

	_, err := svc.Create(ctx, owner.Id, &dto.CreateNoteRequest{Title: ""})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	notes, err := svc.List(ctx, owner.Id)
	require.NoError(t, err)
	assert.Empty(t, notes)
	assert.Empty(t, pub.types())
}

func TestNoteService_ListOnlyOwnNotesInCreationOrder(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newNoteService(t)
	alice := testutil.CreateUser(t, db)
	bob := testutil.CreateUser(t, db)

	for _, title := range []string{"a1", "a2", "a3"} {
		_, err := svc.Create(ctx, alice.Id, &dto.CreateNoteRequest{Title: title})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}
	_, err := svc.Create(ctx, bob.Id, &dto.CreateNoteRequest{Title: "b1"})
	require.NoError(t, err)

	notes, err := svc.List(ctx, alice.Id)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	for i, title := range []string{"a1", "a2", "a3"} {
		assert.Equal(t, title, notes[i].Title)
		assert.Equal(t, alice.Id, notes[i].UserId)
	}

	empty, err := svc.List(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestNoteService_ShowForeignOrMissingIsNil(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newNoteService(t)
	alice := testutil.CreateUser(t, db)
	bob := testutil.CreateUser(t, db)

	note, err := svc.Create(ctx, alice.Id, &dto.CreateNoteRequest{Title: "secret"})
	require.NoError(t, err)

	foreign, err := svc.Show(ctx, bob.Id, note.Id)
	require.NoError(t, err)
	assert.Nil(t, foreign)

	missing, err := svc.Show(ctx, alice.Id, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestNoteService_UpdatePartial(t *testing.T) {
	ctx := context.Background()
	svc, db, pub := newNoteService(t)
	owner := testutil.CreateUser(t, db)

	note, err := svc.Create(ctx, owner.Id, &dto.CreateNoteRequest{Title: "Draft", Content: strPtr("body")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, owner.Id, &dto.UpdateNoteRequest{Id: note.Id, Title: strPtr("Final")})
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Title)
	assert.Equal(t, "body", updated.Content)
	assert.False(t, updated.UpdatedAt.Before(note.UpdatedAt))

	updated, err = svc.Update(ctx, owner.Id, &dto.UpdateNoteRequest{Id: note.Id, Content: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Title)
	assert.Equal(t, "", updated.Content)

	shown, err := svc.Show(ctx, owner.Id, note.Id)
	require.NoError(t, err)
	assert.Equal(t, "Final", shown.Title)
	assert.Equal(t, "", shown.Content)
	assert.Equal(t, note.CreatedAt.Unix(), shown.CreatedAt.Unix())

	assert.Equal(t, []string{events.NoteCreated, events.NoteUpdated, events.NoteUpdated}, pub.types())
}

func TestNoteService_UpdateRejectsEmptyTitle(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newNoteService(t)
	owner := testutil.CreateUser(t, db)

	note, err := svc.Create(ctx, owner.Id, &dto.CreateNoteRequest{Title: "Keep"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, owner.Id, &dto.UpdateNoteRequest{Id: note.Id, Title: strPtr("")})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	shown, err := svc.Show(ctx, owner.Id, note.Id)
	require.NoError(t, err)
	assert.Equal(t, "Keep", shown.Title)
}

func TestNoteService_UpdateForeignIsNotFoundAndUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, db, pub := newNoteService(t)
	alice := testutil.CreateUser(t, db)
	bob := testutil.CreateUser(t, db)

	note, err := svc.Create(ctx, alice.Id, &dto.CreateNoteRequest{Title: "mine"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, bob.Id, &dto.UpdateNoteRequest{Id: note.Id, Title: strPtr("stolen")})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	shown, err := svc.Show(ctx, alice.Id, note.Id)
	require.NoError(t, err)
	assert.Equal(t, "mine", shown.Title)
	assert.Equal(t, []string{events.NoteCreated}, pub.types())
}

func TestNoteService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, db, pub := newNoteService(t)
	alice := testutil.CreateUser(t, db)
	bob := testutil.CreateUser(t, db)

	note, err := svc.Create(ctx, alice.Id, &dto.CreateNoteRequest{Title: "temp"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, bob.Id, note.Id), apperror.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, alice.Id, note.Id))
	assert.ErrorIs(t, svc.Delete(ctx, alice.Id, note.Id), apperror.ErrNotFound)

	shown, err := svc.Show(ctx, alice.Id, note.Id)
	require.NoError(t, err)
	assert.Nil(t, shown)
	assert.Equal(t, []string{events.NoteCreated, events.NoteDeleted}, pub.types())
}

func TestNoteService_PublishFailureDoesNotFailWrite(t *testing.T) {
	ctx := context.Background()
	svc, db, pub := newNoteService(t)
	pub.err = errors.New("bus down")
	owner := testutil.CreateUser(t, db)

	note, err := svc.Create(ctx, owner.Id, &dto.CreateNoteRequest{Title: "durable"})
	require.NoError(t, err)

	shown, err := svc.Show(ctx, owner.Id, note.Id)
	require.NoError(t, err)
	assert.NotNil(t, shown)
}

func TestNoteService_NilPublisher(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	owner := testutil.CreateUser(t, db)
	svc := NewNoteService(unitofwork.NewRepositoryFactory(db), nil, logger.NewNopLogger())

	_, err := svc.Create(ctx, owner.Id, &dto.CreateNoteRequest{Title: "quiet"})
	assert.NoError(t, err)
}
