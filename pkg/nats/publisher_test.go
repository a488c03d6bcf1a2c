package nats

import (
	"testing"

	"notekeeper-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "notes.note_created", Subject(events.NoteCreated))
	assert.Equal(t, "notes.note_deleted", Subject(events.NoteDeleted))
}
