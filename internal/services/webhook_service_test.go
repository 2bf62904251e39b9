package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jozemario/todos-backend/internal/models"
)

func TestWebhookService_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	s := NewWebhookService(db)
	alice := seedUser(t, db)
	bob := seedUser(t, db)

	created, err := s.Create(alice, "https://example.com/hook", []string{"todo.created"}, true)
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, []string{"todo.created"}, []string(created.Events))

	_, err = s.Create(bob, "https://example.com/other", nil, true)
	require.NoError(t, err)

	hooks, err := s.List(alice, 0, 100)
	require.NoError(t, err)
	require.Len(t, hooks, 1)
	assert.Equal(t, created.ID, hooks[0].ID)
}

func TestWebhookService_Delete(t *testing.T) {
	db := newTestDB(t)
	s := NewWebhookService(db)
	alice := seedUser(t, db)

	created, err := s.Create(alice, "https://example.com/hook", nil, true)
	require.NoError(t, err)

	require.NoError(t, s.Delete(created.ID, alice))

	var count int64
	require.NoError(t, db.Model(&models.Webhook{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestWebhookService_Delete_Missing(t *testing.T) {
	db := newTestDB(t)
	s := NewWebhookService(db)
	alice := seedUser(t, db)

	err := s.Delete(uuid.New(), alice)
	assert.ErrorIs(t, err, ErrWebhookNotFound)
}

// A webhook owned by another user looks exactly like a missing one.
func TestWebhookService_Delete_ForeignOwner(t *testing.T) {
	db := newTestDB(t)
	s := NewWebhookService(db)
	alice := seedUser(t, db)
	bob := seedUser(t, db)

	created, err := s.Create(bob, "https://example.com/hook", nil, true)
	require.NoError(t, err)

	err = s.Delete(created.ID, alice)
	assert.ErrorIs(t, err, ErrWebhookNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Webhook{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

// A webhook fires only for event types in its set; an empty set never
// matches.
func TestWebhookMatches(t *testing.T) {
	empty := models.Webhook{}
	assert.False(t, empty.Matches("todo.created"))

	scoped := models.Webhook{Events: []string{"todo.deleted"}}
	assert.True(t, scoped.Matches("todo.deleted"))
	assert.False(t, scoped.Matches("todo.created"))
}
