package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jozemario/todos-backend/internal/models"
)

func TestCategoryService_List_VisibilityUnion(t *testing.T) {
	db := newTestDB(t)
	s := NewCategoryService(db)
	alice := seedUser(t, db)
	bob := seedUser(t, db)

	system := seedSystemCategory(t, db, "Work")
	own := seedUserCategory(t, db, "Groceries", alice)
	seedUserCategory(t, db, "Secret", bob)

	categories, err := s.List(alice, 0, 100)
	require.NoError(t, err)
	require.Len(t, categories, 2)

	ids := []uuid.UUID{categories[0].ID, categories[1].ID}
	assert.Contains(t, ids, system)
	assert.Contains(t, ids, own)
}

func TestCategoryService_List_Pagination(t *testing.T) {
	db := newTestDB(t)
	s := NewCategoryService(db)
	alice := seedUser(t, db)

	first := seedUserCategory(t, db, "a", alice)
	second := seedUserCategory(t, db, "b", alice)
	third := seedUserCategory(t, db, "c", alice)
	backdate(t, db, "categories", first, 3*time.Hour)
	backdate(t, db, "categories", second, 2*time.Hour)
	backdate(t, db, "categories", third, time.Hour)

	page, err := s.List(alice, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, second, page[0].ID)
}

func TestCategoryService_Create(t *testing.T) {
	db := newTestDB(t)
	s := NewCategoryService(db)
	alice := seedUser(t, db)

	category, err := s.Create(alice, "Groceries")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", category.Name)
	require.NotNil(t, category.CreatedByID)
	assert.Equal(t, alice, *category.CreatedByID)
}

func TestCategoryService_Create_DuplicateOwnName(t *testing.T) {
	db := newTestDB(t)
	s := NewCategoryService(db)
	alice := seedUser(t, db)
	seedUserCategory(t, db, "Groceries", alice)

	_, err := s.Create(alice, "Groceries")
	assert.ErrorIs(t, err, ErrCategoryExists)
}

func TestCategoryService_Create_CollidesWithSystemName(t *testing.T) {
	db := newTestDB(t)
	s := NewCategoryService(db)
	alice := seedUser(t, db)
	seedSystemCategory(t, db, "Work")

	_, err := s.Create(alice, "Work")
	assert.ErrorIs(t, err, ErrCategoryExists)
}

// Two users may own categories with the same name; the collision check only
// looks at rows visible to the creator.
func TestCategoryService_Create_SameNameDifferentOwner(t *testing.T) {
	db := newTestDB(t)
	s := NewCategoryService(db)
	alice := seedUser(t, db)
	bob := seedUser(t, db)
	seedUserCategory(t, db, "Groceries", bob)

	_, err := s.Create(alice, "Groceries")
	assert.NoError(t, err)
}

func TestCategoryService_Delete(t *testing.T) {
	db := newTestDB(t)
	s := NewCategoryService(db)
	alice := seedUser(t, db)
	categoryID := seedUserCategory(t, db, "Groceries", alice)

	require.NoError(t, s.Delete(categoryID, alice))

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Where("id = ?", categoryID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCategoryService_Delete_Missing(t *testing.T) {
	db := newTestDB(t)
	s := NewCategoryService(db)
	alice := seedUser(t, db)

	err := s.Delete(uuid.New(), alice)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryService_Delete_ForeignOwner(t *testing.T) {
	db := newTestDB(t)
	s := NewCategoryService(db)
	alice := seedUser(t, db)
	bob := seedUser(t, db)
	categoryID := seedUserCategory(t, db, "Groceries", bob)

	err := s.Delete(categoryID, alice)
	assert.ErrorIs(t, err, ErrCategoryNotOwned)
}

func TestCategoryService_Delete_SystemCategory(t *testing.T) {
	db := newTestDB(t)
	s := NewCategoryService(db)
	alice := seedUser(t, db)
	categoryID := seedSystemCategory(t, db, "Work")

	err := s.Delete(categoryID, alice)
	assert.ErrorIs(t, err, ErrCategoryNotOwned)
}

func TestCategoryService_Delete_CascadesTodoLinks(t *testing.T) {
	db := newTestDB(t)
	s := NewCategoryService(db)
	alice := seedUser(t, db)
	priorityID := seedPriority(t, db, "High")
	categoryID := seedUserCategory(t, db, "Groceries", alice)

	todos := NewTodoService(db, &fakeNotifier{})
	todo, err := todos.Create(alice, "buy milk", priorityID, []uuid.UUID{categoryID})
	require.NoError(t, err)

	require.NoError(t, s.Delete(categoryID, alice))

	var links int64
	require.NoError(t, db.Model(&models.TodoCategory{}).Where("todo_id = ?", todo.ID).Count(&links).Error)
	assert.Zero(t, links)

	// The todo itself survives, just without the category.
	var remaining int64
	require.NoError(t, db.Model(&models.Todo{}).Where("id = ?", todo.ID).Count(&remaining).Error)
	assert.EqualValues(t, 1, remaining)
}
