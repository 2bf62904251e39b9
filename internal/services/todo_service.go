package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jozemario/todos-backend/internal/models"
	"github.com/jozemario/todos-backend/internal/repository"
)

var (
	ErrTodoNotFound       = errors.New("todo does not exists")
	ErrTodoUpdateNotOwned = errors.New("a user can not update a todo that was not created by him")
	ErrTodoDeleteNotOwned = errors.New("a user can not delete a todo that was not created by him")
	ErrInvalidCategories  = errors.New("categories are not valid")
	ErrInvalidPriority    = errors.New("priority is not valid")
)

// Event types emitted on successful mutations.
const (
	EventTodoCreated = "todo.created"
	EventTodoUpdated = "todo.updated"
	EventTodoDeleted = "todo.deleted"
)

// Notifier fans a change event out to the owning user's sinks. Delivery is
// fire-and-forget relative to the triggering operation.
type Notifier interface {
	Notify(userID uuid.UUID, eventType string, payload interface{})
}

type TodoService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewTodoService(db *gorm.DB, notifier Notifier) *TodoService {
	return &TodoService{db: db, notifier: notifier}
}

// List returns the user's todos in creation order with priority and
// categories resolved.
func (s *TodoService) List(userID uuid.UUID, skip, limit int) ([]models.Todo, error) {
	return repository.GetMany[models.Todo](
		s.db.Preload("Priority").Preload("Categories"),
		repository.OwnedBy(userID),
		skip, limit,
	)
}

// Priorities returns the seeded priority set.
func (s *TodoService) Priorities(skip, limit int) ([]models.Priority, error) {
	return repository.GetMany[models.Priority](s.db, nil, skip, limit)
}

func (s *TodoService) Create(userID uuid.UUID, content string, priorityID uuid.UUID, categoryIDs []uuid.UUID) (*models.Todo, error) {
	if err := s.validateCategories(userID, categoryIDs); err != nil {
		return nil, err
	}

	todo := models.Todo{
		ID:          uuid.New(),
		Content:     content,
		CreatedByID: userID,
		PriorityID:  priorityID,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := repository.Create(tx, &todo); err != nil {
			return err
		}
		return insertLinks(tx, todo.ID, categoryIDs)
	})
	if err != nil {
		if isIntegrity(err) {
			return nil, ErrInvalidPriority
		}
		return nil, err
	}

	created, err := s.getWithRelations(todo.ID)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(userID, EventTodoCreated, created)
	return created, nil
}

func (s *TodoService) Update(todoID, userID uuid.UUID, content string, priorityID uuid.UUID, categoryIDs []uuid.UUID, isCompleted bool) (*models.Todo, error) {
	todo, err := repository.GetOne[models.Todo](s.db, repository.ByID(todoID))
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, ErrTodoNotFound
	}
	if todo.CreatedByID != userID {
		return nil, ErrTodoUpdateNotOwned
	}

	if err := s.validateCategories(userID, categoryIDs); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Todo{}).Where("id = ?", todoID).Updates(map[string]interface{}{
			"content":      content,
			"priority_id":  priorityID,
			"is_completed": isCompleted,
		}).Error
		if err != nil {
			return err
		}
		// The old link set must be gone before the new one is inserted,
		// or overlapping ids collide on the composite key.
		if err := tx.Where("todo_id = ?", todoID).Delete(&models.TodoCategory{}).Error; err != nil {
			return err
		}
		return insertLinks(tx, todoID, categoryIDs)
	})
	if err != nil {
		if isIntegrity(err) {
			return nil, ErrInvalidPriority
		}
		return nil, err
	}

	updated, err := s.getWithRelations(todoID)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(userID, EventTodoUpdated, updated)
	return updated, nil
}

func (s *TodoService) Delete(todoID, userID uuid.UUID) error {
	todo, err := repository.GetOne[models.Todo](s.db, repository.ByID(todoID))
	if err != nil {
		return err
	}
	if todo == nil {
		return ErrTodoNotFound
	}
	if todo.CreatedByID != userID {
		return ErrTodoDeleteNotOwned
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("todo_id = ?", todoID).Delete(&models.TodoCategory{}).Error; err != nil {
			return err
		}
		return repository.Delete[models.Todo](tx, todoID)
	})
	if err != nil {
		return err
	}

	s.notifier.Notify(userID, EventTodoDeleted, map[string]interface{}{"id": todoID})
	return nil
}

// validateCategories requires every requested category id to resolve to a
// row visible to the user. Duplicate ids in the request make the count
// fall short, failing the whole set.
func (s *TodoService) validateCategories(userID uuid.UUID, categoryIDs []uuid.UUID) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	var count int64
	err := s.db.Model(&models.Category{}).
		Scopes(repository.VisibleTo(userID)).
		Where("id IN ?", categoryIDs).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count != int64(len(categoryIDs)) {
		return ErrInvalidCategories
	}
	return nil
}

func (s *TodoService) getWithRelations(todoID uuid.UUID) (*models.Todo, error) {
	todo, err := repository.GetOne[models.Todo](
		s.db.Preload("Priority").Preload("Categories"),
		repository.ByID(todoID),
	)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, ErrTodoNotFound
	}
	return todo, nil
}

func insertLinks(tx *gorm.DB, todoID uuid.UUID, categoryIDs []uuid.UUID) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	links := make([]models.TodoCategory, 0, len(categoryIDs))
	for _, categoryID := range categoryIDs {
		links = append(links, models.TodoCategory{TodoID: todoID, CategoryID: categoryID})
	}
	return tx.Create(&links).Error
}

func isIntegrity(err error) bool {
	return errors.Is(err, repository.ErrIntegrity) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrDuplicatedKey)
}
