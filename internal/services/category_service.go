package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jozemario/todos-backend/internal/models"
	"github.com/jozemario/todos-backend/internal/repository"
)

var (
	ErrCategoryExists   = errors.New("category name already exists")
	ErrCategoryNotFound = errors.New("category does not exists")
	ErrCategoryNotOwned = errors.New("a user can not delete a category that was not created by him")
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// List returns system categories unioned with the user's own, in creation
// order.
func (s *CategoryService) List(userID uuid.UUID, skip, limit int) ([]models.Category, error) {
	return repository.GetMany[models.Category](s.db, repository.VisibleTo(userID), skip, limit)
}

// Create inserts a category owned by the user. The name must not collide
// with any category already visible to them, system categories included.
func (s *CategoryService) Create(userID uuid.UUID, name string) (*models.Category, error) {
	var count int64
	err := s.db.Model(&models.Category{}).
		Scopes(repository.VisibleTo(userID)).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryExists
	}

	category := models.Category{
		ID:          uuid.New(),
		Name:        name,
		CreatedByID: &userID,
	}
	if err := s.db.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	return &category, nil
}

// Delete removes a category the user owns, cascading its todo links.
// System categories have no owner and can not be deleted by anyone.
func (s *CategoryService) Delete(categoryID, userID uuid.UUID) error {
	category, err := repository.GetOne[models.Category](s.db, repository.ByID(categoryID))
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	if category.CreatedByID == nil || *category.CreatedByID != userID {
		return ErrCategoryNotOwned
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", categoryID).Delete(&models.TodoCategory{}).Error; err != nil {
			return err
		}
		return repository.Delete[models.Category](tx, categoryID)
	})
}
