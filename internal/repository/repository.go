// Package repository provides generic fetch/create/delete operations
// scoped by an ownership or visibility filter. Existence and ownership
// decisions belong to the calling service; this layer only runs queries.
package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jozemario/todos-backend/internal/config"
)

// ErrIntegrity is returned when an insert violates a foreign key, e.g. a
// todo referencing a priority that does not exist.
var ErrIntegrity = errors.New("integrity violation")

// Scope narrows a query, matching GORM's scope signature.
type Scope = func(*gorm.DB) *gorm.DB

// OwnedBy keeps rows created by the given user.
func OwnedBy(userID uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("created_by_id = ?", userID)
	}
}

// VisibleTo keeps system rows (no owner) plus rows created by the given
// user.
func VisibleTo(userID uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("created_by_id IS NULL OR created_by_id = ?", userID)
	}
}

// GetMany returns entities matching the scope in creation order, paginated
// by offset and page size. Both bounds are clamped to [0, MaxPageValue].
func GetMany[T any](db *gorm.DB, scope Scope, skip, limit int) ([]T, error) {
	var out []T
	q := db.Model(new(T))
	if scope != nil {
		q = q.Scopes(scope)
	}
	err := q.Order("created_at, id").
		Offset(clampPage(skip)).
		Limit(clampPage(limit)).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetOne returns the first entity matching the scope, or nil when absent.
func GetOne[T any](db *gorm.DB, scope Scope) (*T, error) {
	var out T
	err := db.Scopes(scope).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ByID scopes a query to a primary key.
func ByID(id uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

// Create inserts the entity, translating foreign key failures to
// ErrIntegrity.
func Create[T any](db *gorm.DB, entity *T) error {
	if err := db.Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrIntegrity
		}
		return err
	}
	return nil
}

// Delete removes the entity with the given id. Callers are responsible for
// existence and ownership checks.
func Delete[T any](db *gorm.DB, id uuid.UUID) error {
	return db.Delete(new(T), "id = ?", id).Error
}

func clampPage(v int) int {
	if v < 0 {
		return 0
	}
	if v > config.MaxPageValue {
		return config.MaxPageValue
	}
	return v
}
