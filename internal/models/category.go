package models

import (
	"time"

	"github.com/google/uuid"
)

// Category with a nil CreatedByID is a system category visible to every
// user. (name, created_by_id) is unique, so two users may own categories
// with the same name but a user can not duplicate their own.
type Category struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"type:text;not null;uniqueIndex:idx_categories_name_owner" json:"name"`
	CreatedByID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_categories_name_owner" json:"created_by_id"`
	CreatedAt   time.Time  `json:"-"`
}
