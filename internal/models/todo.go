package models

import (
	"time"

	"github.com/google/uuid"
)

// Priority is seeded once at startup and is read-only through the API.
type Priority struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:15;not null;unique" json:"name"`
	CreatedAt time.Time `json:"-"`
}

type Todo struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	IsCompleted bool       `gorm:"not null;default:false" json:"is_completed"`
	CreatedByID uuid.UUID  `gorm:"type:uuid;not null;index" json:"created_by_id"`
	PriorityID  uuid.UUID  `gorm:"type:uuid;not null" json:"priority_id"`
	Priority    Priority   `gorm:"foreignKey:PriorityID" json:"priority"`
	Categories  []Category `gorm:"many2many:todo_categories" json:"categories"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TodoCategory is the explicit join row between a todo and a category.
// Link rows are managed by hand (full delete-then-insert on update) rather
// than through GORM association writes.
type TodoCategory struct {
	TodoID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"todo_id"`
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey" json:"category_id"`
}
