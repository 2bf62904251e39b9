package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Webhook struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	URL         string                      `gorm:"type:text;not null" json:"url"`
	Events      datatypes.JSONSlice[string] `json:"events"`
	IsActive    bool                        `gorm:"not null;default:true" json:"is_active"`
	CreatedByID uuid.UUID                   `gorm:"type:uuid;not null;index" json:"created_by_id"`
	CreatedAt   time.Time                   `json:"-"`
}

// Matches reports whether the webhook subscribed to the given event type.
func (w *Webhook) Matches(eventType string) bool {
	for _, e := range w.Events {
		if e == eventType {
			return true
		}
	}
	return false
}
