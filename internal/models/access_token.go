package models

import (
	"time"

	"github.com/google/uuid"
)

// AccessToken backs the database token strategy. Only a SHA-256 hash of
// the opaque token is stored.
type AccessToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TokenHash string    `gorm:"size:64;not null;uniqueIndex" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
