package auth

import (
	"errors"

	"github.com/google/uuid"

	"github.com/jozemario/todos-backend/internal/models"
)

var ErrUnauthenticated = errors.New("invalid or expired token")

// Identity is the validated result of reading a bearer token.
type Identity struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	IsSuperuser bool      `json:"is_superuser"`
}

// Strategy mints and validates bearer tokens. Two implementations exist:
// JWTStrategy (primary) and DatabaseStrategy (opaque tokens backed by the
// access_tokens table).
type Strategy interface {
	WriteToken(user *models.User) (string, error)
	ReadToken(token string) (*Identity, error)
}
