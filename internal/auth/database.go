package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jozemario/todos-backend/internal/models"
)

// DatabaseStrategy issues opaque random tokens and persists their hashes.
// Alternate implementation behind the same Strategy interface; JWTStrategy
// is the primary.
type DatabaseStrategy struct {
	db       *gorm.DB
	lifetime time.Duration
}

func NewDatabaseStrategy(db *gorm.DB, lifetime time.Duration) *DatabaseStrategy {
	return &DatabaseStrategy{db: db, lifetime: lifetime}
}

func (s *DatabaseStrategy) WriteToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.AccessToken{
		ID:        uuid.New(),
		TokenHash: hashToken(rawToken),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.lifetime),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store access token: %w", err)
	}

	return rawToken, nil
}

func (s *DatabaseStrategy) ReadToken(token string) (*Identity, error) {
	var stored models.AccessToken
	if err := s.db.Where("token_hash = ?", hashToken(token)).First(&stored).Error; err != nil {
		return nil, ErrUnauthenticated
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Delete(&stored)
		return nil, ErrUnauthenticated
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	return &Identity{
		UserID:      user.ID,
		Email:       user.Email,
		IsSuperuser: user.IsSuperuser,
	}, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
