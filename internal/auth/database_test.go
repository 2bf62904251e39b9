package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jozemario/todos-backend/internal/database"
	"github.com/jozemario/todos-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.New(),
		Email:    uuid.NewString() + "@example.com",
		Password: "irrelevant",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestDatabaseStrategy_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	s := NewDatabaseStrategy(db, time.Hour)
	user := createUser(t, db)

	token, err := s.WriteToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := s.ReadToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, user.Email, identity.Email)
}

func TestDatabaseStrategy_StoresOnlyHash(t *testing.T) {
	db := newTestDB(t)
	s := NewDatabaseStrategy(db, time.Hour)

	token, err := s.WriteToken(createUser(t, db))
	require.NoError(t, err)

	var stored models.AccessToken
	require.NoError(t, db.First(&stored).Error)
	assert.NotEqual(t, token, stored.TokenHash)
	assert.Len(t, stored.TokenHash, 64)
}

func TestDatabaseStrategy_UnknownToken(t *testing.T) {
	db := newTestDB(t)
	s := NewDatabaseStrategy(db, time.Hour)

	_, err := s.ReadToken("never-issued")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestDatabaseStrategy_ExpiredTokenIsRemoved(t *testing.T) {
	db := newTestDB(t)
	s := NewDatabaseStrategy(db, -time.Minute)

	token, err := s.WriteToken(createUser(t, db))
	require.NoError(t, err)

	_, err = s.ReadToken(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	var count int64
	require.NoError(t, db.Model(&models.AccessToken{}).Count(&count).Error)
	assert.Zero(t, count)
}
