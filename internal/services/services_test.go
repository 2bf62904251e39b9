package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
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

func seedUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	user := models.User{
		ID:       uuid.New(),
		Email:    uuid.NewString() + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func seedPriority(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	priority := models.Priority{ID: uuid.New(), Name: name}
	require.NoError(t, db.Create(&priority).Error)
	return priority.ID
}

// seedSystemCategory inserts a category with no owner.
func seedSystemCategory(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	category := models.Category{ID: uuid.New(), Name: name}
	require.NoError(t, db.Create(&category).Error)
	return category.ID
}

func seedUserCategory(t *testing.T, db *gorm.DB, name string, ownerID uuid.UUID) uuid.UUID {
	t.Helper()
	category := models.Category{ID: uuid.New(), Name: name, CreatedByID: &ownerID}
	require.NoError(t, db.Create(&category).Error)
	return category.ID
}

type notified struct {
	userID    uuid.UUID
	eventType string
	payload   interface{}
}

// fakeNotifier records events synchronously so tests can assert on them.
type fakeNotifier struct {
	events []notified
}

func (f *fakeNotifier) Notify(userID uuid.UUID, eventType string, payload interface{}) {
	f.events = append(f.events, notified{userID: userID, eventType: eventType, payload: payload})
}

// staggered creation timestamps keep ordering assertions deterministic on
// sqlite's second-resolution clock.
func backdate(t *testing.T, db *gorm.DB, table string, id uuid.UUID, age time.Duration) {
	t.Helper()
	require.NoError(t, db.Table(table).
		Where("id = ?", id).
		Update("created_at", time.Now().Add(-age)).Error)
}
