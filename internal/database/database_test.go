package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

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
	return db
}

func TestMigrate(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Migrate(db))

	for _, table := range []string{"users", "access_tokens", "priorities", "categories", "todos", "todo_categories", "webhooks", "system_logs"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Migrate(db))

	priorities := []string{"Low", "Medium", "High"}
	categories := []string{"Work", "Personal"}

	require.NoError(t, Seed(db, priorities, categories))
	require.NoError(t, Seed(db, priorities, categories))

	var priorityCount, categoryCount int64
	require.NoError(t, db.Model(&models.Priority{}).Count(&priorityCount).Error)
	require.NoError(t, db.Model(&models.Category{}).Count(&categoryCount).Error)
	assert.EqualValues(t, 3, priorityCount)
	assert.EqualValues(t, 2, categoryCount)
}

// Seeded categories are system-owned; a user's category with the same name
// does not satisfy the seed check.
func TestSeed_IgnoresUserCategories(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Migrate(db))

	user := models.User{ID: uuid.New(), Email: "user@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	owned := models.Category{ID: uuid.New(), Name: "Work", CreatedByID: &user.ID}
	require.NoError(t, db.Create(&owned).Error)

	require.NoError(t, Seed(db, nil, []string{"Work"}))

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Where("created_by_id IS NULL").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
