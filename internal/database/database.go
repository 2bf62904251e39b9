package database

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jozemario/todos-backend/internal/config"
	"github.com/jozemario/todos-backend/internal/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// Migrate runs AutoMigrate for all models and wires the explicit
// todo/category join table.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Todo{}, "Categories", &models.TodoCategory{}); err != nil {
		return fmt.Errorf("failed to set up join table: %w", err)
	}
	return db.AutoMigrate(
		&models.User{},
		&models.AccessToken{},
		&models.Priority{},
		&models.Category{},
		&models.Todo{},
		&models.TodoCategory{},
		&models.Webhook{},
		&models.SystemLog{},
	)
}

// Seed inserts default priorities and system categories, matching by name
// so repeated startups are no-ops.
func Seed(db *gorm.DB, priorities, categories []string) error {
	for _, name := range priorities {
		var existing models.Priority
		err := db.Where("name = ?", name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&models.Priority{ID: uuid.New(), Name: name}).Error; err != nil {
			return fmt.Errorf("failed to seed priority %q: %w", name, err)
		}
		slog.Info("seeded priority", "name", name)
	}

	for _, name := range categories {
		var existing models.Category
		err := db.Where("name = ? AND created_by_id IS NULL", name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&models.Category{ID: uuid.New(), Name: name}).Error; err != nil {
			return fmt.Errorf("failed to seed category %q: %w", name, err)
		}
		slog.Info("seeded system category", "name", name)
	}

	return nil
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
