package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jozemario/todos-backend/internal/models"
	"github.com/jozemario/todos-backend/internal/repository"
)

var ErrWebhookNotFound = errors.New("webhook does not exists")

type WebhookService struct {
	db *gorm.DB
}

func NewWebhookService(db *gorm.DB) *WebhookService {
	return &WebhookService{db: db}
}

func (s *WebhookService) Create(userID uuid.UUID, url string, events []string, isActive bool) (*models.Webhook, error) {
	webhook := models.Webhook{
		ID:          uuid.New(),
		URL:         url,
		Events:      datatypes.NewJSONSlice(events),
		IsActive:    isActive,
		CreatedByID: userID,
	}
	if err := s.db.Create(&webhook).Error; err != nil {
		return nil, err
	}
	return &webhook, nil
}

func (s *WebhookService) List(userID uuid.UUID, skip, limit int) ([]models.Webhook, error) {
	return repository.GetMany[models.Webhook](s.db, repository.OwnedBy(userID), skip, limit)
}

// Delete removes a registration owned by the user. A webhook belonging to
// someone else is indistinguishable from a missing one.
func (s *WebhookService) Delete(webhookID, userID uuid.UUID) error {
	webhook, err := repository.GetOne[models.Webhook](s.db, func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ? AND created_by_id = ?", webhookID, userID)
	})
	if err != nil {
		return err
	}
	if webhook == nil {
		return ErrWebhookNotFound
	}
	return repository.Delete[models.Webhook](s.db, webhookID)
}
