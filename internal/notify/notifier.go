// Package notify fans change events out to live socket connections and
// registered webhook endpoints. Delivery never fails the operation that
// triggered it.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jozemario/todos-backend/internal/config"
	"github.com/jozemario/todos-backend/internal/models"
	"github.com/jozemario/todos-backend/internal/ws"
)

// Event is the payload shape for both sinks: the socket envelope's data
// field and the webhook request body.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type Service struct {
	db       *gorm.DB
	registry *ws.Registry
	client   *http.Client
	timeout  time.Duration
	attempts int
}

func New(db *gorm.DB, registry *ws.Registry, cfg *config.Config) *Service {
	return &Service{
		db:       db,
		registry: registry,
		client:   &http.Client{Timeout: cfg.WebhookTimeout},
		timeout:  cfg.WebhookTimeout,
		attempts: cfg.WebhookAttempts,
	}
}

// Notify broadcasts the event to the user's live sockets and dispatches it
// to matching webhooks. The socket path is best effort; webhook delivery
// runs detached so a slow endpoint can not hold up the caller.
func (s *Service) Notify(userID uuid.UUID, eventType string, payload interface{}) {
	event := Event{Type: eventType, Data: payload}

	s.registry.Broadcast(userID.String(), event, "default")

	var hooks []models.Webhook
	err := s.db.Where("created_by_id = ? AND is_active = ?", userID, true).Find(&hooks).Error
	if err != nil {
		slog.Error("failed to load webhooks", "user_id", userID, "error", err)
		return
	}

	for i := range hooks {
		hook := hooks[i]
		if !hook.Matches(eventType) {
			continue
		}
		go s.deliver(hook.URL, event)
	}
}

// deliver POSTs the event as JSON, retrying immediately up to the
// configured attempt count. Exhaustion is logged, never surfaced.
func (s *Service) deliver(url string, event Event) {
	body, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to encode webhook payload", "url", url, "error", err)
		return
	}

	for attempt := 1; attempt <= s.attempts; attempt++ {
		if err := s.post(url, body); err != nil {
			if attempt == s.attempts {
				slog.Error("webhook delivery failed", "url", url, "attempts", s.attempts, "error", err)
			} else {
				slog.Warn("webhook delivery attempt failed", "url", url, "attempt", attempt, "error", err)
			}
			continue
		}
		slog.Info("webhook delivered", "url", url, "event", event.Type)
		return
	}
}

func (s *Service) post(url string, body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
