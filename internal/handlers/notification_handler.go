package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jozemario/todos-backend/internal/auth"
	"github.com/jozemario/todos-backend/internal/dto"
	"github.com/jozemario/todos-backend/internal/ws"
)

// NotificationHandler relays externally-posted payloads onto a user's live
// socket connections.
type NotificationHandler struct {
	registry *ws.Registry
	strategy auth.Strategy
}

func NewNotificationHandler(registry *ws.Registry, strategy auth.Strategy) *NotificationHandler {
	return &NotificationHandler{registry: registry, strategy: strategy}
}

func (h *NotificationHandler) Relay(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user ID",
		})
	}

	// A bearer token, when supplied, must belong to the targeted user.
	if header := c.Get("Authorization"); header != "" {
		token := strings.TrimPrefix(header, "Bearer ")
		identity, err := h.strategy.ReadToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if identity.UserID != userID {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Not authorized",
			})
		}
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid payload",
		})
	}

	h.registry.Broadcast(userID.String(), map[string]interface{}{
		"type": "webhook.notification",
		"data": payload,
	}, "default")

	return c.JSON(fiber.Map{"status": "success"})
}
