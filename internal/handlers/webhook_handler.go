package handlers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jozemario/todos-backend/internal/config"
	"github.com/jozemario/todos-backend/internal/dto"
	"github.com/jozemario/todos-backend/internal/middleware"
	"github.com/jozemario/todos-backend/internal/services"
)

type WebhookHandler struct {
	service *services.WebhookService
	cfg     *config.Config
}

func NewWebhookHandler(service *services.WebhookService, cfg *config.Config) *WebhookHandler {
	return &WebhookHandler{service: service, cfg: cfg}
}

func (h *WebhookHandler) List(c *fiber.Ctx) error {
	identity, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	skip, limit := pageParams(c, h.cfg)
	webhooks, err := h.service.List(identity.UserID, skip, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch webhooks",
		})
	}
	return c.JSON(webhooks)
}

func (h *WebhookHandler) Create(c *fiber.Ctx) error {
	identity, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.WebhookCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if !validWebhookURL(req.URL) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid webhook URL",
		})
	}

	webhook, err := h.service.Create(identity.UserID, req.URL, req.Events, req.Active())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create webhook",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(webhook)
}

func (h *WebhookHandler) Delete(c *fiber.Ctx) error {
	identity, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	webhookID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid webhook ID",
		})
	}

	if err := h.service.Delete(webhookID, identity.UserID); err != nil {
		if errors.Is(err, services.ErrWebhookNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Webhook not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete webhook",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func validWebhookURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
