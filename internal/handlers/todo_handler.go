package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jozemario/todos-backend/internal/config"
	"github.com/jozemario/todos-backend/internal/dto"
	"github.com/jozemario/todos-backend/internal/middleware"
	"github.com/jozemario/todos-backend/internal/services"
)

type TodoHandler struct {
	service *services.TodoService
	cfg     *config.Config
}

func NewTodoHandler(service *services.TodoService, cfg *config.Config) *TodoHandler {
	return &TodoHandler{service: service, cfg: cfg}
}

func (h *TodoHandler) List(c *fiber.Ctx) error {
	identity, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	skip, limit := pageParams(c, h.cfg)
	todos, err := h.service.List(identity.UserID, skip, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch todos",
		})
	}
	return c.JSON(todos)
}

func (h *TodoHandler) ListPriorities(c *fiber.Ctx) error {
	skip, limit := pageParams(c, h.cfg)
	priorities, err := h.service.Priorities(skip, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch priorities",
		})
	}
	return c.JSON(priorities)
}

func (h *TodoHandler) Create(c *fiber.Ctx) error {
	identity, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.TodoCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	todo, err := h.service.Create(identity.UserID, req.Content, req.PriorityID, req.CategoriesIDs)
	if err != nil {
		return todoError(c, err, "Failed to create todo")
	}
	return c.Status(fiber.StatusCreated).JSON(todo)
}

func (h *TodoHandler) Update(c *fiber.Ctx) error {
	identity, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	todoID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid todo ID",
		})
	}

	var req dto.TodoUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	todo, err := h.service.Update(todoID, identity.UserID, req.Content, req.PriorityID, req.CategoriesIDs, req.IsCompleted)
	if err != nil {
		return todoError(c, err, "Failed to update todo")
	}
	return c.JSON(todo)
}

func (h *TodoHandler) Delete(c *fiber.Ctx) error {
	identity, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	todoID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid todo ID",
		})
	}

	if err := h.service.Delete(todoID, identity.UserID); err != nil {
		return todoError(c, err, "Failed to delete todo")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// todoError maps the todo service's sentinel errors to transport statuses.
func todoError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrTodoNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrTodoUpdateNotOwned), errors.Is(err, services.ErrTodoDeleteNotOwned):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidCategories), errors.Is(err, services.ErrInvalidPriority):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: fallback,
		})
	}
}
