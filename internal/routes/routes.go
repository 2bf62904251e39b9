package routes

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jozemario/todos-backend/internal/config"
	"github.com/jozemario/todos-backend/internal/handlers"
	"github.com/jozemario/todos-backend/internal/middleware"
	"github.com/jozemario/todos-backend/internal/ws"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	categoryHandler *handlers.CategoryHandler,
	todoHandler *handlers.TodoHandler,
	webhookHandler *handlers.WebhookHandler,
	notificationHandler *handlers.NotificationHandler,
	healthHandler *handlers.HealthHandler,
	wsHandler *ws.Handler,
) {
	api := app.Group("/api/v1")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	api.Get("/priorities", middleware.Protected(cfg), todoHandler.ListPriorities)

	categories := api.Group("/categories", middleware.Protected(cfg))
	categories.Get("", categoryHandler.List)
	categories.Post("", categoryHandler.Create)
	categories.Delete("/:id", categoryHandler.Delete)

	todos := api.Group("/todos", middleware.Protected(cfg))
	todos.Get("", todoHandler.List)
	todos.Post("", todoHandler.Create)
	todos.Put("/:id", todoHandler.Update)
	todos.Delete("/:id", todoHandler.Delete)

	webhooks := api.Group("/webhooks", middleware.Protected(cfg))
	webhooks.Get("", webhookHandler.List)
	webhooks.Post("", webhookHandler.Create)
	webhooks.Delete("/:id", webhookHandler.Delete)

	// Inbound relay: bearer ownership is verified inside the handler, so
	// unauthenticated senders can still reach it.
	api.Post("/notifications/webhook/:user_id", notificationHandler.Relay)

	// WebSocket: the handshake token is validated in the socket handler,
	// not by the HTTP JWT middleware.
	api.Use("/ws", ws.Upgrade)
	api.Get("/ws/:token", websocket.New(wsHandler.Serve))
}
