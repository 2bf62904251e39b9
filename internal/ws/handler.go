package ws

import (
	"encoding/binary"
	"encoding/json"
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/jozemario/todos-backend/internal/auth"
)

// CloseInvalidToken is sent when the handshake token does not resolve to a
// valid identity.
const CloseInvalidToken = 4001

type Handler struct {
	registry *Registry
	strategy auth.Strategy
}

func NewHandler(registry *Registry, strategy auth.Strategy) *Handler {
	return &Handler{registry: registry, strategy: strategy}
}

// Upgrade gates the socket route to websocket upgrade requests.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve authenticates the handshake token, registers the connection, then
// reads until the peer goes away. Inbound JSON messages are echoed to all
// of the user's connections.
func (h *Handler) Serve(c *websocket.Conn) {
	token := c.Params("token")
	channel := c.Query("channel", "default")

	identity, err := h.strategy.ReadToken(token)
	if err != nil {
		slog.Warn("socket handshake rejected", "error", err)
		closeWith(c, CloseInvalidToken, "Invalid token")
		return
	}

	userID := identity.UserID.String()
	h.registry.Connect(c, userID, channel)
	defer h.registry.Disconnect(c, userID)
	defer c.Close()

	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			return
		}
		var message map[string]interface{}
		if err := json.Unmarshal(data, &message); err != nil {
			slog.Warn("discarding malformed socket message", "user_id", userID, "error", err)
			continue
		}
		h.registry.Broadcast(userID, message, channel)
	}
}

func closeWith(c *websocket.Conn, code int, reason string) {
	payload := make([]byte, 2+len(reason))
	binary.BigEndian.PutUint16(payload, uint16(code))
	copy(payload[2:], reason)
	_ = c.WriteMessage(websocket.CloseMessage, payload)
	_ = c.Close()
}
