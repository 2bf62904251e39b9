// Package ws tracks live socket connections per user and broadcasts change
// events to them.
package ws

import (
	"log/slog"
	"sync"
)

// Conn is the subset of a websocket connection the registry needs. Tests
// substitute fakes.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Envelope is the outbound frame. Channel is the label the connection
// subscribed with; it is echoed but does not filter recipients.
type Envelope struct {
	Channel string      `json:"channel"`
	Data    interface{} `json:"data"`
}

// client wraps a connection with a write mutex. The socket library allows
// only one concurrent writer per connection, so every send goes through
// the mutex.
type client struct {
	conn Conn
	wmu  sync.Mutex
}

func (c *client) send(v interface{}) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return c.conn.WriteJSON(v)
}

// Registry holds live connections keyed by user id. All methods are safe
// for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	conns    map[string]map[Conn]*client
	channels map[string]map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		conns:    make(map[string]map[Conn]*client),
		channels: make(map[string]map[string]struct{}),
	}
}

// Connect registers a connection for the user and records its channel.
// A user may hold any number of concurrent connections.
func (r *Registry) Connect(conn Conn, userID, channel string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[userID]; !ok {
		r.conns[userID] = make(map[Conn]*client)
		r.channels[userID] = make(map[string]struct{})
	}
	r.conns[userID][conn] = &client{conn: conn}
	r.channels[userID][channel] = struct{}{}

	slog.Info("socket connected", "user_id", userID, "channel", channel, "connections", len(r.conns[userID]))
}

// Disconnect removes a connection. When the last connection for a user
// goes away, the user's entry and channel set go with it.
func (r *Registry) Disconnect(conn Conn, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.conns[userID]
	if !ok {
		return
	}
	delete(set, conn)
	if len(set) == 0 {
		delete(r.conns, userID)
		delete(r.channels, userID)
	}

	slog.Info("socket disconnected", "user_id", userID)
}

// Count returns the number of live connections for the user.
func (r *Registry) Count(userID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns[userID])
}

// Channels returns the channel names the user's connections subscribed
// with.
func (r *Registry) Channels(userID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.channels[userID]))
	for ch := range r.channels[userID] {
		out = append(out, ch)
	}
	return out
}

// Broadcast sends the message to every live connection for the user. The
// channel is carried in the envelope but does not restrict delivery.
// Connections that fail to write are dropped once the loop completes, so
// the active set is never mutated mid-iteration.
func (r *Registry) Broadcast(userID string, message interface{}, channel string) {
	r.mu.RLock()
	targets := make([]*client, 0, len(r.conns[userID]))
	for _, cl := range r.conns[userID] {
		targets = append(targets, cl)
	}
	r.mu.RUnlock()

	envelope := Envelope{Channel: channel, Data: message}

	var dead []*client
	for _, cl := range targets {
		if err := cl.send(envelope); err != nil {
			slog.Error("socket send failed", "user_id", userID, "error", err)
			dead = append(dead, cl)
		}
	}

	for _, cl := range dead {
		r.Disconnect(cl.conn, userID)
		_ = cl.conn.Close()
	}
}
