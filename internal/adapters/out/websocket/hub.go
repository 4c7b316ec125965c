// Package websocket pushes channel notifications to connected clients.
//
// A client connects to /ws with its bearer token in the "token" query parameter (or the
// Authorization header). The hub resolves the user's profile and subscribes the connection
// to every channel the profile may listen to. The connection is receive-only: inbound frames
// are read only to process pongs and detect closure.
package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"dispatch/internal/core/application/fanout"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	gws "github.com/gorilla/websocket"
)

const (
	pingInterval   = 30 * time.Second
	pongWait       = 60 * time.Second
	writeWait      = 10 * time.Second
	maxMessageSize = 512
	sendBuffer     = 64
)

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	Authenticate(token string) (kernel.UUID, kernel.Role, error)
}

// Message is the frame written to clients.
type Message struct {
	Channel string `json:"channel"`
	ports.Notification
}

type client struct {
	userID   kernel.UUID
	channels []string
	conn     *gws.Conn
	send     chan []byte
}

type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*client]struct{}

	auth     Authenticator
	profiles ports.ProfileProvider
	upgrader gws.Upgrader
	logger   *slog.Logger
}

func NewHub(auth Authenticator, profiles ports.ProfileProvider, logger *slog.Logger) *Hub {
	return &Hub{
		subscribers: make(map[string]map[*client]struct{}),
		auth:        auth,
		profiles:    profiles,
		upgrader: gws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "WebsocketHub"),
	}
}

// ServeHTTP authenticates the request, upgrades it and subscribes the connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, _, err := h.auth.Authenticate(bearerToken(r))
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	profile, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		http.Error(w, "unknown user", http.StatusForbidden)
		return
	}
	channels := fanout.ChannelsFor(profile)
	if len(channels) == 0 {
		http.Error(w, "no channels for user", http.StatusForbidden)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}

	c := &client{userID: userID, channels: channels, conn: conn, send: make(chan []byte, sendBuffer)}
	hello, err := json.Marshal(map[string]any{"status": "subscribed", "channels": channels})
	if err == nil {
		c.send <- hello
	}
	h.register(c)

	go h.writePump(c)
	go h.readPump(c)
}

// Publish queues n for every client subscribed to channel. Clients whose buffer is full
// miss the message and the error reports how many were skipped.
func (h *Hub) Publish(_ context.Context, channel string, n ports.Notification) error {
	body, err := json.Marshal(Message{Channel: channel, Notification: n})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	dropped := 0
	for c := range h.subscribers[channel] {
		select {
		case c.send <- body:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		return fmt.Errorf("%d slow clients on %s missed %s", dropped, channel, n.Event)
	}
	return nil
}

// Subscribers counts the connections listening on channel.
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[channel])
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, channel := range c.channels {
		if h.subscribers[channel] == nil {
			h.subscribers[channel] = make(map[*client]struct{})
		}
		h.subscribers[channel][c] = struct{}{}
	}
	h.logger.Info("client subscribed", "user_id", c.userID.String(), "channels", c.channels)
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	registered := false
	for _, channel := range c.channels {
		subs := h.subscribers[channel]
		if _, ok := subs[c]; ok {
			registered = true
			delete(subs, c)
		}
		if len(subs) == 0 {
			delete(h.subscribers, channel)
		}
	}
	if registered {
		close(c.send)
		h.logger.Info("client unsubscribed", "user_id", c.userID.String())
	}
}

func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if gws.IsUnexpectedCloseError(err, gws.CloseGoingAway, gws.CloseNormalClosure) {
				h.logger.Warn("websocket read failed", "user_id", c.userID.String(), "error", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(gws.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(gws.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(gws.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func bearerToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
